// Package human implements the human-in-the-loop question gateway: a
// pipeline pauses, a question goes out through a responder backend (chat
// channel or local terminal), and execution resumes once an answer
// arrives or the wait times out.
package human

import (
	"context"
	"errors"
	"sync"
	"time"

	"cardsmith/internal/transcript"
)

// Responder is a backend capable of posing a question to a human.
type Responder interface {
	// Ask blocks until an answer arrives, the timeout lapses, or ctx is
	// cancelled. Implementations must guarantee the wait terminates.
	Ask(ctx context.Context, question string, timeout time.Duration) (string, error)

	// Notify delivers a best-effort status update. Implementations make a
	// single delivery attempt and swallow failures.
	Notify(text string)
}

// Gateway serializes human-in-the-loop questions over a single responder
// chosen at construction time. The whole process shares one chat channel
// with no per-question addressing, so only one question may be
// outstanding: a second Ask while one is pending fails fast with a busy
// error instead of interleaving.
type Gateway struct {
	responder Responder
	timeout   time.Duration
	log       *transcript.Transcript
	clock     func() time.Time

	// mu is held for the full duration of an Ask. TryLock gives the
	// busy-fail behavior without queueing callers.
	mu sync.Mutex
}

// GatewayOption customizes gateway construction.
type GatewayOption func(*Gateway)

// WithTranscript records every exchange to the given transcript.
func WithTranscript(t *transcript.Transcript) GatewayOption {
	return func(g *Gateway) { g.log = t }
}

// WithClock allows tests to control question timestamps.
func WithClock(clock func() time.Time) GatewayOption {
	return func(g *Gateway) {
		if clock != nil {
			g.clock = clock
		}
	}
}

// NewGateway wraps a responder with the single-outstanding-question
// contract. The timeout applies to every Ask call.
func NewGateway(responder Responder, timeout time.Duration, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		responder: responder,
		timeout:   timeout,
		clock:     time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Ask poses one question and blocks for the answer. Failure modes:
// KindBusy when another question is outstanding, KindTimeout when the
// budget lapses, KindCancelled when ctx is cancelled mid-wait, and
// KindTransport for everything else. The pending-question lock is always
// released on return, so a failed Ask never deadlocks the next one.
func (g *Gateway) Ask(ctx context.Context, text string) (string, error) {
	if g.responder == nil {
		return "", &Error{Kind: KindTransport, Msg: "no responder configured"}
	}
	if !g.mu.TryLock() {
		return "", &Error{Kind: KindBusy, Msg: "a question is already outstanding"}
	}
	defer g.mu.Unlock()

	q := newQuestion(text, g.clock())
	g.log.Question(q.ID, text)

	answer, err := g.responder.Ask(ctx, text, g.timeout)
	if err != nil {
		err = classify(err)
		if IsTimeout(err) {
			q.markTimedOut()
			g.log.Answer(q.ID, "timed out waiting for answer")
		} else {
			g.log.Answer(q.ID, "failed: "+err.Error())
		}
		return "", err
	}

	q.markAnswered(answer)
	g.log.Answer(q.ID, answer)
	return answer, nil
}

// Notify forwards a best-effort status update to the responder.
func (g *Gateway) Notify(text string) {
	g.log.Update(text)
	if g.responder != nil {
		g.responder.Notify(text)
	}
}

// Timeout returns the per-question wait budget.
func (g *Gateway) Timeout() time.Duration { return g.timeout }

// classify normalizes backend failures into the gateway error taxonomy.
func classify(err error) error {
	var he *Error
	if errors.As(err, &he) {
		return err
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &Error{Kind: KindTimeout, Msg: "no answer within budget", Err: err}
	case errors.Is(err, context.Canceled):
		return &Error{Kind: KindCancelled, Msg: "wait cancelled", Err: err}
	default:
		return &Error{Kind: KindTransport, Msg: "responder failed", Err: err}
	}
}
