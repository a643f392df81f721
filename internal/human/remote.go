package human

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// RemoteResponder posts questions to a shared chat channel and polls for
// the first reply that lands after the post. One API call per poll tick;
// transient transport failures are retried until the budget runs out.
type RemoteResponder struct {
	chat    ChatClient
	channel string
	poll    time.Duration

	clock func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// RemoteOption customizes responder construction.
type RemoteOption func(*RemoteResponder)

// WithRemoteClock lets tests control elapsed-time accounting.
func WithRemoteClock(clock func() time.Time) RemoteOption {
	return func(r *RemoteResponder) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// WithRemoteSleep lets tests skip real poll-interval waits.
func WithRemoteSleep(sleep func(ctx context.Context, d time.Duration) error) RemoteOption {
	return func(r *RemoteResponder) {
		if sleep != nil {
			r.sleep = sleep
		}
	}
}

// NewRemoteResponder builds a responder for one channel. pollInterval
// must be positive; config validation guarantees that before a run starts.
func NewRemoteResponder(chat ChatClient, channel string, pollInterval time.Duration, opts ...RemoteOption) *RemoteResponder {
	r := &RemoteResponder{
		chat:    chat,
		channel: channel,
		poll:    pollInterval,
		clock:   time.Now,
		sleep:   sleepContext,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Ask posts the question and enters the bounded poll loop. The loop
// always terminates: answer, timeout, or cancellation. The first
// non-empty message observed after the post is taken as the answer, since
// the channel carries no correlation id.
func (r *RemoteResponder) Ask(ctx context.Context, question string, timeout time.Duration) (string, error) {
	postTS, err := r.chat.PostMessage(ctx, r.channel, formatQuestion(question))
	if err != nil {
		if ctx.Err() != nil {
			return "", &Error{Kind: KindCancelled, Msg: "cancelled while posting question", Err: ctx.Err()}
		}
		return "", &Error{Kind: KindTransport, Msg: "post question", Err: err}
	}

	deadline := r.clock().Add(timeout)
	lastSeen := postTS
	var lastErr error

	for {
		remaining := deadline.Sub(r.clock())
		if remaining <= 0 {
			if lastErr != nil {
				return "", &Error{Kind: KindTransport, Msg: "polling failed for the full budget", Err: lastErr}
			}
			return "", &Error{Kind: KindTimeout, Msg: fmt.Sprintf("no answer within %s", timeout)}
		}

		wait := r.poll
		if wait > remaining {
			wait = remaining
		}
		if err := r.sleep(ctx, wait); err != nil {
			return "", &Error{Kind: KindCancelled, Msg: "wait cancelled", Err: err}
		}

		messages, err := r.chat.MessagesSince(ctx, r.channel, lastSeen)
		if err != nil {
			if ctx.Err() != nil {
				return "", &Error{Kind: KindCancelled, Msg: "wait cancelled", Err: ctx.Err()}
			}
			// Transient failure: keep polling while budget remains.
			lastErr = err
			continue
		}
		lastErr = nil

		for _, m := range messages {
			if answer := strings.TrimSpace(m.Text); answer != "" {
				return answer, nil
			}
			lastSeen = m.Timestamp
		}
	}
}

// Notify posts a status update, ignoring delivery failures.
func (r *RemoteResponder) Notify(text string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, _ = r.chat.PostMessage(ctx, r.channel, text)
}

func formatQuestion(question string) string {
	return fmt.Sprintf(":question: *Question from the crew*\n\n%s\n\n_Reply in this channel with your answer._", question)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
