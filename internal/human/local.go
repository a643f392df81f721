package human

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// PromptFunc displays a question on the local interactive surface and
// blocks for a line of input. It must return promptly once ctx is done.
type PromptFunc func(ctx context.Context, question string) (string, error)

// LocalResponder poses questions directly on the terminal. The human
// types at their own pace, but the configured hard timeout still aborts
// the wait.
type LocalResponder struct {
	prompt PromptFunc
	out    io.Writer
}

// LocalOption customizes responder construction.
type LocalOption func(*LocalResponder)

// WithPrompt swaps the interactive prompt, mainly for tests.
func WithPrompt(prompt PromptFunc) LocalOption {
	return func(r *LocalResponder) {
		if prompt != nil {
			r.prompt = prompt
		}
	}
}

// WithOutput redirects where status updates are printed.
func WithOutput(out io.Writer) LocalOption {
	return func(r *LocalResponder) {
		if out != nil {
			r.out = out
		}
	}
}

// NewLocalResponder builds a terminal-backed responder using the Bubble
// Tea prompt by default.
func NewLocalResponder(opts ...LocalOption) *LocalResponder {
	r := &LocalResponder{
		prompt: terminalPrompt,
		out:    os.Stdout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Ask presents the question and blocks for the typed answer. The timeout
// turns into a context deadline so an abandoned prompt cannot hang the
// pipeline.
func (r *LocalResponder) Ask(ctx context.Context, question string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	answer, err := r.prompt(ctx, question)
	if err != nil {
		switch {
		case ctx.Err() == context.DeadlineExceeded:
			return "", &Error{Kind: KindTimeout, Msg: fmt.Sprintf("no answer within %s", timeout), Err: ctx.Err()}
		case ctx.Err() == context.Canceled:
			return "", &Error{Kind: KindCancelled, Msg: "prompt cancelled", Err: ctx.Err()}
		default:
			return "", &Error{Kind: KindTransport, Msg: "prompt failed", Err: err}
		}
	}
	return strings.TrimSpace(answer), nil
}

// Notify prints a status line on the terminal.
func (r *LocalResponder) Notify(text string) {
	fmt.Fprintln(r.out, updateStyle.Render("• "+text))
}
