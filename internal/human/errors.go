package human

import (
	"errors"
	"fmt"
)

// Kind classifies human-response failures so callers can tell a timeout
// from a busy gateway or a broken transport.
type Kind string

const (
	KindTimeout   Kind = "timeout"
	KindBusy      Kind = "busy"
	KindCancelled Kind = "cancelled"
	KindTransport Kind = "transport"
)

// Error is the failure surface of the question gateway and its backends.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("human: %s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("human: %s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// IsTimeout reports whether err is a human-response timeout.
func IsTimeout(err error) bool { return hasKind(err, KindTimeout) }

// IsBusy reports whether err means a question was already outstanding.
func IsBusy(err error) bool { return hasKind(err, KindBusy) }

// IsCancelled reports whether err means the wait was cancelled.
func IsCancelled(err error) bool { return hasKind(err, KindCancelled) }

func hasKind(err error, kind Kind) bool {
	var he *Error
	return errors.As(err, &he) && he.Kind == kind
}
