package human

import (
	"time"

	"github.com/google/uuid"
)

// Status tracks a question through its lifetime. Transitions are monotone:
// Pending moves to Answered or TimedOut exactly once and never reverses.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAnswered Status = "answered"
	StatusTimedOut Status = "timed-out"
)

// Question is the ephemeral record of one human-in-the-loop exchange. The
// gateway owns it for the duration of a single Ask call.
type Question struct {
	ID        string
	Text      string
	CreatedAt time.Time

	status Status
	answer string
}

func newQuestion(text string, now time.Time) *Question {
	return &Question{
		ID:        uuid.NewString()[:8],
		Text:      text,
		CreatedAt: now,
		status:    StatusPending,
	}
}

// Status returns the current lifecycle state.
func (q *Question) Status() Status { return q.status }

// Answer returns the recorded answer, empty unless StatusAnswered.
func (q *Question) Answer() string { return q.answer }

// markAnswered records the answer. Reports false if the question already
// left the pending state.
func (q *Question) markAnswered(answer string) bool {
	if q.status != StatusPending {
		return false
	}
	q.status = StatusAnswered
	q.answer = answer
	return true
}

// markTimedOut transitions to TimedOut. Reports false if the question
// already left the pending state.
func (q *Question) markTimedOut() bool {
	if q.status != StatusPending {
		return false
	}
	q.status = StatusTimedOut
	return true
}
