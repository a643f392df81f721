// Package pipeline assembles and runs the technology-specific crews that
// process a normalized card. Crew internals are prompt content; the
// contract is Execute plus the registry dispatch.
package pipeline

import (
	"context"
	"fmt"

	"cardsmith/internal/card"
	"cardsmith/internal/human"
	"cardsmith/internal/llm"
	"cardsmith/internal/tools"
)

// Status enumerates pipeline run outcomes.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Toolset carries the collaborators injected into a pipeline execution.
// The builder constructs it once per run; pipelines treat it as read-only.
type Toolset struct {
	LLM        llm.Client
	Gateway    *human.Gateway
	Analysis   tools.Analysis
	ProjectDir string
}

// StageResult records one stage's output.
type StageResult struct {
	Name   string
	Role   string
	Output string
	Usage  llm.Usage
}

// Result captures the outcome of one pipeline execution.
type Result struct {
	Technology card.Technology
	Status     Status
	// Output is the final stage's deliverable (markdown).
	Output string
	Stages []StageResult
	Usage  llm.Usage
}

// Pipeline processes one card. Implementations do no I/O at construction;
// all work happens in Execute.
type Pipeline interface {
	Technology() card.Technology
	Execute(ctx context.Context, c card.Card, ts Toolset) (Result, error)
}

// Error wraps a processing failure inside a pipeline stage. Wrapped
// errors stay inspectable, so a human-response timeout surfacing through
// a stage still matches human.IsTimeout.
type Error struct {
	Technology card.Technology
	Stage      string
	Err        error
}

func (e *Error) Error() string {
	return fmt.Sprintf("pipeline: %s: stage %s: %v", e.Technology, e.Stage, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
