package pipeline

import (
	"context"
	"fmt"
	"strings"

	"cardsmith/internal/card"
	"cardsmith/internal/llm"
)

// Stage is one unit of crew work: a role description (system prompt) and
// a task brief. Stage outputs chain into the next stage's context.
type Stage struct {
	Name string
	Role string
	Task string
}

// Crew is the ordered set of stages that processes one card for a
// technology. Construction is pure; Execute does all the work.
type Crew struct {
	tech   card.Technology
	stages []Stage
}

// NewCrew assembles a crew from its stages.
func NewCrew(tech card.Technology, stages ...Stage) *Crew {
	return &Crew{tech: tech, stages: stages}
}

// Technology implements Pipeline.
func (c *Crew) Technology() card.Technology { return c.tech }

// Execute runs the stages in order. When the card carries no acceptance
// criteria, the first stage asks the human responder for clarification
// before any generation happens; a failed exchange fails the run rather
// than being swallowed.
func (c *Crew) Execute(ctx context.Context, input card.Card, ts Toolset) (Result, error) {
	if ts.LLM == nil {
		return failed(c.tech), &Error{Technology: c.tech, Stage: "setup", Err: fmt.Errorf("no llm client in toolset")}
	}

	clarification := ""
	if len(input.AcceptanceCriteria) == 0 && ts.Gateway != nil {
		question := fmt.Sprintf(
			"The card %q has no acceptance criteria. What must the implementation guarantee for it to be considered done?",
			input.Title,
		)
		answer, err := ts.Gateway.Ask(ctx, question)
		if err != nil {
			return failed(c.tech), &Error{Technology: c.tech, Stage: "clarification", Err: err}
		}
		clarification = answer
	}

	result := Result{Technology: c.tech, Status: StatusCompleted}
	prior := ""
	for _, stage := range c.stages {
		if ts.Gateway != nil {
			ts.Gateway.Notify(fmt.Sprintf("Stage %s started for %q", stage.Name, input.Title))
		}
		output, usage, err := ts.LLM.Complete(ctx, stagePrompt(stage, input, ts, clarification, prior))
		if err != nil {
			return failed(c.tech), &Error{Technology: c.tech, Stage: stage.Name, Err: err}
		}
		result.Stages = append(result.Stages, StageResult{
			Name:   stage.Name,
			Role:   stage.Role,
			Output: output,
			Usage:  usage,
		})
		result.Usage.PromptTokens += usage.PromptTokens
		result.Usage.CompletionTokens += usage.CompletionTokens
		prior = output
	}
	result.Output = prior
	return result, nil
}

func failed(tech card.Technology) Result {
	return Result{Technology: tech, Status: StatusFailed}
}

func stagePrompt(stage Stage, input card.Card, ts Toolset, clarification, prior string) llm.Request {
	var b strings.Builder

	b.WriteString(stage.Task)
	b.WriteString("\n\nBACKLOG CARD:\n")
	b.WriteString(input.Summary())

	if len(ts.Analysis.Languages)+len(ts.Analysis.Frameworks)+len(ts.Analysis.KeyFiles) > 0 {
		b.WriteString("\n\nCODEBASE:\n")
		b.WriteString(ts.Analysis.Summary())
	}
	if clarification != "" {
		b.WriteString("\n\nCLARIFICATION FROM THE USER:\n")
		b.WriteString(clarification)
	}
	if prior != "" {
		b.WriteString("\n\nOUTPUT OF THE PREVIOUS STAGE:\n")
		b.WriteString(prior)
	}

	return llm.Request{SystemPrompt: stage.Role, UserPrompt: b.String()}
}
