package card

import (
	"fmt"
	"strings"
	"time"
)

// Priority ranks a card's urgency. The zero value means the source card
// did not declare one.
type Priority string

const (
	PriorityUnset    Priority = ""
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

// ParsePriority normalizes free-form priority text from a card body.
// Unrecognized values map to PriorityUnset instead of failing the parse.
func ParsePriority(raw string) Priority {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "low", "minor", "trivial":
		return PriorityLow
	case "medium", "normal", "moderate":
		return PriorityMedium
	case "high", "major":
		return PriorityHigh
	case "critical", "urgent", "blocker", "highest":
		return PriorityCritical
	default:
		return PriorityUnset
	}
}

// Technology identifies which processing crew handles a card.
type Technology string

const (
	TechReact    Technology = "react"
	TechRails    Technology = "rails"
	TechApex     Technology = "apex"
	TechFrontend Technology = "frontend"
	TechUnknown  Technology = "unknown"
)

// Technologies lists every concrete value in crew-dispatch precedence order.
func Technologies() []Technology {
	return []Technology{TechReact, TechRails, TechApex, TechFrontend, TechUnknown}
}

// Format identifies the textual format a card arrived in.
type Format string

const (
	// FormatAuto asks the dispatcher to probe for the format.
	FormatAuto      Format = ""
	FormatJSON      Format = "json"
	FormatJira      Format = "jira"
	FormatMarkdown  Format = "markdown"
	FormatPlainText Format = "plaintext"
)

// ParseFormat maps user-supplied format names onto a Format. Returns
// FormatAuto and false for names it does not recognize.
func ParseFormat(raw string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return FormatAuto, true
	case "json":
		return FormatJSON, true
	case "jira":
		return FormatJira, true
	case "markdown", "md":
		return FormatMarkdown, true
	case "plaintext", "plain", "text", "txt":
		return FormatPlainText, true
	default:
		return FormatAuto, false
	}
}

// Card is the normalized representation of a backlog card. A parser
// strategy builds exactly one Card per input; it is treated as immutable
// afterward and owned by the orchestrator run that created it.
type Card struct {
	Title              string
	Description        string
	AcceptanceCriteria []string
	Priority           Priority
	StoryPoints        int // 0 means not set
	Labels             []string
	Assignee           string
	Reporter           string
	DueDate            time.Time // zero means not set
	SourceFormat       Format

	// Technology is always a concrete value; inference falls back to
	// TechUnknown so crew dispatch stays total.
	Technology Technology
}

// Summary renders the card as the plain-text block fed into crew prompts.
func (c Card) Summary() string {
	var b strings.Builder

	fmt.Fprintf(&b, "TITLE: %s\n", c.Title)
	fmt.Fprintf(&b, "PRIORITY: %s\n", orUnset(string(c.Priority)))
	if c.StoryPoints > 0 {
		fmt.Fprintf(&b, "STORY POINTS: %d\n", c.StoryPoints)
	} else {
		b.WriteString("STORY POINTS: Not set\n")
	}
	if len(c.Labels) > 0 {
		fmt.Fprintf(&b, "LABELS: %s\n", strings.Join(c.Labels, ", "))
	} else {
		b.WriteString("LABELS: None\n")
	}
	fmt.Fprintf(&b, "ASSIGNEE: %s\n", orUnset(c.Assignee))

	fmt.Fprintf(&b, "\nDESCRIPTION:\n%s\n", c.Description)

	b.WriteString("\nACCEPTANCE CRITERIA:\n")
	if len(c.AcceptanceCriteria) == 0 {
		b.WriteString("None specified\n")
	}
	for _, ac := range c.AcceptanceCriteria {
		fmt.Fprintf(&b, "- %s\n", ac)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Markdown renders the card back into markdown form for result artifacts.
func (c Card) Markdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", c.Title)
	fmt.Fprintf(&b, "## Description\n%s\n\n", c.Description)

	if len(c.AcceptanceCriteria) > 0 {
		b.WriteString("## Acceptance Criteria\n")
		for _, ac := range c.AcceptanceCriteria {
			fmt.Fprintf(&b, "- %s\n", ac)
		}
		b.WriteString("\n")
	}

	var meta []string
	if c.Priority != PriorityUnset {
		meta = append(meta, fmt.Sprintf("**Priority:** %s", c.Priority))
	}
	if c.StoryPoints > 0 {
		meta = append(meta, fmt.Sprintf("**Story Points:** %d", c.StoryPoints))
	}
	if len(c.Labels) > 0 {
		meta = append(meta, fmt.Sprintf("**Labels:** %s", strings.Join(c.Labels, ", ")))
	}
	if c.Assignee != "" {
		meta = append(meta, fmt.Sprintf("**Assignee:** %s", c.Assignee))
	}
	if len(meta) > 0 {
		b.WriteString("## Metadata\n")
		b.WriteString(strings.Join(meta, "\n"))
		b.WriteString("\n")
	}
	return b.String()
}

func orUnset(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Not set"
	}
	return value
}
