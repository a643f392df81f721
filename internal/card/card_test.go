package card

import (
	"strings"
	"testing"
)

func TestParsePriority(t *testing.T) {
	cases := map[string]Priority{
		"low":      PriorityLow,
		"Trivial":  PriorityLow,
		"MEDIUM":   PriorityMedium,
		"normal":   PriorityMedium,
		"High ":    PriorityHigh,
		"major":    PriorityHigh,
		"blocker":  PriorityCritical,
		"Highest":  PriorityCritical,
		"whenever": PriorityUnset,
		"":         PriorityUnset,
	}
	for raw, want := range cases {
		if got := ParsePriority(raw); got != want {
			t.Errorf("ParsePriority(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for raw, want := range map[string]Format{
		"json":      FormatJSON,
		"md":        FormatMarkdown,
		"Markdown":  FormatMarkdown,
		"txt":       FormatPlainText,
		"plain":     FormatPlainText,
		"jira":      FormatJira,
		"":          FormatAuto,
	} {
		got, ok := ParseFormat(raw)
		if !ok || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q, true", raw, got, ok, want)
		}
	}

	if _, ok := ParseFormat("yaml"); ok {
		t.Error("ParseFormat accepted an unknown format name")
	}
}

func TestSummaryIncludesCriteria(t *testing.T) {
	c := Card{
		Title:              "Add search",
		Description:        "Full-text search over cards.",
		Priority:           PriorityHigh,
		StoryPoints:        3,
		AcceptanceCriteria: []string{"Results under 200ms"},
	}

	summary := c.Summary()
	for _, want := range []string{
		"TITLE: Add search",
		"PRIORITY: High",
		"STORY POINTS: 3",
		"ACCEPTANCE CRITERIA:",
		"- Results under 200ms",
	} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}
}

func TestSummaryMarksUnsetFields(t *testing.T) {
	summary := Card{Title: "Bare", Description: "d"}.Summary()

	for _, want := range []string{
		"PRIORITY: Not set",
		"STORY POINTS: Not set",
		"LABELS: None",
		"None specified",
	} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}
}

func TestMarkdownOmitsEmptyMetadata(t *testing.T) {
	md := Card{Title: "Bare", Description: "d"}.Markdown()
	if strings.Contains(md, "## Metadata") {
		t.Errorf("metadata section rendered for a card without metadata:\n%s", md)
	}

	md = Card{Title: "Full", Description: "d", Priority: PriorityLow}.Markdown()
	if !strings.Contains(md, "**Priority:** Low") {
		t.Errorf("priority missing from metadata:\n%s", md)
	}
}
