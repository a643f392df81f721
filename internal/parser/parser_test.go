package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"cardsmith/internal/card"
)

const markdownCard = `# Add dark mode toggle

Users want to switch between light and dark themes.

Priority: High
Story Points: 5
Labels: React, ui
Assignee: Dana

## Acceptance Criteria
- Toggle persists across sessions
- Theme applies without reload
`

func TestParseMarkdownCard(t *testing.T) {
	c, err := New().Parse(markdownCard, card.FormatAuto)
	require.NoError(t, err)

	require.Equal(t, "Add dark mode toggle", c.Title)
	require.Equal(t, "Users want to switch between light and dark themes.", c.Description)
	require.Equal(t, card.PriorityHigh, c.Priority)
	require.Equal(t, 5, c.StoryPoints)
	require.Equal(t, []string{"React", "ui"}, c.Labels)
	require.Equal(t, "Dana", c.Assignee)
	require.Equal(t, []string{
		"Toggle persists across sessions",
		"Theme applies without reload",
	}, c.AcceptanceCriteria)
	require.Equal(t, card.FormatMarkdown, c.SourceFormat)
	require.Equal(t, card.TechReact, c.Technology)
}

func TestParseGenericJSONCard(t *testing.T) {
	raw := `{
		"title": "Invoice export",
		"description": "Export invoices as CSV from the Rails admin.",
		"acceptance_criteria": ["CSV includes all columns"],
		"priority": "medium",
		"story_points": 3,
		"labels": ["billing"],
		"assignee": "Priya"
	}`

	c, err := New().Parse(raw, card.FormatAuto)
	require.NoError(t, err)

	require.Equal(t, "Invoice export", c.Title)
	require.Equal(t, card.PriorityMedium, c.Priority)
	require.Equal(t, 3, c.StoryPoints)
	require.Equal(t, []string{"CSV includes all columns"}, c.AcceptanceCriteria)
	require.Equal(t, card.FormatJSON, c.SourceFormat)
	// No technology label: inferred from the description text.
	require.Equal(t, card.TechRails, c.Technology)
}

func TestParseJiraEnvelope(t *testing.T) {
	raw := `{
		"fields": {
			"summary": "Bulk-safe contact trigger",
			"description": "Rework the trigger.\nAcceptance Criteria\n- Handles 200 records\n- No SOQL in loops",
			"priority": {"name": "Critical"},
			"customfield_10002": 8,
			"labels": ["apex"],
			"assignee": {"displayName": "Luis"},
			"reporter": {"displayName": "Mo"},
			"duedate": "2026-09-01"
		}
	}`

	c, err := New().Parse(raw, card.FormatAuto)
	require.NoError(t, err)

	require.Equal(t, "Bulk-safe contact trigger", c.Title)
	require.Equal(t, card.PriorityCritical, c.Priority)
	require.Equal(t, 8, c.StoryPoints)
	require.Equal(t, []string{"Handles 200 records", "No SOQL in loops"}, c.AcceptanceCriteria)
	require.Equal(t, "Luis", c.Assignee)
	require.Equal(t, "Mo", c.Reporter)
	require.False(t, c.DueDate.IsZero())
	require.Equal(t, card.FormatJira, c.SourceFormat)
	require.Equal(t, card.TechApex, c.Technology)
}

func TestParsePlainTextCard(t *testing.T) {
	raw := "Fix login page styling\nThe login button overlaps the footer on mobile.\nPriority: low\n- Button visible on 375px screens\n- No horizontal scroll"

	c, err := New().Parse(raw, card.FormatAuto)
	require.NoError(t, err)

	require.Equal(t, "Fix login page styling", c.Title)
	require.Equal(t, card.PriorityLow, c.Priority)
	require.Len(t, c.AcceptanceCriteria, 2)
	require.Equal(t, card.FormatPlainText, c.SourceFormat)
}

func TestParseJSONMissingTitleFails(t *testing.T) {
	_, err := New().Parse(`{"description": "no title here"}`, card.FormatAuto)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestParseEmptyInputFails(t *testing.T) {
	_, err := New().Parse("   \n  ", card.FormatAuto)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestParseMalformedJSONFails(t *testing.T) {
	_, err := New().Parse(`{"title": "broken`, card.FormatJSON)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, card.FormatJSON, parseErr.Format)
}

func TestDeclaredFormatSkipsProbing(t *testing.T) {
	// Looks like markdown, but the caller says plain text.
	raw := "# not a heading, just a line\nmore text"
	c, err := New().Parse(raw, card.FormatPlainText)
	require.NoError(t, err)
	require.Equal(t, card.FormatPlainText, c.SourceFormat)
	require.Equal(t, "# not a heading, just a line", c.Title)
}

func TestMissingOptionalFieldsDoNotFail(t *testing.T) {
	c, err := New().Parse(`{"title": "Just a title"}`, card.FormatAuto)
	require.NoError(t, err)

	require.Equal(t, card.PriorityUnset, c.Priority)
	require.Zero(t, c.StoryPoints)
	require.Empty(t, c.Labels)
	require.Empty(t, c.AcceptanceCriteria)
	require.Equal(t, card.TechUnknown, c.Technology)
}

func TestTechnologyInferenceIsTotal(t *testing.T) {
	inputs := []string{
		"Do something\nno keywords at all",
		"# Plain card\n\nNothing recognizable.",
		`{"title": "Opaque", "description": "n/a"}`,
	}
	valid := map[card.Technology]bool{}
	for _, tech := range card.Technologies() {
		valid[tech] = true
	}

	for _, raw := range inputs {
		c, err := New().Parse(raw, card.FormatAuto)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if !valid[c.Technology] {
			t.Fatalf("technology %q not in the enum", c.Technology)
		}
	}
}

func TestTechnologyPrecedenceLabelsFirst(t *testing.T) {
	// Description mentions rails, but the label says react: labels win.
	c, err := New().Parse("# Card\n\nPort the rails view to components.\n\nLabels: React", card.FormatAuto)
	require.NoError(t, err)
	require.Equal(t, card.TechReact, c.Technology)
}

func TestUnsupportedDeclaredFormat(t *testing.T) {
	_, err := New().Parse("text", card.Format("yaml"))
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
}
