package parser

import (
	"encoding/json"
	"strings"
	"time"

	"cardsmith/internal/card"
)

// jiraStoryPointFields lists the keys Jira installations commonly use for
// story points, probed in order.
var jiraStoryPointFields = []string{
	"customfield_10002",
	"customfield_10004",
	"story points",
	"Story Points",
}

// jsonStrategy parses generic JSON cards and the Jira API issue envelope.
type jsonStrategy struct{}

func (jsonStrategy) Format() card.Format { return card.FormatJSON }

func (jsonStrategy) CanParse(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	return strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}")
}

func (jsonStrategy) Parse(raw string) (card.Card, error) {
	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return card.Card{}, &ParseError{Format: card.FormatJSON, Reason: "invalid JSON", Err: err}
	}

	if fields, ok := payload["fields"].(map[string]any); ok {
		return parseJiraFields(fields), nil
	}
	return parseGenericJSON(payload), nil
}

// parseJiraFields maps the Jira REST API issue "fields" object.
func parseJiraFields(fields map[string]any) card.Card {
	description := stringField(fields, "description")
	c := card.Card{
		Title:              stringField(fields, "summary"),
		Description:        description,
		AcceptanceCriteria: criteriaFromDescription(description),
		Priority:           card.ParsePriority(nestedString(fields, "priority", "name")),
		StoryPoints:        jiraStoryPoints(fields),
		Labels:             stringSlice(fields["labels"]),
		Assignee:           nestedString(fields, "assignee", "displayName"),
		Reporter:           nestedString(fields, "reporter", "displayName"),
		DueDate:            dateField(fields, "duedate"),
		SourceFormat:       card.FormatJira,
	}
	return c
}

func parseGenericJSON(payload map[string]any) card.Card {
	title := stringField(payload, "title")
	if title == "" {
		title = stringField(payload, "name")
	}
	return card.Card{
		Title:              title,
		Description:        stringField(payload, "description"),
		AcceptanceCriteria: stringSlice(payload["acceptance_criteria"]),
		Priority:           card.ParsePriority(stringField(payload, "priority")),
		StoryPoints:        intField(payload, "story_points"),
		Labels:             stringSlice(payload["labels"]),
		Assignee:           stringField(payload, "assignee"),
		Reporter:           stringField(payload, "reporter"),
	}
}

// criteriaFromDescription pulls bullet lines that follow an
// "Acceptance Criteria" or "AC:" marker inside a Jira description.
func criteriaFromDescription(description string) []string {
	if description == "" {
		return nil
	}
	var criteria []string
	inSection := false
	for _, line := range strings.Split(description, "\n") {
		lower := strings.ToLower(strings.TrimSpace(line))
		if strings.Contains(lower, "acceptance criteria") || strings.HasPrefix(lower, "ac:") {
			inSection = true
			continue
		}
		if !inSection {
			continue
		}
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "-"), strings.HasPrefix(trimmed, "*"):
			criteria = append(criteria, strings.TrimSpace(trimmed[1:]))
		case trimmed != "":
			inSection = false
		}
	}
	return criteria
}

func jiraStoryPoints(fields map[string]any) int {
	for _, key := range jiraStoryPointFields {
		value, ok := fields[key]
		if !ok {
			continue
		}
		switch v := value.(type) {
		case float64:
			if v > 0 {
				return int(v)
			}
		case string:
			if points := parsePositiveInt(v); points > 0 {
				return points
			}
		}
	}
	return 0
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}

func nestedString(m map[string]any, key, nested string) string {
	inner, ok := m[key].(map[string]any)
	if !ok {
		return ""
	}
	return stringField(inner, nested)
}

func intField(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case float64:
		if v > 0 {
			return int(v)
		}
	case string:
		return parsePositiveInt(v)
	}
	return 0
}

func stringSlice(value any) []string {
	items, ok := value.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}

func dateField(m map[string]any, key string) time.Time {
	raw := stringField(m, key)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
