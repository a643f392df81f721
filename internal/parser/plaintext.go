package parser

import (
	"regexp"
	"strings"

	"cardsmith/internal/card"
)

// acPattern matches bullet lines, numbered lines, and "AC:" lines that
// mark acceptance criteria in free-form text.
var acPattern = regexp.MustCompile(`(?i)^\s*[-*]\s*(.+)|^\s*\d+\.\s*(.+)|^AC:\s*(.+)`)

// plainTextStrategy is the fallback: first line is the title, bullets are
// acceptance criteria, metadata lines use the same key prefixes as markdown.
type plainTextStrategy struct{}

func (plainTextStrategy) Format() card.Format { return card.FormatPlainText }

func (plainTextStrategy) CanParse(string) bool { return true }

func (plainTextStrategy) Parse(raw string) (card.Card, error) {
	lines := strings.Split(strings.TrimSpace(raw), "\n")

	c := card.Card{Title: strings.TrimSpace(lines[0])}

	var description []string
	inCriteria := false
	for _, line := range lines[1:] {
		if match := acPattern.FindStringSubmatch(line); match != nil {
			inCriteria = true
			c.AcceptanceCriteria = append(c.AcceptanceCriteria, firstGroup(match))
			continue
		}
		if applyMetadataLine(line, &c) {
			continue
		}
		if !inCriteria && strings.TrimSpace(line) != "" {
			description = append(description, strings.TrimSpace(line))
		}
	}
	c.Description = strings.Join(description, "\n")
	return c, nil
}

func firstGroup(match []string) string {
	for _, group := range match[1:] {
		if group != "" {
			return strings.TrimSpace(group)
		}
	}
	return ""
}
