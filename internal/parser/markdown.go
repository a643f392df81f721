package parser

import (
	"strconv"
	"strings"

	"cardsmith/internal/card"
)

// markdownStrategy parses markdown cards: a top-level heading as the
// title, an "Acceptance Criteria" section, and metadata key lines.
type markdownStrategy struct{}

func (markdownStrategy) Format() card.Format { return card.FormatMarkdown }

func (markdownStrategy) CanParse(raw string) bool {
	return strings.HasPrefix(strings.TrimSpace(raw), "# ")
}

func (markdownStrategy) Parse(raw string) (card.Card, error) {
	lines := strings.Split(strings.TrimSpace(raw), "\n")

	c := card.Card{Title: markdownTitle(lines)}

	var description []string
	section := "description"
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "# "):
			continue
		case isCriteriaHeading(line):
			section = "criteria"
		case strings.HasPrefix(line, "##"):
			section = "other"
		case strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* "):
			if section == "criteria" {
				c.AcceptanceCriteria = append(c.AcceptanceCriteria, strings.TrimSpace(line[2:]))
			}
		case section == "description" && strings.TrimSpace(line) != "":
			if !applyMetadataLine(line, &c) {
				description = append(description, strings.TrimSpace(line))
			}
		default:
			applyMetadataLine(line, &c)
		}
	}
	c.Description = strings.Join(description, "\n")
	return c, nil
}

func markdownTitle(lines []string) string {
	for _, line := range lines {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:])
		}
	}
	return ""
}

func isCriteriaHeading(line string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(line))
	return strings.HasPrefix(trimmed, "## acceptance criteria") || strings.HasPrefix(trimmed, "## ac")
}

// applyMetadataLine consumes "Priority:", "Story Points:", "Labels:", and
// "Assignee:" lines shared by the markdown and plain-text formats.
// Reports whether the line was metadata.
func applyMetadataLine(line string, c *card.Card) bool {
	lower := strings.ToLower(strings.TrimSpace(line))
	_, value, found := strings.Cut(line, ":")
	if !found {
		return false
	}
	value = strings.TrimSpace(value)

	switch {
	case strings.HasPrefix(lower, "priority:"):
		c.Priority = card.ParsePriority(value)
	case strings.HasPrefix(lower, "story points:"):
		c.StoryPoints = parsePositiveInt(value)
	case strings.HasPrefix(lower, "labels:"):
		for _, label := range strings.Split(value, ",") {
			if label = strings.TrimSpace(label); label != "" {
				c.Labels = append(c.Labels, label)
			}
		}
	case strings.HasPrefix(lower, "assignee:"):
		c.Assignee = value
	default:
		return false
	}
	return true
}

func parsePositiveInt(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
