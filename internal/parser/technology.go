package parser

import (
	"strings"

	"cardsmith/internal/card"
)

// technologyKeywords maps each technology to the terms that indicate it.
// Checked in the order of techPrecedence; the first hit wins.
var technologyKeywords = map[card.Technology][]string{
	card.TechReact:    {"react", "jsx", "next.js", "nextjs"},
	card.TechRails:    {"rails", "ruby on rails", "ruby", "activerecord"},
	card.TechApex:     {"apex", "salesforce", "lightning", "visualforce"},
	card.TechFrontend: {"frontend", "front-end", "html", "css", "javascript", "vanilla js"},
}

var techPrecedence = []card.Technology{
	card.TechReact,
	card.TechRails,
	card.TechApex,
	card.TechFrontend,
}

// DetectTechnology infers which crew should handle a card. Labels are
// checked first, then title and description text. No match yields
// TechUnknown, never an empty value.
func DetectTechnology(c card.Card) card.Technology {
	for _, label := range c.Labels {
		if tech, ok := matchTechnology(label); ok {
			return tech
		}
	}
	if tech, ok := matchTechnology(c.Title + " " + c.Description); ok {
		return tech
	}
	return card.TechUnknown
}

func matchTechnology(text string) (card.Technology, bool) {
	lowered := strings.ToLower(text)
	for _, tech := range techPrecedence {
		for _, keyword := range technologyKeywords[tech] {
			if strings.Contains(lowered, keyword) {
				return tech, true
			}
		}
	}
	return card.TechUnknown, false
}
