// Package parser normalizes raw backlog-card text into a card.Card.
// Each supported format has its own strategy; CardParser picks one by
// declared format or by probing in a fixed order.
package parser

import (
	"fmt"
	"strings"

	"cardsmith/internal/card"
)

// ParseError reports card text that could not be decoded into any minimal
// structure. Missing optional fields never produce a ParseError.
type ParseError struct {
	Format card.Format
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	format := string(e.Format)
	if format == "" {
		format = "card"
	}
	if e.Err != nil {
		return fmt.Sprintf("parser: %s: %s: %v", format, e.Reason, e.Err)
	}
	return fmt.Sprintf("parser: %s: %s", format, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// strategy is the per-format extraction contract.
type strategy interface {
	// Format names the strategy for declared-format dispatch.
	Format() card.Format
	// CanParse reports whether the raw text structurally looks like this format.
	CanParse(raw string) bool
	// Parse extracts the card fields. Optional fields stay unset when absent.
	Parse(raw string) (card.Card, error)
}

// CardParser dispatches raw text to the right format strategy and fills
// in the inferred technology.
type CardParser struct {
	strategies []strategy
}

// New builds a parser with the JSON, Markdown, and plain-text strategies
// in probe order. Plain text accepts anything, so probing is total.
func New() *CardParser {
	return &CardParser{
		strategies: []strategy{
			jsonStrategy{},
			markdownStrategy{},
			plainTextStrategy{},
		},
	}
}

// Parse normalizes raw card text. A declared format selects its strategy
// directly; FormatAuto probes JSON, then Markdown, then plain text.
func (p *CardParser) Parse(raw string, declared card.Format) (card.Card, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return card.Card{}, &ParseError{Format: declared, Reason: "empty input"}
	}

	s, err := p.pick(trimmed, declared)
	if err != nil {
		return card.Card{}, err
	}

	c, err := s.Parse(trimmed)
	if err != nil {
		return card.Card{}, err
	}
	if strings.TrimSpace(c.Title) == "" {
		return card.Card{}, &ParseError{Format: s.Format(), Reason: "card has no title"}
	}
	if c.SourceFormat == card.FormatAuto {
		c.SourceFormat = s.Format()
	}
	c.Technology = DetectTechnology(c)
	return c, nil
}

func (p *CardParser) pick(raw string, declared card.Format) (strategy, error) {
	if declared != card.FormatAuto {
		for _, s := range p.strategies {
			if s.Format() == declared || (declared == card.FormatJira && s.Format() == card.FormatJSON) {
				return s, nil
			}
		}
		return nil, &ParseError{Format: declared, Reason: "unsupported declared format"}
	}
	for _, s := range p.strategies {
		if s.CanParse(raw) {
			return s, nil
		}
	}
	// Unreachable while the plain-text fallback is registered.
	return nil, &ParseError{Reason: "no strategy accepted the input"}
}
