// Package artifact persists run results under the project's output
// directory. One directory per run: the normalized card snapshot plus the
// crew's final deliverable.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"cardsmith/internal/card"
	"cardsmith/internal/pipeline"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Store manages result IO rooted at one output directory.
type Store struct {
	dir string
	now func() time.Time
}

// StoreOption customizes a Store during construction.
type StoreOption func(*Store)

// WithClock overrides the clock used for run directory names.
func WithClock(clock func() time.Time) StoreOption {
	return func(s *Store) {
		if clock != nil {
			s.now = clock
		}
	}
}

// NewStore builds a store writing under dir.
func NewStore(dir string, opts ...StoreOption) *Store {
	store := &Store{dir: dir, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(store)
		}
	}
	return store
}

// Save writes the card snapshot and pipeline result for one run and
// returns the run directory.
func (s *Store) Save(c card.Card, result pipeline.Result) (string, error) {
	stamp := s.now().UTC().Format("20060102-150405")
	runDir := filepath.Join(s.dir, stamp+"-"+slugify(c.Title))
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", fmt.Errorf("artifact: create run dir: %w", err)
	}

	if err := os.WriteFile(filepath.Join(runDir, "card.md"), []byte(c.Markdown()), 0o644); err != nil {
		return "", fmt.Errorf("artifact: write card snapshot: %w", err)
	}
	if err := os.WriteFile(filepath.Join(runDir, "result.md"), []byte(renderResult(c, result)), 0o644); err != nil {
		return "", fmt.Errorf("artifact: write result: %w", err)
	}
	return runDir, nil
}

func renderResult(c card.Card, result pipeline.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Result: %s\n\n", c.Title)
	fmt.Fprintf(&b, "- Technology: %s\n", result.Technology)
	fmt.Fprintf(&b, "- Status: %s\n", result.Status)
	fmt.Fprintf(&b, "- Tokens: %d prompt / %d completion\n\n",
		result.Usage.PromptTokens, result.Usage.CompletionTokens)

	for _, stage := range result.Stages {
		fmt.Fprintf(&b, "## Stage: %s\n\n%s\n\n", stage.Name, stage.Output)
	}
	return b.String()
}

// slugify reduces a card title to a filesystem-friendly name.
func slugify(title string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(title)), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "card"
	}
	if len(slug) > 48 {
		slug = strings.Trim(slug[:48], "-")
	}
	return slug
}
