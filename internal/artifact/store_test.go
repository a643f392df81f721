package artifact

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cardsmith/internal/card"
	"cardsmith/internal/llm"
	"cardsmith/internal/pipeline"
)

func TestSaveWritesRunArtifacts(t *testing.T) {
	dir := t.TempDir()
	stamp := time.Date(2026, 8, 24, 10, 30, 0, 0, time.UTC)
	store := NewStore(dir, WithClock(func() time.Time { return stamp }))

	c := card.Card{
		Title:              "Add Dark Mode!",
		Description:        "Theme toggle.",
		AcceptanceCriteria: []string{"Persists"},
		Technology:         card.TechReact,
	}
	result := pipeline.Result{
		Technology: card.TechReact,
		Status:     pipeline.StatusCompleted,
		Output:     "final deliverable",
		Stages: []pipeline.StageResult{
			{Name: "design", Output: "the design"},
			{Name: "build", Output: "final deliverable"},
		},
		Usage: llm.Usage{PromptTokens: 12, CompletionTokens: 34},
	}

	runDir, err := store.Save(c, result)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "20260824-103000-add-dark-mode"), runDir)

	snapshot, err := os.ReadFile(filepath.Join(runDir, "card.md"))
	require.NoError(t, err)
	require.Contains(t, string(snapshot), "# Add Dark Mode!")
	require.Contains(t, string(snapshot), "- Persists")

	rendered, err := os.ReadFile(filepath.Join(runDir, "result.md"))
	require.NoError(t, err)
	for _, want := range []string{
		"- Technology: react",
		"- Status: completed",
		"12 prompt / 34 completion",
		"## Stage: design",
		"final deliverable",
	} {
		require.Contains(t, string(rendered), want)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Add Dark Mode!":   "add-dark-mode",
		"  spaces  ":       "spaces",
		"???":              "card",
		"":                 "card",
		"Émoji ✨ title":    "moji-title",
	}
	for title, want := range cases {
		if got := slugify(title); got != want {
			t.Errorf("slugify(%q) = %q, want %q", title, got, want)
		}
	}

	long := strings.Repeat("very-long-title-", 10)
	if got := slugify(long); len(got) > 48 {
		t.Errorf("slugify kept %d chars, want at most 48", len(got))
	}
}
