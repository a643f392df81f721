package transcript

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestTranscriptAppendsAndTails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "session.log")
	tr, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tr.Milestone("parsed %q", "Add dark mode")
	tr.Question("ab12cd34", "what should happen on logout?")
	tr.Answer("ab12cd34", "keep the chosen theme")
	tr.Update("stage design started")

	lines := tr.Tail(10)
	if len(lines) != 4 {
		t.Fatalf("Tail returned %d lines, want 4", len(lines))
	}
	for i, marker := range []string{"RUN", "ASK", "ANS", "UPD"} {
		if !strings.Contains(lines[i], marker) {
			t.Errorf("line %d = %q, want kind %s", i, lines[i], marker)
		}
	}
	if !strings.Contains(lines[1], "[ab12cd34]") {
		t.Errorf("question line %q missing its id", lines[1])
	}

	tail := tr.Tail(2)
	if len(tail) != 2 || !strings.Contains(tail[1], "stage design started") {
		t.Fatalf("Tail(2) = %v, want the last two entries", tail)
	}
}

func TestNilTranscriptIsSafe(t *testing.T) {
	var tr *Transcript
	tr.Milestone("nothing")
	tr.Question("id", "q")
	tr.Answer("id", "a")
	tr.Update("u")
	if got := tr.Tail(5); got != nil {
		t.Fatalf("nil Tail = %v, want nil", got)
	}
	if tr.Path() != "" {
		t.Fatalf("nil Path = %q, want empty", tr.Path())
	}
}
