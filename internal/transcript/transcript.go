package transcript

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Kind labels what a transcript entry records.
type Kind string

const (
	KindMilestone Kind = "RUN"
	KindQuestion  Kind = "ASK"
	KindAnswer    Kind = "ANS"
	KindUpdate    Kind = "UPD"
)

// Transcript persists the human-visible history of a run (questions,
// answers, status updates, run milestones) to a simple text file. It is
// the audit trail for the human-in-the-loop exchanges.
type Transcript struct {
	path string
	mu   sync.Mutex
}

// New creates a transcript that writes to the provided path.
func New(path string) (*Transcript, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return &Transcript{path: path}, nil
}

// Path returns the file backing this transcript.
func (t *Transcript) Path() string {
	if t == nil {
		return ""
	}
	return t.path
}

// Append writes a single entry. Failures are swallowed: losing a
// transcript line must never fail the run it describes.
func (t *Transcript) Append(kind Kind, message string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	line := fmt.Sprintf("%s %-3s %s\n",
		time.Now().UTC().Format(time.RFC3339),
		string(kind),
		strings.TrimSpace(message),
	)
	file, err := os.OpenFile(t.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	defer file.Close()
	_, _ = file.WriteString(line)
}

// Tail returns up to maxLines of the most recent entries.
func (t *Transcript) Tail(maxLines int) []string {
	if t == nil || maxLines <= 0 {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	file, err := os.Open(t.path)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if len(lines) == 0 {
		return nil
	}
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	return lines
}

// Milestone records an orchestration state change.
func (t *Transcript) Milestone(format string, args ...any) {
	t.Append(KindMilestone, fmt.Sprintf(format, args...))
}

// Question records a question posed to the human responder.
func (t *Transcript) Question(id, text string) {
	t.Append(KindQuestion, fmt.Sprintf("[%s] %s", id, text))
}

// Answer records the answer (or the failure) for a question.
func (t *Transcript) Answer(id, text string) {
	t.Append(KindAnswer, fmt.Sprintf("[%s] %s", id, text))
}

// Update records a best-effort status update sent to the responder.
func (t *Transcript) Update(text string) {
	t.Append(KindUpdate, text)
}
