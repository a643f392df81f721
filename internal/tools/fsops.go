package tools

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile writes content to a path, creating parent directories as
// needed.
func WriteFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("tools: ensure parent dir for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("tools: write %s: %w", path, err)
	}
	return nil
}

// EnsureDir creates a directory and any necessary parents.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("tools: create dir %s: %w", path, err)
	}
	return nil
}

// ReadFile returns the contents of a file as a string.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("tools: read %s: %w", path, err)
	}
	return string(data), nil
}
