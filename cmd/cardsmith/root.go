package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"cardsmith/internal/card"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cardsmith",
		Short: "Process backlog cards with technology-specific crews",
		Long: strings.TrimSpace(`
cardsmith ingests a backlog card (JSON, Markdown, or plain text), detects
the target technology, and runs the matching processing crew. Crews can
pause to ask a human a clarifying question through Slack or the local
terminal.`),
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(newRunCmd())
	root.AddCommand(newParseCmd())
	return root
}

// readCard loads the raw card text from a file argument or stdin.
func readCard(args []string, in io.Reader) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read card file: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("read card from stdin: %w", err)
	}
	return string(data), nil
}

// declaredFormat resolves the --format flag, with a hint from the file
// extension when no flag is given.
func declaredFormat(flag string, args []string) (card.Format, error) {
	if flag != "" {
		format, ok := card.ParseFormat(flag)
		if !ok {
			return card.FormatAuto, fmt.Errorf("unknown format %q (expected json, markdown, or plaintext)", flag)
		}
		return format, nil
	}
	if len(args) > 0 {
		switch {
		case strings.HasSuffix(args[0], ".json"):
			return card.FormatJSON, nil
		case strings.HasSuffix(args[0], ".md"):
			return card.FormatMarkdown, nil
		}
	}
	return card.FormatAuto, nil
}
