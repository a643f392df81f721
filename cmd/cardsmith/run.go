package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"cardsmith/internal/artifact"
	"cardsmith/internal/config"
	"cardsmith/internal/human"
	"cardsmith/internal/logging"
	"cardsmith/internal/orchestrator"
	"cardsmith/internal/transcript"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

func newRunCmd() *cobra.Command {
	var (
		projectDir string
		formatFlag string
		outputDir  string
	)

	cmd := &cobra.Command{
		Use:   "run [card-file]",
		Short: "Parse a card and execute its processing crew",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readCard(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			declared, err := declaredFormat(formatFlag, args)
			if err != nil {
				return err
			}

			if projectDir == "" {
				projectDir, err = os.Getwd()
				if err != nil {
					return fmt.Errorf("resolve project dir: %w", err)
				}
			}
			if err := config.InitWorkDir(projectDir); err != nil {
				return err
			}

			settings, err := config.Load(projectDir)
			if err != nil {
				return err
			}
			if outputDir != "" {
				settings.OutputDir = outputDir
			}

			log, err := logging.New(projectDir)
			if err != nil {
				return err
			}
			defer log.Close()

			journal, err := transcript.New(filepath.Join(settings.LogsDir(), "session.log"))
			if err != nil {
				return err
			}

			gateway := buildGateway(settings, journal)

			orch, err := orchestrator.New(settings, gateway,
				orchestrator.WithLogger(log),
				orchestrator.WithTranscript(journal),
				orchestrator.WithStore(artifact.NewStore(settings.OutputDir)),
			)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			report := orch.Run(ctx, raw, declared)
			return printReport(cmd, report)
		},
	}

	cmd.Flags().StringVarP(&projectDir, "project", "p", "", "project directory to analyze (default: current directory)")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", "", "card format: json, markdown, plaintext (default: auto-detect)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "directory for result artifacts (default: .cardsmith/output)")
	return cmd
}

// buildGateway selects the responder backend once, at startup. Remote
// when Slack is fully configured, local terminal otherwise.
func buildGateway(settings config.Settings, journal *transcript.Transcript) *human.Gateway {
	var responder human.Responder
	if settings.RemoteConfigured() {
		chat := human.NewSlackChat(settings.SlackToken)
		responder = human.NewRemoteResponder(chat, settings.SlackChannel, settings.PollInterval)
	} else {
		responder = human.NewLocalResponder()
	}
	return human.NewGateway(responder, settings.ResponseTimeout, human.WithTranscript(journal))
}

func printReport(cmd *cobra.Command, report orchestrator.Report) error {
	out := cmd.OutOrStdout()

	if report.Err != nil {
		fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("Run failed (%s)", report.ErrorKind())))
		fmt.Fprintf(out, "  %v\n", report.Err)
		return report.Err
	}

	fmt.Fprintln(out, headerStyle.Render("Run completed"))
	fmt.Fprintf(out, "%s %s\n", labelStyle.Render("Card:"), report.Card.Title)
	fmt.Fprintf(out, "%s %s\n", labelStyle.Render("Technology:"), report.Card.Technology)
	fmt.Fprintf(out, "%s %d stages, %d prompt / %d completion tokens\n",
		labelStyle.Render("Crew:"),
		len(report.Result.Stages),
		report.Result.Usage.PromptTokens,
		report.Result.Usage.CompletionTokens,
	)
	if report.OutputDir != "" {
		fmt.Fprintf(out, "%s %s\n", labelStyle.Render("Output:"), report.OutputDir)
	}
	return nil
}
