package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cardsmith/internal/parser"
)

func newParseCmd() *cobra.Command {
	var formatFlag string

	cmd := &cobra.Command{
		Use:   "parse [card-file]",
		Short: "Parse a card and print the normalized fields without running a crew",
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

			c, err := parser.New().Parse(raw, declared)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, headerStyle.Render("Normalized card"))
			fmt.Fprintln(out, c.Summary())
			fmt.Fprintf(out, "\n%s %s\n", labelStyle.Render("Format:"), c.SourceFormat)
			fmt.Fprintf(out, "%s %s\n", labelStyle.Render("Technology:"), c.Technology)
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", "", "card format: json, markdown, plaintext (default: auto-detect)")
	return cmd
}
