package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"specvet/internal/audit"
	"specvet/internal/conventions"
	"specvet/internal/document"
)

func auditCmd() *cobra.Command {
	var conventionsPath string
	cmd := &cobra.Command{
		Use:          "audit <file>",
		Short:        "Run the structural consistency audit and print its findings",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read document: %w", err)
			}

			var dontUse []string
			if conventionsPath != "" {
				dontUse, err = conventions.Load(conventionsPath)
				if err != nil {
					return err
				}
			}

			res := audit.Run(document.Parse(string(data)), dontUse)
			if len(res.Findings) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no findings")
				return nil
			}
			for _, f := range res.Findings {
				fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s: %s\n", f.Severity, f.Section, f.Message)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&conventionsPath, "conventions", "", "conventions file with Don't use entries")
	return cmd
}
