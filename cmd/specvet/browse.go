package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"specvet/internal/history"
	"specvet/internal/tui"
)

func browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "browse",
		Short:        "Browse stored evaluations interactively",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			storeDB, _, closeFn, err := openDB()
			if err != nil {
				return err
			}
			defer closeFn()

			records, err := history.NewStore(storeDB).List(cmd.Context(), 0)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no evaluations recorded; run specvet score first")
				return nil
			}
			return tui.Run(records)
		},
	}
}
