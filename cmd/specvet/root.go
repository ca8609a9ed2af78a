package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"specvet/internal/logging"
)

var (
	cfgFile string
	debug   bool
	rootCmd = &cobra.Command{
		Use:   "specvet",
		Short: "specvet scores specification documents for mechanical quality",
		Long: "specvet runs a structural consistency audit and a deterministic health check " +
			"over a specification document, producing axis scores, a verdict, and one bounded " +
			"self-repair attempt when the verdict is weak.",
	}
)

// Execute runs the root command.
func Execute() error {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", filepath.Join(".specvet", "config.json"), "config file path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	if err := viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config")); err != nil {
		return fmt.Errorf("bind config flag: %w", err)
	}
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		logging.Init(debug)
	}
	rootCmd.AddCommand(scoreCmd())
	rootCmd.AddCommand(auditCmd())
	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(runsCmd())
	rootCmd.AddCommand(browseCmd())
	return rootCmd.Execute()
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
}
