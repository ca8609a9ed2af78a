package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"specvet/internal/config"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize specvet in the current directory",
		Long:  "Initialize specvet by creating the .specvet directory and installing a default config.",
		RunE: func(cmd *cobra.Command, args []string) error {
			repoRoot, err := os.Getwd()
			if err != nil {
				return err
			}

			specvetDir := filepath.Join(repoRoot, ".specvet")
			log.Info().Str("dir", specvetDir).Msg("creating specvet directory")
			if err := os.MkdirAll(specvetDir, 0o755); err != nil {
				return fmt.Errorf("create specvet dir: %w", err)
			}

			configPath := filepath.Join(specvetDir, "config.json")
			if _, err := os.Stat(configPath); err == nil {
				log.Info().Msg("config.json already exists, skipping")
			} else {
				log.Info().Str("path", configPath).Msg("installing default config")
				data, err := json.MarshalIndent(config.Default(), "", "  ")
				if err != nil {
					return fmt.Errorf("marshal default config: %w", err)
				}
				if err := os.WriteFile(configPath, data, 0o644); err != nil {
					return fmt.Errorf("write default config: %w", err)
				}
			}

			fmt.Println("specvet initialized successfully")
			return nil
		},
	}
}
