package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"specvet/internal/conventions"
	"specvet/internal/engine"
	"specvet/internal/health"
	"specvet/internal/history"
	"specvet/internal/render"
)

func scoreCmd() *cobra.Command {
	var format string
	var conventionsPath string
	var outPath string
	var applyRepair bool
	var noSave bool
	var noGate bool
	cmd := &cobra.Command{
		Use:          "score <file>",
		Short:        "Score a specification document and print its health report",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			docPath := args[0]
			data, err := os.ReadFile(docPath)
			if err != nil {
				return fmt.Errorf("read document: %w", err)
			}

			repoRoot, err := os.Getwd()
			if err != nil {
				return err
			}
			cfg, err := loadConfig(repoRoot)
			if err != nil {
				return err
			}

			var dontUse []string
			if conventionsPath != "" {
				dontUse, err = conventions.Load(conventionsPath)
				if err != nil {
					return err
				}
			}

			rep, err := engine.Evaluate(string(data), engine.Options{
				Scoring: cfg.Scoring,
				DontUse: dontUse,
			})
			if errors.Is(err, engine.ErrNoDocument) {
				return fmt.Errorf("%s: %w", docPath, err)
			}
			if err != nil {
				return err
			}

			if err := printReport(cmd, rep, format); err != nil {
				return err
			}

			if applyRepair && rep.Repaired {
				target := outPath
				if target == "" {
					target = docPath
				}
				if err := os.WriteFile(target, []byte(rep.RepairedText), 0o644); err != nil {
					return fmt.Errorf("write repaired document: %w", err)
				}
				log.Info().Str("path", target).Str("action", string(rep.RepairAction)).Msg("wrote repaired document")
			}

			if !noSave {
				storeDB, _, closeFn, err := openDB()
				if err != nil {
					return err
				}
				defer closeFn()
				evalID, err := history.NewStore(storeDB).Save(cmd.Context(), docPath, string(data), rep)
				if err != nil {
					return err
				}
				log.Debug().Str("eval_id", evalID).Msg("saved evaluation")
			}

			if !noGate && !health.Passing(rep.Verdict) {
				return fmt.Errorf("health check failed: verdict %s", rep.Verdict)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, markdown, json, yaml")
	cmd.Flags().StringVar(&conventionsPath, "conventions", "", "conventions file with Don't use entries")
	cmd.Flags().StringVar(&outPath, "out", "", "write the repaired document here instead of in place")
	cmd.Flags().BoolVar(&applyRepair, "repair", false, "write the self-repaired document back to disk")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "skip recording the evaluation in history")
	cmd.Flags().BoolVar(&noGate, "no-gate", false, "exit 0 regardless of verdict")
	return cmd
}

func printReport(cmd *cobra.Command, rep *engine.Report, format string) error {
	switch format {
	case "text", "":
		fmt.Fprint(cmd.OutOrStdout(), render.Terminal(rep, 100))
	case "markdown", "md":
		fmt.Fprint(cmd.OutOrStdout(), render.Markdown(rep))
	case "json":
		data, err := render.JSON(rep)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	case "yaml":
		data, err := render.YAML(rep)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	return nil
}
