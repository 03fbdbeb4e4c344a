package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"skelreview/internal/dataset"
	"skelreview/internal/logging"
	"skelreview/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var actionFlag string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show configuration, dependency and ledger status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.withOverrides(overridesForAction(actionFlag))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			lines := renderSectionHeader("Configuration", colorize)
			configMsg := ctx.configPath
			configKind := statusOK
			if !ctx.configExists {
				configKind = statusWarn
				configMsg += " (not found, using defaults)"
			}
			lines = append(lines,
				renderStatusLine("Config", configKind, configMsg, colorize),
				renderStatusLine("Action", statusInfo, fmt.Sprintf("%s (%s)", cfg.Dataset.Action, cfg.Dataset.Category), colorize),
				renderStatusLine("Mode", statusInfo, fmt.Sprintf("%s, persist %s", cfg.Review.Mode, yesNo(cfg.Review.Persist)), colorize),
				renderStatusLine("Journal", statusInfo, journalStatus(cfg.Journal.Enabled, cfg.Journal.Path), colorize),
			)

			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Checks", colorize)...)
			lines = append(lines, preflightLines(preflight.RunAll(cfg), colorize)...)

			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Dataset", colorize)...)
			clips, clipErr := dataset.Discover(cfg.ClipDir(), cfg.Dataset.VideoExt, cfg.Dataset.SkeletonExt, logging.NewNop())
			if clipErr != nil {
				lines = append(lines, renderStatusLine("Clips", statusError, clipErr.Error(), colorize))
			} else {
				lines = append(lines, renderStatusLine("Clips", statusInfo, fmt.Sprintf("%d in %s", len(clips), cfg.ClipDir()), colorize))
			}
			store := newLedgerStore(cfg, logging.NewNop())
			excluded, ledgerErr := store.Load(cfg.Dataset.Action)
			if ledgerErr != nil {
				lines = append(lines, renderStatusLine("Ledger", statusError, ledgerErr.Error(), colorize))
			} else {
				videos, skeletons := excluded.Len()
				lines = append(lines, renderStatusLine("Ledger", statusInfo,
					fmt.Sprintf("%d videos, %d skeleton files excluded", videos, skeletons), colorize))
			}

			fmt.Fprintln(out, strings.Join(lines, "\n"))
			return nil
		},
	}
	cmd.Flags().StringVarP(&actionFlag, "action", "a", "", "Action class to report on (e.g. A022)")
	return cmd
}

func journalStatus(enabled bool, path string) string {
	if !enabled {
		return "disabled"
	}
	return path
}
