package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"skelreview/internal/config"
	"skelreview/internal/dataset"
	"skelreview/internal/ledger"
)

type ledgerView struct {
	Action       string   `json:"action" yaml:"action"`
	VideoList    string   `json:"video_list" yaml:"video_list"`
	SkeletonList string   `json:"skeleton_list" yaml:"skeleton_list"`
	Videos       []string `json:"videos" yaml:"videos"`
	Skeletons    []string `json:"skeletons" yaml:"skeletons"`
}

func newLedgerCommand(ctx *commandContext) *cobra.Command {
	var actionFlag string
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Inspect or edit the exception ledger",
	}
	ledgerCmd.PersistentFlags().StringVarP(&actionFlag, "action", "a", "", "Action class ledger to use (e.g. A022)")

	ledgerCmd.AddCommand(newLedgerShowCommand(ctx, &actionFlag))
	ledgerCmd.AddCommand(newLedgerEditCommand(ctx, &actionFlag, true))
	ledgerCmd.AddCommand(newLedgerEditCommand(ctx, &actionFlag, false))
	return ledgerCmd
}

func newLedgerShowCommand(ctx *commandContext, actionFlag *string) *cobra.Command {
	var formatFlag string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the excluded videos and skeleton files",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat(formatFlag)
			if err != nil {
				return err
			}
			cfg, err := ctx.withOverrides(overridesForAction(*actionFlag))
			if err != nil {
				return err
			}
			logger, err := ctx.fileLogger(cfg)
			if err != nil {
				return err
			}
			store := newLedgerStore(cfg, logger)
			l, err := store.Load(cfg.Dataset.Action)
			if err != nil {
				return err
			}
			videoList, skeletonList := store.Paths(cfg.Dataset.Action)
			view := ledgerView{
				Action:       cfg.Dataset.Action,
				VideoList:    videoList,
				SkeletonList: skeletonList,
				Videos:       l.Videos(),
				Skeletons:    l.Skeletons(),
			}
			if handled, err := writeStructured(cmd, format, view); handled {
				return err
			}
			out := cmd.OutOrStdout()
			if l.Empty() {
				fmt.Fprintf(out, "No clips excluded for %s\n", view.Action)
				return nil
			}
			writeLedgerLists(out, view.VideoList, view.Videos, view.SkeletonList, view.Skeletons)
			return nil
		},
	}
	addFormatFlag(cmd, &formatFlag)
	return cmd
}

func newLedgerEditCommand(ctx *commandContext, actionFlag *string, exclude bool) *cobra.Command {
	use, short, verb := "include <clip>...", "Remove clips from the exception ledger", "Included"
	if exclude {
		use, short, verb = "exclude <clip>...", "Add clips to the exception ledger", "Excluded"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Long:  "Clips are named by video path, skeleton path, or clip name (e.g. S001C001P001R001A022).",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.withOverrides(overridesForAction(*actionFlag))
			if err != nil {
				return err
			}
			logger, err := ctx.fileLogger(cfg)
			if err != nil {
				return err
			}
			clips, err := resolveClips(cfg, args, logger)
			if err != nil {
				return err
			}
			changed := 0
			updated, err := newLedgerStore(cfg, logger).Update(cfg.Dataset.Action, func(l *ledger.Ledger) error {
				for _, clip := range clips {
					var ok bool
					if exclude {
						ok = l.Exclude(clip)
					} else {
						ok = l.Include(clip)
					}
					if ok {
						changed++
					}
				}
				return nil
			})
			if err != nil {
				return err
			}
			videos, skeletons := updated.Len()
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d of %d clips for %s (%d videos, %d skeleton files excluded)\n",
				verb, changed, len(clips), cfg.Dataset.Action, videos, skeletons)
			return nil
		},
	}
}

func resolveClips(cfg *config.Config, refs []string, logger *slog.Logger) ([]ledger.Clip, error) {
	available, err := dataset.Discover(cfg.ClipDir(), cfg.Dataset.VideoExt, cfg.Dataset.SkeletonExt, logger)
	if err != nil {
		return nil, err
	}
	clips := make([]ledger.Clip, 0, len(refs))
	for _, ref := range refs {
		clip, ok := dataset.Find(available, ref)
		if !ok {
			return nil, fmt.Errorf("clip %q not found in %s", ref, cfg.ClipDir())
		}
		clips = append(clips, clip)
	}
	return clips, nil
}
