package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"skelreview/internal/config"
	"skelreview/internal/dataset"
	"skelreview/internal/ledger"
)

type clipView struct {
	Index    int             `json:"index" yaml:"index"`
	Name     string          `json:"name" yaml:"name"`
	ID       *dataset.ClipID `json:"id,omitempty" yaml:"id,omitempty"`
	Video    string          `json:"video" yaml:"video"`
	Skeleton string          `json:"skeleton" yaml:"skeleton"`
	Excluded bool            `json:"excluded" yaml:"excluded"`
}

func newClipsCommand(ctx *commandContext) *cobra.Command {
	var (
		modeFlag   string
		actionFlag string
		formatFlag string
	)
	cmd := &cobra.Command{
		Use:   "clips",
		Short: "List the clips a review would show",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat(formatFlag)
			if err != nil {
				return err
			}
			cfg, err := ctx.withOverrides(config.Overrides{Mode: modeFlag, Action: actionFlag})
			if err != nil {
				return err
			}
			logger, err := ctx.fileLogger(cfg)
			if err != nil {
				return err
			}

			clips, err := dataset.Discover(cfg.ClipDir(), cfg.Dataset.VideoExt, cfg.Dataset.SkeletonExt, logger)
			if err != nil {
				return err
			}
			excluded, err := newLedgerStore(cfg, logger).Load(cfg.Dataset.Action)
			if err != nil {
				return err
			}
			selected, err := dataset.Select(cfg.Review.Mode, clips, excluded)
			if err != nil {
				return err
			}
			views := clipViews(selected, excluded)

			if handled, err := writeStructured(cmd, format, views); handled {
				return err
			}
			out := cmd.OutOrStdout()
			if len(views) == 0 {
				fmt.Fprintf(out, "No %s clips in %s\n", cfg.Review.Mode, cfg.ClipDir())
				return nil
			}
			rows := make([][]string, 0, len(views))
			excludedCount := 0
			for _, v := range views {
				if v.Excluded {
					excludedCount++
				}
				rows = append(rows, []string{strconv.Itoa(v.Index), v.Name, yesNo(v.Excluded)})
			}
			fmt.Fprintln(out, renderTable([]string{"#", "Clip", "Excluded"}, rows, []columnAlignment{alignRight, alignLeft, alignLeft}))
			fmt.Fprintf(out, "%d %s clips (%d excluded) in %s\n", len(views), cfg.Review.Mode, excludedCount, cfg.ClipDir())
			return nil
		},
	}
	cmd.Flags().StringVarP(&modeFlag, "mode", "m", "", "Clips to list: all, good, or bad")
	cmd.Flags().StringVarP(&actionFlag, "action", "a", "", "Action class to list (e.g. A022)")
	addFormatFlag(cmd, &formatFlag)
	return cmd
}

func clipViews(clips []ledger.Clip, excluded *ledger.Ledger) []clipView {
	views := make([]clipView, 0, len(clips))
	for i, clip := range clips {
		view := clipView{
			Index:    i,
			Name:     dataset.Stem(clip.Video),
			Video:    clip.Video,
			Skeleton: clip.Skeleton,
			Excluded: excluded.Contains(clip),
		}
		if id, err := dataset.ParseClipID(view.Name); err == nil {
			view.ID = &id
		}
		views = append(views, view)
	}
	return views
}
