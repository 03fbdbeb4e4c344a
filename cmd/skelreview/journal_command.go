package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"skelreview/internal/dataset"
	"skelreview/internal/journal"
)

const journalTimeLayout = "2006-01-02 15:04:05"

func newJournalCommand(ctx *commandContext) *cobra.Command {
	var (
		actionFlag  string
		sessionFlag string
		limit       int
		sessions    bool
		formatFlag  string
	)
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Show recorded review sessions and decisions",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat(formatFlag)
			if err != nil {
				return err
			}
			cfg, err := ctx.withOverrides(overridesForAction(actionFlag))
			if err != nil {
				return err
			}
			if !cfg.Journal.Enabled {
				return errors.New("review journal is disabled (journal.enabled = false)")
			}
			store, err := journal.Open(cfg.Journal.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if sessions {
				list, err := store.ListSessions(cmd.Context(), cfg.Dataset.Action, limit)
				if err != nil {
					return err
				}
				if handled, err := writeStructured(cmd, format, list); handled {
					return err
				}
				if len(list) == 0 {
					fmt.Fprintf(out, "No review sessions recorded for %s\n", cfg.Dataset.Action)
					return nil
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Session", "Started", "Mode", "Status", "Clips", "Frames", "Excluded", "Included", "Skipped"},
					sessionRows(list),
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight},
				))
				return nil
			}

			events, err := store.ListEvents(cmd.Context(), journal.Filter{
				Action:    cfg.Dataset.Action,
				SessionID: sessionFlag,
				Limit:     limit,
			})
			if err != nil {
				return err
			}
			if handled, err := writeStructured(cmd, format, events); handled {
				return err
			}
			if len(events) == 0 {
				fmt.Fprintf(out, "No journal entries for %s\n", cfg.Dataset.Action)
				return nil
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Time", "Session", "Kind", "Clip", "Frame", "Detail"},
				eventRows(events),
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}
	cmd.Flags().StringVarP(&actionFlag, "action", "a", "", "Action class to show (e.g. A022)")
	cmd.Flags().StringVar(&sessionFlag, "session", "", "Only show decisions from this session ID")
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Maximum rows to show")
	cmd.Flags().BoolVar(&sessions, "sessions", false, "List sessions instead of decisions")
	addFormatFlag(cmd, &formatFlag)
	return cmd
}

func sessionRows(list []journal.Session) [][]string {
	rows := make([][]string, 0, len(list))
	for _, s := range list {
		rows = append(rows, []string{
			shortID(s.ID),
			formatJournalTime(s.StartedAt),
			s.Mode,
			s.Status,
			strconv.Itoa(s.Totals.Clips),
			strconv.Itoa(s.Totals.Frames),
			strconv.Itoa(s.Totals.Excluded),
			strconv.Itoa(s.Totals.Included),
			strconv.Itoa(s.Totals.Skipped),
		})
	}
	return rows
}

func eventRows(events []journal.Event) [][]string {
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{
			formatJournalTime(e.CreatedAt),
			shortID(e.SessionID),
			e.Kind,
			dataset.Stem(e.Video),
			strconv.Itoa(e.Frame),
			e.Detail,
		})
	}
	return rows
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatJournalTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(journalTimeLayout)
}
