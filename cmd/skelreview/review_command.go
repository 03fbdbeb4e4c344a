package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"skelreview/internal/config"
	"skelreview/internal/dataset"
	"skelreview/internal/journal"
	"skelreview/internal/logging"
	"skelreview/internal/media"
	"skelreview/internal/preflight"
	"skelreview/internal/review"
)

func newReviewCommand(ctx *commandContext) *cobra.Command {
	var overrides config.Overrides
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Play clips with their skeleton overlay and record exclusions",
		Long: "Plays each clip of the configured action class with its skeleton drawn on top.\n" +
			"Keys (defaults): e next clip, q previous clip, x exclude, i re-include (bad mode), esc quit.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.withOverrides(overrides)
			if err != nil {
				return err
			}
			return runReview(cmd, cfg)
		},
	}
	cmd.Flags().StringVarP(&overrides.Mode, "mode", "m", "", "Clips to review: all, good, or bad")
	cmd.Flags().StringVarP(&overrides.Action, "action", "a", "", "Action class to review (e.g. A022)")
	cmd.Flags().StringVar(&overrides.Category, "category", "", "Dataset category holding the action class")
	cmd.Flags().BoolVar(&overrides.NoPersist, "no-persist", false, "Do not write the exception ledger when the review stops")
	return cmd
}

func runReview(cmd *cobra.Command, cfg *config.Config) error {
	if failed := preflight.Failed(preflight.RunAll(cfg)); len(failed) > 0 {
		parts := make([]string, 0, len(failed))
		for _, r := range failed {
			parts = append(parts, fmt.Sprintf("%s: %s", r.Name, r.Detail))
		}
		return fmt.Errorf("preflight failed: %s", strings.Join(parts, "; "))
	}

	sessionID := uuid.NewString()
	baseLogger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger := logging.WithSessionID(baseLogger, sessionID)

	clips, err := dataset.Discover(cfg.ClipDir(), cfg.Dataset.VideoExt, cfg.Dataset.SkeletonExt, logger)
	if err != nil {
		return err
	}
	store := newLedgerStore(cfg, logger)
	persisted, err := store.Load(cfg.Dataset.Action)
	if err != nil {
		return err
	}
	working, err := dataset.Select(cfg.Review.Mode, clips, persisted)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(working) == 0 {
		fmt.Fprintf(out, "No clips to review for %s in mode %s (%s)\n", cfg.Dataset.Action, cfg.Review.Mode, cfg.ClipDir())
		return nil
	}

	runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	runCtx = logging.ContextWithSession(runCtx, sessionID)
	runCtx = logging.ContextWithAction(runCtx, cfg.Dataset.Action)

	var recorder review.Recorder
	if cfg.Journal.Enabled {
		journalStore, err := journal.Open(cfg.Journal.Path)
		if err != nil {
			logging.WarnWithContext(logger, "review journal unavailable", "journal_open_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "this session will not be recorded"),
				logging.String(logging.FieldErrorHint, "check journal.path or set journal.enabled = false"),
			)
		} else {
			defer journalStore.Close()
			recorder = journalStore
		}
	}

	keys, err := media.OpenKeyPoller(logger)
	if err != nil {
		if errors.Is(err, media.ErrNotTerminal) {
			return errors.New("review needs an interactive terminal on stdin")
		}
		return err
	}
	defer keys.Close()

	decoder := media.NewDecoder(cfg.Media.FFmpegBinary, cfg.Media.FFprobeBinary, logger)
	presenter := media.NewPresenter(cfg.Media.FFplayBinary, cfg.Media.WindowTitle, cfg.Review.FrameRate, logger)
	canvas := media.NewCanvas(media.Style{MarkerRadius: cfg.Media.MarkerRadius, LineWidth: cfg.Media.LineWidth}, presenter)
	defer canvas.Close()

	session, err := review.NewSession(review.Options{
		SessionID:  sessionID,
		Category:   cfg.Dataset.Category,
		Action:     cfg.Dataset.Action,
		Mode:       cfg.Review.Mode,
		Persist:    cfg.Review.Persist,
		PollPeriod: cfg.PollPeriod(),
		Clips:      working,
		Ledger:     review.StartingLedger(cfg.Review.Mode, persisted),
		Videos: review.OpenerFunc(func(ctx context.Context, path string) (review.VideoStream, error) {
			video, err := decoder.OpenVideo(ctx, path)
			if err != nil {
				return nil, err
			}
			return video, nil
		}),
		Display:   canvas,
		Keys:      keys,
		KeyMap:    review.NewKeyMap(cfg.Review.Keys),
		Store:     store,
		Recorder:  recorder,
		Documents: review.NewDocumentCache(cfg.DocumentCacheTTL(), nil),
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	summary, runErr := session.Run(runCtx)
	// Restore the terminal before printing the report.
	_ = keys.Close()
	_ = canvas.Close()

	videoList, skeletonList := store.Paths(cfg.Dataset.Action)
	renderReviewReport(out, summary, videoList, skeletonList)
	return runErr
}
