package review

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"skelreview/internal/config"
	"skelreview/internal/dataset"
	"skelreview/internal/journal"
	"skelreview/internal/ledger"
	"skelreview/internal/logging"
	"skelreview/internal/media"
	"skelreview/internal/skeleton"
)

const defaultPollPeriod = time.Second / 30

// VideoStream is an open clip video.
type VideoStream interface {
	ReadFrame() (*media.Frame, error)
	Close() error
}

// VideoOpener opens clip videos.
type VideoOpener interface {
	OpenVideo(ctx context.Context, path string) (VideoStream, error)
}

// OpenerFunc adapts a function to VideoOpener.
type OpenerFunc func(ctx context.Context, path string) (VideoStream, error)

// OpenVideo calls f.
func (f OpenerFunc) OpenVideo(ctx context.Context, path string) (VideoStream, error) {
	return f(ctx, path)
}

// Display draws overlay primitives into frames and shows them.
type Display interface {
	DrawMarker(f *media.Frame, x, y int)
	DrawLine(f *media.Frame, x0, y0, x1, y1 int)
	Present(f *media.Frame) error
}

// KeySource reports operator key presses.
type KeySource interface {
	PollKey(timeout time.Duration) (string, bool)
}

// LedgerStore persists exception ledgers per action class.
type LedgerStore interface {
	Save(action string, l *ledger.Ledger) error
	SaveMerged(action string, l *ledger.Ledger) (*ledger.Ledger, error)
}

// Recorder keeps a history of sessions and decisions.
type Recorder interface {
	BeginSession(ctx context.Context, session journal.Session) error
	RecordEvent(ctx context.Context, event journal.Event) error
	FinishSession(ctx context.Context, id, status string, totals journal.Totals) error
}

// Options configures a Session. Videos, Display, Keys and Store are required;
// Store may be nil only when Persist is false.
type Options struct {
	SessionID  string
	Category   string
	Action     string
	Mode       string
	Persist    bool
	PollPeriod time.Duration

	// Clips is the working list, already selected for Mode.
	Clips []ledger.Clip
	// Ledger is the in-session exception ledger; see StartingLedger.
	Ledger *ledger.Ledger

	Videos    VideoOpener
	Display   Display
	Keys      KeySource
	KeyMap    KeyMap
	Store     LedgerStore
	Recorder  Recorder
	Documents *DocumentCache
	Bones     Bones
	Logger    *slog.Logger
}

// Session is one review run over a working list.
type Session struct {
	opts    Options
	ledger  *ledger.Ledger
	docs    *DocumentCache
	keymap  KeyMap
	logger  *slog.Logger
	summary Summary
}

// StartingLedger returns the in-session ledger for mode. Reviewing excluded
// clips edits a copy of the persisted ledger; the other modes start empty and
// are merged into the persisted ledger when the session stops.
func StartingLedger(mode string, persisted *ledger.Ledger) *ledger.Ledger {
	if mode == config.ModeBad && persisted != nil {
		return persisted.Clone()
	}
	return ledger.New()
}

// NewSession validates opts and prepares a session.
func NewSession(opts Options) (*Session, error) {
	switch opts.Mode {
	case config.ModeAll, config.ModeGood, config.ModeBad:
	default:
		return nil, fmt.Errorf("unknown review mode %q", opts.Mode)
	}
	if opts.Videos == nil || opts.Display == nil || opts.Keys == nil {
		return nil, errors.New("review session requires a video opener, display and key source")
	}
	if opts.Persist && opts.Store == nil {
		return nil, errors.New("review session persistence requires a ledger store")
	}
	if opts.PollPeriod <= 0 {
		opts.PollPeriod = defaultPollPeriod
	}
	if opts.Bones == nil {
		opts.Bones = skeleton.ParentJoint
	}
	s := &Session{
		opts:   opts,
		ledger: opts.Ledger,
		docs:   opts.Documents,
		keymap: opts.KeyMap,
	}
	if s.ledger == nil {
		s.ledger = ledger.New()
	}
	if s.docs == nil {
		s.docs = NewDocumentCache(0, nil)
	}
	if s.keymap == nil {
		s.keymap = NewKeyMap(config.Default().Review.Keys)
	}
	logger := logging.NewComponentLogger(opts.Logger, "review")
	s.logger = logger.With(
		logging.String(logging.FieldAction, opts.Action),
		logging.String(logging.FieldMode, opts.Mode),
	)
	s.summary = Summary{
		SessionID: opts.SessionID,
		Action:    opts.Action,
		Mode:      opts.Mode,
		Clips:     len(opts.Clips),
	}
	return s, nil
}

// Ledger returns the in-session ledger.
func (s *Session) Ledger() *ledger.Ledger {
	return s.ledger
}

// Run drives the session until the operator quits, the working list is
// exhausted or ctx is cancelled. The ledger is persisted in every case; the
// returned error reports a display failure or a failed save.
func (s *Session) Run(ctx context.Context) (Summary, error) {
	s.begin(ctx)

	var runErr error
	state := Loading(0)
	for state.Kind != StateStopped {
		if ctx.Err() != nil {
			break
		}
		if state.Clip >= len(s.opts.Clips) {
			break
		}
		state, runErr = s.playClip(ctx, state.Clip)
		if runErr != nil {
			break
		}
	}
	s.summary.Cancelled = ctx.Err() != nil

	if runErr != nil {
		logging.ErrorWithContext(s.logger, "review display failed", "display_failed",
			logging.Error(runErr),
			logging.String(logging.FieldImpact, "session stopped early; the ledger is still saved"),
			logging.String(logging.FieldErrorHint, "check that ffplay can open a window"),
		)
	}
	saveErr := s.stop()
	if saveErr != nil {
		logging.ErrorWithContext(s.logger, "exception ledger not saved", "ledger_save_failed",
			logging.Error(saveErr),
			logging.String(logging.FieldImpact, "decisions from this session are lost"),
			logging.String(logging.FieldErrorHint, "check ledger directory permissions or another running review"),
		)
	}
	s.finish(ctx, runErr, saveErr)
	return s.summary, errors.Join(runErr, saveErr)
}

// playClip runs Loading(i) and the Playing(i, ·) states that follow it, and
// returns the next Loading or Stopped state. The clip's video is always
// closed before it returns.
func (s *Session) playClip(ctx context.Context, i int) (State, error) {
	clip := s.opts.Clips[i]
	logger := s.logger.With(
		logging.Int(logging.FieldClipIndex, i),
		logging.String(logging.FieldClip, dataset.Stem(clip.Video)),
	)
	s.summary.Visited++

	doc, cached, err := s.docs.Get(clip.Skeleton)
	if err != nil {
		s.skip(ctx, logger, i, clip, err)
		return Loading(i + 1), nil
	}
	video, err := s.opts.Videos.OpenVideo(ctx, clip.Video)
	if err != nil {
		if ctx.Err() != nil {
			return Stopped(), nil
		}
		s.skip(ctx, logger, i, clip, err)
		return Loading(i + 1), nil
	}
	defer func() {
		if err := video.Close(); err != nil {
			logger.Debug("video close failed", logging.Error(err))
		}
	}()

	logger.Info("clip loaded",
		logging.Int("frames", doc.FrameCount()),
		logging.Bool("cached", cached),
		logging.Int("position", i+1),
		logging.Int("of", len(s.opts.Clips)),
	)

	state := Playing(i, 0)
	reported := false
	for {
		if ctx.Err() != nil {
			return Stopped(), nil
		}
		if state.Frame >= doc.FrameCount() {
			return Loading(i + 1), nil
		}
		frame, err := video.ReadFrame()
		if errors.Is(err, io.EOF) {
			logger.Debug("video ended before skeleton",
				logging.Int(logging.FieldFrame, state.Frame),
				logging.Int("declared_frames", doc.FrameCount()),
			)
			return Loading(i + 1), nil
		}
		if err != nil {
			logging.WarnWithContext(logger, "video read failed; moving to next clip", "video_read_failed",
				logging.Int(logging.FieldFrame, state.Frame),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check the video with ffprobe"),
				logging.String(logging.FieldImpact, "remaining frames of this clip were not shown"),
			)
			return Loading(i + 1), nil
		}

		overlay, err := PlanOverlay(doc, state.Frame, s.opts.Bones)
		if err != nil || overlay.Skipped > 0 {
			s.summary.Discrepancies++
			if !reported {
				reported = true
				s.reportDiscrepancy(logger, state, overlay, err)
			}
		}
		s.draw(frame, overlay.Ops)
		if err := s.opts.Display.Present(frame); err != nil {
			return Stopped(), fmt.Errorf("present clip %d frame %d: %w", i, state.Frame, err)
		}
		s.summary.Frames++

		key, _ := s.opts.Keys.PollKey(s.opts.PollPeriod)
		ev := s.keymap.Translate(key)
		switch ev {
		case EventExclude:
			s.exclude(ctx, logger, state)
		case EventInclude:
			s.include(ctx, logger, state)
		}
		if n := next(state, ev); n.Kind != StatePlaying {
			logger.Debug("leaving clip", logging.String("event", ev.String()), logging.String("next", n.String()))
			return n, nil
		}
		state.Frame++
	}
}

func (s *Session) draw(frame *media.Frame, ops []DrawOp) {
	for _, op := range ops {
		switch op.Kind {
		case OpMarker:
			s.opts.Display.DrawMarker(frame, op.X0, op.Y0)
		case OpLine:
			s.opts.Display.DrawLine(frame, op.X0, op.Y0, op.X1, op.Y1)
		}
	}
}

func (s *Session) reportDiscrepancy(logger *slog.Logger, state State, overlay Overlay, err error) {
	attrs := []logging.Attr{
		logging.Int(logging.FieldFrame, state.Frame),
		logging.Int("skipped_bones", overlay.Skipped),
		logging.String(logging.FieldErrorHint, "the skeleton file declares more data than it holds"),
		logging.String(logging.FieldImpact, "overlay incomplete; playback continues"),
	}
	if err != nil {
		attrs = append(attrs, logging.Error(err))
	}
	logging.WarnWithContext(logger, "overlay skipped for part of clip", "overlay_discrepancy", attrs...)
}

func (s *Session) skip(ctx context.Context, logger *slog.Logger, i int, clip ledger.Clip, err error) {
	eventType := "clip_load_failed"
	hint := "check that the video and skeleton files exist and are readable"
	if skeleton.IsFormatError(err) {
		eventType = "skeleton_format_error"
		hint = "the skeleton file is malformed; exclude the clip or regenerate the file"
	}
	logging.WarnWithContext(logger, "clip skipped", eventType,
		logging.Error(err),
		logging.String(logging.FieldErrorHint, hint),
		logging.String(logging.FieldImpact, "clip was not reviewed"),
	)
	s.summary.Skipped = append(s.summary.Skipped, SkippedClip{Index: i, Clip: clip, Reason: err.Error()})
	s.record(ctx, journal.Event{Kind: journal.EventSkip, ClipIndex: i, Video: clip.Video, Skeleton: clip.Skeleton, Detail: err.Error()})
}

func (s *Session) exclude(ctx context.Context, logger *slog.Logger, state State) {
	clip := s.opts.Clips[state.Clip]
	if !s.ledger.Exclude(clip) {
		logger.Debug("clip already excluded")
		return
	}
	s.summary.Excluded++
	logger.Info("clip excluded", logging.Int(logging.FieldFrame, state.Frame))
	s.record(ctx, journal.Event{Kind: journal.EventExclude, ClipIndex: state.Clip, Video: clip.Video, Skeleton: clip.Skeleton, Frame: state.Frame})
}

func (s *Session) include(ctx context.Context, logger *slog.Logger, state State) {
	if s.opts.Mode != config.ModeBad {
		logging.WarnWithContext(logger, "include ignored", "include_not_allowed",
			logging.Error(ledger.ErrIncludeNotAllowed),
			logging.String(logging.FieldErrorHint, "rerun with --mode bad to re-include clips"),
			logging.String(logging.FieldImpact, "ledger unchanged"),
		)
		return
	}
	clip := s.opts.Clips[state.Clip]
	if !s.ledger.Include(clip) {
		logger.Debug("clip not in ledger")
		return
	}
	s.summary.Included++
	logger.Info("clip included", logging.Int(logging.FieldFrame, state.Frame))
	s.record(ctx, journal.Event{Kind: journal.EventInclude, ClipIndex: state.Clip, Video: clip.Video, Skeleton: clip.Skeleton, Frame: state.Frame})
}

// stop persists the ledger. Reviewing excluded clips overwrites the stored
// ledger so includes stick; other modes merge into it.
func (s *Session) stop() error {
	s.summary.Ledger = s.ledger.Clone()
	if !s.opts.Persist {
		return nil
	}
	if s.opts.Mode == config.ModeBad {
		if err := s.opts.Store.Save(s.opts.Action, s.ledger); err != nil {
			return fmt.Errorf("save ledger: %w", err)
		}
	} else {
		merged, err := s.opts.Store.SaveMerged(s.opts.Action, s.ledger)
		if err != nil {
			return fmt.Errorf("save ledger: %w", err)
		}
		s.summary.Ledger = merged
	}
	s.summary.Persisted = true
	videos, skeletons := s.summary.Ledger.Len()
	s.logger.Info("ledger saved", logging.Int("videos", videos), logging.Int("skeletons", skeletons))
	return nil
}

func (s *Session) begin(ctx context.Context) {
	s.logger.Info("review session started",
		logging.Int("clips", len(s.opts.Clips)),
		logging.Bool("persist", s.opts.Persist),
	)
	if s.opts.Recorder == nil {
		return
	}
	err := s.opts.Recorder.BeginSession(context.WithoutCancel(ctx), journal.Session{
		ID:        s.opts.SessionID,
		Action:    s.opts.Action,
		Category:  s.opts.Category,
		Mode:      s.opts.Mode,
		Persist:   s.opts.Persist,
		StartedAt: time.Now(),
	})
	if err != nil {
		s.journalFailed(err)
		s.opts.Recorder = nil
	}
}

func (s *Session) record(ctx context.Context, event journal.Event) {
	if s.opts.Recorder == nil {
		return
	}
	event.SessionID = s.opts.SessionID
	if err := s.opts.Recorder.RecordEvent(context.WithoutCancel(ctx), event); err != nil {
		s.journalFailed(err)
	}
}

func (s *Session) finish(ctx context.Context, runErr, saveErr error) {
	status := journal.StatusCompleted
	switch {
	case runErr != nil || saveErr != nil:
		status = journal.StatusFailed
	case s.summary.Cancelled:
		status = journal.StatusCancelled
	}
	s.logger.Info("review session finished",
		logging.String("status", status),
		logging.Int("visited", s.summary.Visited),
		logging.Int("frames", s.summary.Frames),
		logging.Int("excluded", s.summary.Excluded),
		logging.Int("included", s.summary.Included),
		logging.Int("skipped", len(s.summary.Skipped)),
	)
	if s.opts.Recorder == nil {
		return
	}
	if err := s.opts.Recorder.FinishSession(context.WithoutCancel(ctx), s.opts.SessionID, status, s.summary.Totals()); err != nil {
		s.journalFailed(err)
	}
}

func (s *Session) journalFailed(err error) {
	logging.WarnWithContext(s.logger, "journal write failed", "journal_write_failed",
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "check journal.path or disable the journal"),
		logging.String(logging.FieldImpact, "review history incomplete; ledger unaffected"),
	)
}
