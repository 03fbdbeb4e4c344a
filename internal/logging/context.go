package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldAction is the action class label under review (e.g. A022).
	FieldAction = "action"
	// FieldMode is the review display mode.
	FieldMode = "mode"
	// FieldClip is the clip name derived from the video file.
	FieldClip = "clip"
	// FieldClipIndex is the 0-based position of a clip in the working list.
	FieldClipIndex = "clip_index"
	// FieldFrame is the 0-based frame index within a clip.
	FieldFrame = "frame"
	// FieldEventType classifies warnings and errors for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint tells the operator what to do next.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
)

type contextKey int

const (
	sessionKey contextKey = iota
	actionKey
)

// ContextWithSession tags ctx with a review session identifier.
func ContextWithSession(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey, id)
}

// ContextWithAction tags ctx with the action class under review.
func ContextWithAction(ctx context.Context, action string) context.Context {
	return context.WithValue(ctx, actionKey, action)
}

// SessionFromContext returns the session identifier stored in ctx.
func SessionFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(sessionKey).(string)
	return id, ok && id != ""
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if id, ok := SessionFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldSessionID, id))
	}
	if action, ok := ctx.Value(actionKey).(string); ok && action != "" {
		fields = append(fields, slog.String(FieldAction, action))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
