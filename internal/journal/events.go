package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// RecordEvent appends an event to its session.
func (s *Store) RecordEvent(ctx context.Context, event Event) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	err := s.exec(ctx,
		`INSERT INTO events (session_id, kind, clip_index, video, skeleton, frame, detail, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		event.SessionID,
		event.Kind,
		event.ClipIndex,
		event.Video,
		event.Skeleton,
		event.Frame,
		nullableString(event.Detail),
		formatTime(event.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("record %s event: %w", event.Kind, err)
	}
	return nil
}

// ListEvents returns events newest first.
func (s *Store) ListEvents(ctx context.Context, filter Filter) ([]Event, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT e.id, e.session_id, e.kind, e.clip_index, e.video, e.skeleton, e.frame, e.detail, e.created_at
         FROM events e JOIN sessions s ON s.id = e.session_id
         WHERE (? = '' OR s.action = ?) AND (? = '' OR e.session_id = ?)
         ORDER BY e.id DESC LIMIT ?`,
		filter.Action, filter.Action, filter.SessionID, filter.SessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			event   Event
			detail  sql.NullString
			created string
		)
		if err := rows.Scan(
			&event.ID,
			&event.SessionID,
			&event.Kind,
			&event.ClipIndex,
			&event.Video,
			&event.Skeleton,
			&event.Frame,
			&detail,
			&created,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		event.Detail = detail.String
		event.CreatedAt = parseTime(created)
		events = append(events, event)
	}
	return events, rows.Err()
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
