package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a session does not exist.
var ErrNotFound = errors.New("not found")

// BeginSession inserts a running session.
func (s *Store) BeginSession(ctx context.Context, session Session) error {
	if session.ID == "" {
		return errors.New("begin session: empty id")
	}
	if session.StartedAt.IsZero() {
		session.StartedAt = time.Now()
	}
	err := s.exec(ctx,
		`INSERT INTO sessions (id, action, category, mode, persist, status, started_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		session.ID,
		session.Action,
		session.Category,
		session.Mode,
		session.Persist,
		StatusRunning,
		formatTime(session.StartedAt),
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// FinishSession stores the final status and totals of a session.
func (s *Store) FinishSession(ctx context.Context, id, status string, totals Totals) error {
	if status == "" {
		status = StatusCompleted
	}
	ctx = ensureContext(ctx)
	var res sql.Result
	err := retryOnBusy(ctx, func() error {
		var execErr error
		res, execErr = s.db.ExecContext(ctx,
			`UPDATE sessions SET status = ?, finished_at = ?, clips = ?, frames = ?,
             excluded = ?, included = ?, skipped = ? WHERE id = ?`,
			status,
			formatTime(time.Now()),
			totals.Clips,
			totals.Frames,
			totals.Excluded,
			totals.Included,
			totals.Skipped,
			id,
		)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("finish session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("finish session %s: %w", id, ErrNotFound)
	}
	return nil
}

// GetSession loads one session.
func (s *Store) GetSession(ctx context.Context, id string) (*Session, error) {
	row := s.db.QueryRowContext(ensureContext(ctx),
		`SELECT id, action, category, mode, persist, status, started_at, finished_at,
                clips, frames, excluded, included, skipped
         FROM sessions WHERE id = ?`, id)
	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	return session, err
}

// ListSessions returns the most recent sessions, newest first. An empty
// action lists every action class.
func (s *Store) ListSessions(ctx context.Context, action string, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT id, action, category, mode, persist, status, started_at, finished_at,
                clips, frames, excluded, included, skipped
         FROM sessions WHERE (? = '' OR action = ?)
         ORDER BY started_at DESC LIMIT ?`, action, action, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	return sessions, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*Session, error) {
	var (
		session  Session
		started  string
		finished sql.NullString
	)
	err := row.Scan(
		&session.ID,
		&session.Action,
		&session.Category,
		&session.Mode,
		&session.Persist,
		&session.Status,
		&started,
		&finished,
		&session.Totals.Clips,
		&session.Totals.Frames,
		&session.Totals.Excluded,
		&session.Totals.Included,
		&session.Totals.Skipped,
	)
	if err != nil {
		return nil, err
	}
	session.StartedAt = parseTime(started)
	if finished.Valid {
		session.FinishedAt = parseTime(finished.String)
	}
	return &session, nil
}
