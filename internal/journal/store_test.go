package journal_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"skelreview/internal/journal"
)

func openStore(t *testing.T) *journal.Store {
	t.Helper()
	store, err := journal.Open(filepath.Join(t.TempDir(), "logs", "journal.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSessionLifecycle(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	err := store.BeginSession(ctx, journal.Session{
		ID: "s1", Action: "A022", Category: "Daily_Actions", Mode: "all", Persist: true, StartedAt: start,
	})
	if err != nil {
		t.Fatalf("BeginSession: %v", err)
	}

	got, err := store.GetSession(ctx, "s1")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got.Status != journal.StatusRunning || !got.StartedAt.Equal(start) || !got.Persist {
		t.Fatalf("unexpected running session: %+v", got)
	}

	totals := journal.Totals{Clips: 4, Frames: 300, Excluded: 1, Skipped: 1}
	if err := store.FinishSession(ctx, "s1", journal.StatusCompleted, totals); err != nil {
		t.Fatalf("FinishSession: %v", err)
	}
	got, err = store.GetSession(ctx, "s1")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got.Status != journal.StatusCompleted || got.Totals != totals || got.FinishedAt.IsZero() {
		t.Fatalf("unexpected finished session: %+v", got)
	}
}

func TestFinishUnknownSession(t *testing.T) {
	store := openStore(t)
	err := store.FinishSession(context.Background(), "missing", "", journal.Totals{})
	if !errors.Is(err, journal.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.GetSession(context.Background(), "missing"); !errors.Is(err, journal.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEventsFilteredByAction(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	for _, s := range []journal.Session{
		{ID: "a", Action: "A022", Category: "Daily_Actions", Mode: "all"},
		{ID: "b", Action: "A031", Category: "Daily_Actions", Mode: "bad"},
	} {
		if err := store.BeginSession(ctx, s); err != nil {
			t.Fatalf("BeginSession %s: %v", s.ID, err)
		}
	}
	events := []journal.Event{
		{SessionID: "a", Kind: journal.EventExclude, ClipIndex: 0, Video: "v0", Skeleton: "s0", Frame: 12},
		{SessionID: "a", Kind: journal.EventSkip, ClipIndex: 1, Video: "v1", Skeleton: "s1", Detail: "line 4: expected 12 fields"},
		{SessionID: "b", Kind: journal.EventInclude, ClipIndex: 0, Video: "v9", Skeleton: "s9"},
	}
	for _, ev := range events {
		if err := store.RecordEvent(ctx, ev); err != nil {
			t.Fatalf("RecordEvent: %v", err)
		}
	}

	got, err := store.ListEvents(ctx, journal.Filter{Action: "A022"})
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].Kind != journal.EventSkip || got[0].Detail == "" {
		t.Fatalf("expected newest skip event first, got %+v", got[0])
	}
	if got[1].Frame != 12 || got[1].Video != "v0" {
		t.Fatalf("unexpected exclude event: %+v", got[1])
	}

	all, err := store.ListEvents(ctx, journal.Filter{Limit: 1})
	if err != nil || len(all) != 1 || all[0].SessionID != "b" {
		t.Fatalf("expected newest event only, got %+v err=%v", all, err)
	}

	sessions, err := store.ListSessions(ctx, "A031", 0)
	if err != nil || len(sessions) != 1 || sessions[0].Mode != "bad" {
		t.Fatalf("unexpected sessions: %+v err=%v", sessions, err)
	}
}

func TestReopenKeepsSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	store, err := journal.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.BeginSession(context.Background(), journal.Session{ID: "x", Action: "A001", Category: "Daily_Actions", Mode: "all"}); err != nil {
		t.Fatalf("BeginSession: %v", err)
	}
	_ = store.Close()

	reopened, err := journal.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if _, err := reopened.GetSession(context.Background(), "x"); err != nil {
		t.Fatalf("session lost across reopen: %v", err)
	}
}

func TestOpenRejectsOtherSchemaVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	store, err := journal.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	_ = store.Close()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	_ = db.Close()

	if _, err := journal.Open(path); !errors.Is(err, journal.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}
