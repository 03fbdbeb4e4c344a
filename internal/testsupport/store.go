package testsupport

import (
	"testing"

	"skelreview/internal/config"
	"skelreview/internal/journal"
	"skelreview/internal/ledger"
	"skelreview/internal/logging"
)

// MustOpenJournal opens the configured journal for tests and registers cleanup.
func MustOpenJournal(t testing.TB, cfg *config.Config) *journal.Store {
	t.Helper()

	store, err := journal.Open(cfg.Journal.Path)
	if err != nil {
		t.Fatalf("journal.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewLedgerStore returns a ledger store rooted at the configured ledger dir.
func NewLedgerStore(cfg *config.Config) *ledger.Store {
	return ledger.NewStore(cfg.Paths.LedgerDir, logging.NewNop())
}

// SeedLedger persists clips as the excluded set for action.
func SeedLedger(t testing.TB, store *ledger.Store, action string, clips ...ledger.Clip) {
	t.Helper()

	l := ledger.New()
	for _, clip := range clips {
		l.Exclude(clip)
	}
	if err := store.Save(action, l); err != nil {
		t.Fatalf("seed ledger: %v", err)
	}
}
