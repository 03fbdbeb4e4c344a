// Package journal records review sessions and operator decisions in SQLite.
//
// The exception ledger files hold only the current set of excluded clips;
// the journal keeps the history behind them: who reviewed which action class
// in which mode, every exclude and include, and every clip that had to be
// skipped. Entries are append-only apart from the closing update of a
// session's totals.
//
// The database lives at journal.path (default <log_dir>/journal.db). A
// schema version mismatch is reported as ErrSchemaMismatch; delete the file
// to start a fresh journal.
package journal
