package review

import (
	"skelreview/internal/journal"
	"skelreview/internal/ledger"
)

// SkippedClip is a clip that could not be loaded.
type SkippedClip struct {
	Index  int         `json:"index" yaml:"index"`
	Clip   ledger.Clip `json:"clip" yaml:"clip"`
	Reason string      `json:"reason" yaml:"reason"`
}

// Summary reports what a session did.
type Summary struct {
	SessionID     string         `json:"session_id" yaml:"session_id"`
	Action        string         `json:"action" yaml:"action"`
	Mode          string         `json:"mode" yaml:"mode"`
	Clips         int            `json:"clips" yaml:"clips"`
	Visited       int            `json:"visited" yaml:"visited"`
	Frames        int            `json:"frames" yaml:"frames"`
	Excluded      int            `json:"excluded" yaml:"excluded"`
	Included      int            `json:"included" yaml:"included"`
	Discrepancies int            `json:"discrepancies" yaml:"discrepancies"`
	Skipped       []SkippedClip  `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Persisted     bool           `json:"persisted" yaml:"persisted"`
	Cancelled     bool           `json:"cancelled" yaml:"cancelled"`
	Ledger        *ledger.Ledger `json:"-" yaml:"-"`
}

// Totals converts the summary into journal counters.
func (s Summary) Totals() journal.Totals {
	return journal.Totals{
		Clips:    s.Visited,
		Frames:   s.Frames,
		Excluded: s.Excluded,
		Included: s.Included,
		Skipped:  len(s.Skipped),
	}
}
