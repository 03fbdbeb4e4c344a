package dataset

import (
	"fmt"

	"skelreview/internal/config"
	"skelreview/internal/ledger"
)

// Select returns the working list for mode. "all" keeps every clip, "good"
// drops clips found in the ledger and "bad" keeps only those. Ledger entries
// that match no discovered clip are ignored.
func Select(mode string, clips []ledger.Clip, excluded *ledger.Ledger) ([]ledger.Clip, error) {
	switch mode {
	case config.ModeAll:
		return append([]ledger.Clip(nil), clips...), nil
	case config.ModeGood, config.ModeBad:
		want := mode == config.ModeBad
		selected := make([]ledger.Clip, 0, len(clips))
		for _, clip := range clips {
			if excluded.Contains(clip) == want {
				selected = append(selected, clip)
			}
		}
		return selected, nil
	default:
		return nil, fmt.Errorf("unknown review mode %q", mode)
	}
}
