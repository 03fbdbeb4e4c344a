package preflight

import (
	"path/filepath"

	"skelreview/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name     string `json:"name" yaml:"name"`
	Passed   bool   `json:"passed" yaml:"passed"`
	Optional bool   `json:"optional,omitempty" yaml:"optional,omitempty"`
	Detail   string `json:"detail" yaml:"detail"`
}

// RunAll executes every check for the given config: the clip directory, the
// writable state directories and the media binaries.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryReadable("Clip directory", cfg.ClipDir()),
		CheckDirectoryAccess("Ledger directory", cfg.Paths.LedgerDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
	}
	if cfg.Journal.Enabled {
		if dir := filepath.Dir(cfg.Journal.Path); dir != cfg.Paths.LogDir {
			results = append(results, CheckDirectoryAccess("Journal directory", dir))
		}
	}
	return append(results, CheckSystemDeps(cfg)...)
}

// Failed returns the required checks that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed && !r.Optional {
			failed = append(failed, r)
		}
	}
	return failed
}
