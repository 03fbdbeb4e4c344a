package config

import "strings"

// Overrides replace configured review settings for a single run.
type Overrides struct {
	Mode      string
	Category  string
	Action    string
	NoPersist bool
}

// Apply returns a copy of c with o applied, normalized and validated. c is
// not modified.
func (c *Config) Apply(o Overrides) (*Config, error) {
	next := *c
	if value := strings.TrimSpace(o.Mode); value != "" {
		next.Review.Mode = value
	}
	if value := strings.TrimSpace(o.Category); value != "" {
		next.Dataset.Category = value
	}
	if value := strings.TrimSpace(o.Action); value != "" {
		next.Dataset.Action = value
	}
	if o.NoPersist {
		next.Review.Persist = false
	}
	next.normalizeDataset()
	next.normalizeReview()
	if err := next.Validate(); err != nil {
		return nil, err
	}
	return &next, nil
}
