package journal

import "time"

// Session statuses.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusFailed    = "failed"
)

// Event kinds.
const (
	EventExclude = "exclude"
	EventInclude = "include"
	EventSkip    = "skip"
)

// Session is one review run.
type Session struct {
	ID         string    `json:"id" yaml:"id"`
	Action     string    `json:"action" yaml:"action"`
	Category   string    `json:"category" yaml:"category"`
	Mode       string    `json:"mode" yaml:"mode"`
	Persist    bool      `json:"persist" yaml:"persist"`
	Status     string    `json:"status" yaml:"status"`
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitzero" yaml:"finished_at,omitempty"`
	Totals     Totals    `json:"totals" yaml:"totals"`
}

// Totals are the counters a session reports when it ends.
type Totals struct {
	Clips    int `json:"clips" yaml:"clips"`
	Frames   int `json:"frames" yaml:"frames"`
	Excluded int `json:"excluded" yaml:"excluded"`
	Included int `json:"included" yaml:"included"`
	Skipped  int `json:"skipped" yaml:"skipped"`
}

// Event is one operator decision or skipped clip.
type Event struct {
	ID        int64     `json:"id" yaml:"id"`
	SessionID string    `json:"session_id" yaml:"session_id"`
	Kind      string    `json:"kind" yaml:"kind"`
	ClipIndex int       `json:"clip_index" yaml:"clip_index"`
	Video     string    `json:"video" yaml:"video"`
	Skeleton  string    `json:"skeleton" yaml:"skeleton"`
	Frame     int       `json:"frame" yaml:"frame"`
	Detail    string    `json:"detail,omitempty" yaml:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Filter narrows ListEvents.
type Filter struct {
	Action    string
	SessionID string
	Limit     int
}
