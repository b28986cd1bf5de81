package domain

import "time"

// SearchEvent is one append-only analytics row per search call.
// Rows are never mutated after insert.
type SearchEvent struct {
	ID          string
	Query       string
	Type        string
	Language    string
	ResultCount int
	DurationMs  int
	ZeroResults bool
	Filters     map[string]string
	UserID      string
	CreatedAt   time.Time
}
