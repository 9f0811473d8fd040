package store

import "time"

// Snapshot is a cached payload body with the stats shown when listing them
type Snapshot struct {
	ID            string    `db:"id"`
	Source        string    `db:"source"`
	GeneratedAt   string    `db:"generated_at"`
	FetchedAt     time.Time `db:"fetched_at"`
	ActivityCount int       `db:"activity_count"`
	TypeCount     int       `db:"type_count"`
	YearCount     int       `db:"year_count"`

	// Body is the raw JSON document; it is not loaded by ListSnapshots
	Body []byte `db:"body"`
}

// Sync state keys
const (
	StateLastSource  = "last_source"
	StateLastFetch   = "last_fetch"
	StateLastFailure = "last_failure"
)
