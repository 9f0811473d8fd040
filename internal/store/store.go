package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"strava-heatmaps/internal/payload"
)

// timeLayout is fixed width so fetched_at sorts as text
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store is the application's snapshot cache
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// newStore creates a Store from a database connection.
func newStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// --- Sync State Methods ---

// GetSyncState retrieves a sync state value by key.
// Returns empty string if key doesn't exist.
func (s *Store) GetSyncState(key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(context.Background(), `
		SELECT value FROM sync_state WHERE key = ?
	`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

// SetSyncState sets a sync state value.
func (s *Store) SetSyncState(key, value string) error {
	_, err := s.db.ExecContext(context.Background(), `
		INSERT INTO sync_state (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`, key, value)
	return err
}

// --- Snapshot Methods ---

// SaveSnapshot records a successfully loaded payload and its raw body.
// The snapshot gets a fresh ID and the current time as FetchedAt.
func (s *Store) SaveSnapshot(source string, p *payload.Payload, body []byte) (*Snapshot, error) {
	if p == nil || len(body) == 0 {
		return nil, errors.New("empty snapshot")
	}

	snap := &Snapshot{
		ID:            uuid.NewString(),
		Source:        source,
		GeneratedAt:   p.GeneratedAt,
		FetchedAt:     s.now().UTC(),
		ActivityCount: len(p.Activities),
		TypeCount:     len(p.Types),
		YearCount:     len(p.Years),
		Body:          body,
	}

	tx, err := s.db.BeginTx(context.Background(), nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO snapshots (id, source, generated_at, fetched_at,
			activity_count, type_count, year_count, body)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, snap.ID, snap.Source, snap.GeneratedAt, snap.FetchedAt.Format(timeLayout),
		snap.ActivityCount, snap.TypeCount, snap.YearCount, snap.Body)
	if err != nil {
		return nil, fmt.Errorf("inserting snapshot: %w", err)
	}

	for key, value := range map[string]string{
		StateLastSource: source,
		StateLastFetch:  snap.FetchedAt.Format(time.RFC3339),
	} {
		_, err := tx.Exec(`
			INSERT INTO sync_state (key, value, updated_at)
			VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(key) DO UPDATE SET
				value = excluded.value,
				updated_at = CURRENT_TIMESTAMP
		`, key, value)
		if err != nil {
			return nil, fmt.Errorf("updating sync state: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing snapshot: %w", err)
	}
	return snap, nil
}

// LatestSnapshot returns the most recently fetched snapshot including its
// body. Returns ErrNoSnapshot when the cache is empty.
func (s *Store) LatestSnapshot() (*Snapshot, error) {
	return s.scanSnapshot(s.db.QueryRowContext(context.Background(), `
		SELECT id, source, generated_at, fetched_at,
			activity_count, type_count, year_count, body
		FROM snapshots
		ORDER BY fetched_at DESC
		LIMIT 1
	`))
}

// GetSnapshot returns one snapshot including its body
func (s *Store) GetSnapshot(id string) (*Snapshot, error) {
	return s.scanSnapshot(s.db.QueryRowContext(context.Background(), `
		SELECT id, source, generated_at, fetched_at,
			activity_count, type_count, year_count, body
		FROM snapshots
		WHERE id = ?
	`, id))
}

func (s *Store) scanSnapshot(row *sql.Row) (*Snapshot, error) {
	var snap Snapshot
	var generatedAt sql.NullString
	var fetchedAt string
	err := row.Scan(&snap.ID, &snap.Source, &generatedAt, &fetchedAt,
		&snap.ActivityCount, &snap.TypeCount, &snap.YearCount, &snap.Body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, err
	}

	snap.GeneratedAt = generatedAt.String
	snap.FetchedAt, _ = time.Parse(timeLayout, fetchedAt)
	return &snap, nil
}

// ListSnapshots returns snapshot metadata, newest first. Bodies are not
// loaded. A limit of zero or less returns every snapshot.
func (s *Store) ListSnapshots(limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(context.Background(), `
		SELECT id, source, generated_at, fetched_at,
			activity_count, type_count, year_count
		FROM snapshots
		ORDER BY fetched_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var snap Snapshot
		var generatedAt sql.NullString
		var fetchedAt string
		if err := rows.Scan(&snap.ID, &snap.Source, &generatedAt, &fetchedAt,
			&snap.ActivityCount, &snap.TypeCount, &snap.YearCount); err != nil {
			return nil, err
		}
		snap.GeneratedAt = generatedAt.String
		snap.FetchedAt, _ = time.Parse(timeLayout, fetchedAt)
		snapshots = append(snapshots, snap)
	}
	return snapshots, rows.Err()
}

// PruneSnapshots deletes all but the keep most recent snapshots and
// returns how many were removed
func (s *Store) PruneSnapshots(keep int) (int64, error) {
	if keep < 1 {
		keep = 1
	}

	result, err := s.db.ExecContext(context.Background(), `
		DELETE FROM snapshots
		WHERE id NOT IN (
			SELECT id FROM snapshots ORDER BY fetched_at DESC LIMIT ?
		)
	`, keep)
	if err != nil {
		return 0, fmt.Errorf("pruning snapshots: %w", err)
	}
	return result.RowsAffected()
}
