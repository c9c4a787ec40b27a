package progress

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

// Repository is the append-only, database-backed progress log. Rows are
// returned in insertion order and are never updated or removed.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Append adds one entry at the end of the log.
func (r *Repository) Append(ctx context.Context, entry Entry) error {
	if entry.ID == "" {
		return fmt.Errorf("entry has no identifier")
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO progress_entries (id, entry_date, payload, created_at) VALUES (?, ?, ?, ?)`,
		entry.ID, entry.Date, string(payload), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to append progress entry: %w", err)
	}
	return nil
}

// List returns all entries in insertion order. Rows whose stored payload no
// longer parses are skipped with a warning; a corrupt row must never take
// down the history view.
func (r *Repository) List(ctx context.Context) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, payload FROM progress_entries ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var id, payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan progress entry: %w", err)
		}
		var entry Entry
		if err := json.Unmarshal([]byte(payload), &entry); err != nil {
			log.Printf("Warning: skipping corrupt progress entry %s: %v", id, err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
