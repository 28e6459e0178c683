package confirmcache

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

const entryColumns = "persistent_id, mod_time, size, isrc, status, reason, updated_at"

const upsertSQL = `INSERT INTO confirmations (` + entryColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(persistent_id) DO UPDATE SET
    mod_time = excluded.mod_time,
    size = excluded.size,
    isrc = excluded.isrc,
    status = excluded.status,
    reason = excluded.reason,
    updated_at = excluded.updated_at`

// Load returns every cached entry keyed by persistent id.
func (s *Store) Load(ctx context.Context) (map[string]Entry, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]Entry, len(entries))
	for _, entry := range entries {
		out[entry.PersistentID] = entry
	}
	return out, nil
}

// List returns cached entries ordered by persistent id.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+entryColumns+" FROM confirmations ORDER BY persistent_id")
	if err != nil {
		return nil, fmt.Errorf("query confirmations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate confirmations: %w", err)
	}
	return entries, nil
}

// Upsert stores a single entry.
func (s *Store) Upsert(ctx context.Context, entry Entry) error {
	return s.UpsertBatch(ctx, []Entry{entry})
}

// UpsertBatch stores entries in one transaction. Later entries for the same
// persistent id replace earlier ones.
func (s *Store) UpsertBatch(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	for _, entry := range entries {
		if strings.TrimSpace(entry.PersistentID) == "" {
			return fmt.Errorf("upsert confirmation: persistent id is required")
		}
		switch entry.Status {
		case StatusPresent, StatusAbsent, StatusError:
		default:
			return fmt.Errorf("upsert confirmation %s: invalid status %q", entry.PersistentID, entry.Status)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin upsert tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		stmt, err := tx.PrepareContext(ctx, upsertSQL)
		if err != nil {
			return fmt.Errorf("prepare upsert: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		now := time.Now().UTC()
		for _, entry := range entries {
			updated := entry.UpdatedAt
			if updated.IsZero() {
				updated = now
			}
			if _, err := stmt.ExecContext(ctx,
				entry.PersistentID,
				entry.ModTime,
				entry.Size,
				strings.ToUpper(strings.TrimSpace(entry.ISRC)),
				string(entry.Status),
				entry.Reason,
				updated.UTC().Format(time.RFC3339Nano),
			); err != nil {
				return fmt.Errorf("upsert confirmation %s: %w", entry.PersistentID, err)
			}
		}
		return tx.Commit()
	})
}

// Clear removes all entries and returns how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	err := retryOnBusy(ctx, func() error {
		res, err := s.db.ExecContext(ctx, "DELETE FROM confirmations")
		if err != nil {
			return err
		}
		removed, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("clear confirmations: %w", err)
	}
	return removed, nil
}

// Stats summarizes the cache by status.
type Stats struct {
	Total   int
	Present int
	Absent  int
	Error   int
}

// Stats counts entries per status.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT status, COUNT(1) FROM confirmations GROUP BY status")
	if err != nil {
		return Stats{}, fmt.Errorf("query confirmation stats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var stats Stats
	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return Stats{}, fmt.Errorf("scan confirmation stats: %w", err)
		}
		switch Status(status) {
		case StatusPresent:
			stats.Present = count
		case StatusAbsent:
			stats.Absent = count
		case StatusError:
			stats.Error = count
		}
		stats.Total += count
	}
	if err := rows.Err(); err != nil {
		return Stats{}, fmt.Errorf("iterate confirmation stats: %w", err)
	}
	return stats, nil
}

func scanEntry(rows *sql.Rows) (Entry, error) {
	var (
		entry   Entry
		status  string
		updated string
	)
	if err := rows.Scan(
		&entry.PersistentID,
		&entry.ModTime,
		&entry.Size,
		&entry.ISRC,
		&status,
		&entry.Reason,
		&updated,
	); err != nil {
		return Entry{}, fmt.Errorf("scan confirmation: %w", err)
	}
	entry.Status = Status(status)
	if ts, err := time.Parse(time.RFC3339Nano, updated); err == nil {
		entry.UpdatedAt = ts
	}
	return entry, nil
}
