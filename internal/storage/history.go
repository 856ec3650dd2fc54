// ABOUTME: Workout history event-log operations for SQLite storage.
// ABOUTME: Insert-before-network durability and the monotonic synced flag live here.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/trainer/internal/models"
)

// InsertHistory durably stores a new history entry and returns its local
// identifier. The synced flag is always written as false regardless of the
// entry's field; only MarkSynced can flip it.
func (d *DB) InsertHistory(entry *models.HistoryEntry) (int64, error) {
	exercises, err := json.Marshal(entry.Exercises)
	if err != nil {
		return 0, fmt.Errorf("marshal exercise results: %w", err)
	}

	result, err := d.db.Exec(`
		INSERT INTO workout_history (day_id, day_name, duration_minutes, exercises, notes, logged_at, synced)
		VALUES (?, ?, ?, ?, ?, ?, 0)`,
		entry.DayID,
		entry.DayName,
		entry.DurationMinutes,
		string(exercises),
		entry.Notes,
		entry.LoggedAt.Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("insert history: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("history local id: %w", err)
	}
	entry.LocalID = id
	return id, nil
}

// MarkSynced flips the synced flag on a history row. The flag only ever
// moves false to true; there is no operation that clears it.
func (d *DB) MarkSynced(localID int64) error {
	result, err := d.db.Exec("UPDATE workout_history SET synced = 1 WHERE id = ?", localID)
	if err != nil {
		return fmt.Errorf("mark synced: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark synced: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("not found: history %d", localID)
	}
	return nil
}

// ListHistory returns all history entries ordered by logged_at descending.
func (d *DB) ListHistory() ([]*models.HistoryEntry, error) {
	rows, err := d.db.Query(`
		SELECT id, day_id, day_name, duration_minutes, exercises, notes, logged_at, synced
		FROM workout_history
		ORDER BY logged_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	return scanHistory(rows)
}

// UnsyncedHistory returns entries the server has not acknowledged yet,
// oldest first.
func (d *DB) UnsyncedHistory() ([]*models.HistoryEntry, error) {
	rows, err := d.db.Query(`
		SELECT id, day_id, day_name, duration_minutes, exercises, notes, logged_at, synced
		FROM workout_history
		WHERE synced = 0
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list unsynced history: %w", err)
	}
	defer rows.Close()

	return scanHistory(rows)
}

// ReplaceHistory refreshes the history table from a server fetch. Remote
// entries are stored with synced = true; local entries still awaiting sync
// are carried over with their local ids intact so queue references stay
// valid. Runs in one transaction so readers never observe the table empty.
func (d *DB) ReplaceHistory(remote []*models.HistoryEntry) error {
	return d.inTx(func(tx *sql.Tx) error {
		unsyncedRows, err := tx.Query(`
			SELECT id, day_id, day_name, duration_minutes, exercises, notes, logged_at, synced
			FROM workout_history
			WHERE synced = 0
			ORDER BY id ASC
		`)
		if err != nil {
			return fmt.Errorf("read unsynced history: %w", err)
		}
		unsynced, err := scanHistory(unsyncedRows)
		unsyncedRows.Close()
		if err != nil {
			return err
		}

		if _, err := tx.Exec("DELETE FROM workout_history"); err != nil {
			return fmt.Errorf("clear history: %w", err)
		}

		stmt, err := tx.Prepare(`
			INSERT INTO workout_history (day_id, day_name, duration_minutes, exercises, notes, logged_at, synced)
			VALUES (?, ?, ?, ?, ?, ?, 1)
		`)
		if err != nil {
			return fmt.Errorf("prepare history insert: %w", err)
		}
		defer stmt.Close()

		for _, entry := range remote {
			exercises, err := json.Marshal(entry.Exercises)
			if err != nil {
				return fmt.Errorf("marshal exercise results: %w", err)
			}
			_, err = stmt.Exec(
				entry.DayID,
				entry.DayName,
				entry.DurationMinutes,
				string(exercises),
				entry.Notes,
				entry.LoggedAt.Format(time.RFC3339),
			)
			if err != nil {
				return fmt.Errorf("insert remote history: %w", err)
			}
		}

		for _, entry := range unsynced {
			exercises, err := json.Marshal(entry.Exercises)
			if err != nil {
				return fmt.Errorf("marshal exercise results: %w", err)
			}
			_, err = tx.Exec(`
				INSERT INTO workout_history (id, day_id, day_name, duration_minutes, exercises, notes, logged_at, synced)
				VALUES (?, ?, ?, ?, ?, ?, ?, 0)`,
				entry.LocalID,
				entry.DayID,
				entry.DayName,
				entry.DurationMinutes,
				string(exercises),
				entry.Notes,
				entry.LoggedAt.Format(time.RFC3339),
			)
			if err != nil {
				return fmt.Errorf("reinsert unsynced history %d: %w", entry.LocalID, err)
			}
		}
		return nil
	})
}

// scanHistory scans rows into history entries.
func scanHistory(rows *sql.Rows) ([]*models.HistoryEntry, error) {
	var entries []*models.HistoryEntry

	for rows.Next() {
		var h models.HistoryEntry
		var exercises, loggedAt string
		var notes sql.NullString
		var synced int

		err := rows.Scan(&h.LocalID, &h.DayID, &h.DayName, &h.DurationMinutes,
			&exercises, &notes, &loggedAt, &synced)
		if err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}

		if err := json.Unmarshal([]byte(exercises), &h.Exercises); err != nil {
			return nil, fmt.Errorf("unmarshal exercise results: %w", err)
		}
		if notes.Valid {
			h.Notes = &notes.String
		}
		h.LoggedAt, _ = time.Parse(time.RFC3339, loggedAt)
		h.Synced = synced != 0

		entries = append(entries, &h)
	}

	return entries, rows.Err()
}
