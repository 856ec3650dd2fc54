// ABOUTME: Sync queue operations for SQLite storage.
// ABOUTME: Pending writes survive restarts; items are deleted only after delivery.
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/trainer/internal/models"
)

// EnqueueSync stores a pending remote operation and returns its queue id.
func (d *DB) EnqueueSync(item *models.QueueItem) (int64, error) {
	payload, err := json.Marshal(item.Payload)
	if err != nil {
		return 0, fmt.Errorf("marshal queue payload: %w", err)
	}

	result, err := d.db.Exec(`
		INSERT INTO sync_queue (action, payload, local_id, idempotency_key, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		item.Action,
		string(payload),
		item.LocalID,
		item.IdempotencyKey,
		item.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("enqueue sync item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("queue item id: %w", err)
	}
	item.ID = id
	return id, nil
}

// QueueItems returns all pending items in insertion order.
func (d *DB) QueueItems() ([]*models.QueueItem, error) {
	rows, err := d.db.Query(`
		SELECT id, action, payload, local_id, idempotency_key, created_at
		FROM sync_queue
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list queue items: %w", err)
	}
	defer rows.Close()

	var items []*models.QueueItem
	for rows.Next() {
		var item models.QueueItem
		var payload, createdAt string

		err := rows.Scan(&item.ID, &item.Action, &payload, &item.LocalID,
			&item.IdempotencyKey, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("scan queue item: %w", err)
		}

		if err := json.Unmarshal([]byte(payload), &item.Payload); err != nil {
			return nil, fmt.Errorf("unmarshal queue payload: %w", err)
		}
		item.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

		items = append(items, &item)
	}

	return items, rows.Err()
}

// DeleteQueueItem removes a queue item. Deleting an id that is already gone
// is a no-op, so a re-run flush never errors here.
func (d *DB) DeleteQueueItem(id int64) error {
	if _, err := d.db.Exec("DELETE FROM sync_queue WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete queue item: %w", err)
	}
	return nil
}

// QueueLen returns the number of pending items.
func (d *DB) QueueLen() (int, error) {
	var n int
	if err := d.db.QueryRow("SELECT COUNT(*) FROM sync_queue").Scan(&n); err != nil {
		return 0, fmt.Errorf("count queue items: %w", err)
	}
	return n, nil
}
