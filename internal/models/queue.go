// ABOUTME: Sync queue model for writes captured while offline.
// ABOUTME: One item per pending remote operation; deleted only on delivery.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Queue actions. Only workout logging queues today; the action column keeps
// the queue forward-compatible with other write kinds.
const ActionLogWorkout = "LOG_WORKOUT"

// QueueItem is one pending remote delivery. LocalID points at the history
// entry the payload belongs to. IdempotencyKey is sent with every delivery
// attempt so the server can deduplicate a retried item.
type QueueItem struct {
	ID             int64
	Action         string
	Payload        LogRequest
	LocalID        int64
	IdempotencyKey string
	CreatedAt      time.Time
}

// NewQueueItem creates a queue item for a workout log awaiting delivery.
func NewQueueItem(payload LogRequest, localID int64) *QueueItem {
	return &QueueItem{
		Action:         ActionLogWorkout,
		Payload:        payload,
		LocalID:        localID,
		IdempotencyKey: uuid.NewString(),
		CreatedAt:      time.Now(),
	}
}
