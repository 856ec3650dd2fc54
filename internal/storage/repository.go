// ABOUTME: Repository interface for the local workout store.
// ABOUTME: Defines the contract the offline service depends on.
package storage

import "github.com/harperreed/trainer/internal/models"

// Repository defines the storage interface for the local store.
// This interface allows swapping implementations (e.g., for testing).
//
// All table-replacing operations are atomic: a reader either sees the old
// contents or the new, never a partial refresh.
type Repository interface {
	// Exercise library (cached reference data)
	ReplaceExercises(exercises []models.Exercise) error
	ListExercises(filter models.ExerciseFilter) ([]models.Exercise, error)

	// Workout plan cache
	SavePlan(bundle *models.PlanBundle) error
	LatestPlan() (*models.PlanBundle, error)

	// Workout history (write-ahead event log)
	InsertHistory(entry *models.HistoryEntry) (int64, error)
	MarkSynced(localID int64) error
	ListHistory() ([]*models.HistoryEntry, error)
	UnsyncedHistory() ([]*models.HistoryEntry, error)
	ReplaceHistory(remote []*models.HistoryEntry) error

	// Sync queue
	EnqueueSync(item *models.QueueItem) (int64, error)
	QueueItems() ([]*models.QueueItem, error)
	DeleteQueueItem(id int64) error
	QueueLen() (int, error)

	// Lifecycle
	Close() error
}

// compile-time check that *DB satisfies Repository.
var _ Repository = (*DB)(nil)
