// ABOUTME: Offline-first service: seeding, accessors, write-ahead logging, queue flush.
// ABOUTME: Local store is the source of truth offline; the network is opportunistic.
package offline

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/harperreed/trainer/internal/models"
	"github.com/harperreed/trainer/internal/storage"
)

// historyFetchLimit caps how many history entries a refresh pulls. The
// server pages beyond this; the app only ever shows this window.
const historyFetchLimit = 100

// RemoteClient is the slice of the API client the service depends on.
type RemoteClient interface {
	Exercises(ctx context.Context, filter models.ExerciseFilter) ([]models.Exercise, error)
	ActivePlan(ctx context.Context) (*models.PlanBundle, error)
	History(ctx context.Context, limit, offset int) ([]*models.HistoryEntry, error)
	LogWorkout(ctx context.Context, payload models.LogRequest, idempotencyKey string) error
	Health(ctx context.Context) error
}

// Service is the offline-first data layer between the UI and the server.
//
// Reads prefer the network and fall back to the local store. Writes are
// durably stored locally before any delivery attempt; a network failure is
// never an error on the write path, only a reason to queue.
type Service struct {
	store  storage.Repository
	client RemoteClient
	conn   Connectivity
	log    *logrus.Logger

	// now is swappable for tests.
	now func() time.Time
}

// New creates a Service. A nil logger falls back to the logrus standard
// logger.
func New(store storage.Repository, client RemoteClient, conn Connectivity, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{
		store:  store,
		client: client,
		conn:   conn,
		log:    log,
		now:    time.Now,
	}
}

// Seed bulk-populates the local store from the server. Call once on
// startup. Offline it is a no-op; each fetch failure is logged and skipped.
// Seeding is best-effort and never returns an error.
func (s *Service) Seed(ctx context.Context) {
	if !s.conn.Online() {
		return
	}

	if exercises, err := s.client.Exercises(ctx, models.ExerciseFilter{}); err != nil {
		s.log.WithError(err).Warn("seed: exercise fetch skipped")
	} else if err := s.store.ReplaceExercises(exercises); err != nil {
		s.log.WithError(err).Warn("seed: exercise cache refresh failed")
	}

	if bundle, err := s.client.ActivePlan(ctx); err != nil {
		s.log.WithError(err).Warn("seed: plan fetch skipped")
	} else if err := s.store.SavePlan(bundle); err != nil {
		s.log.WithError(err).Warn("seed: plan cache refresh failed")
	}

	if history, err := s.client.History(ctx, historyFetchLimit, 0); err != nil {
		s.log.WithError(err).Warn("seed: history fetch skipped")
	} else if err := s.store.ReplaceHistory(history); err != nil {
		s.log.WithError(err).Warn("seed: history cache refresh failed")
	}
}

// Exercises returns the exercise library. Online it fetches from the
// server, opportunistically refreshing the local cache; offline (or when
// the fetch fails) it scans the cache with the same filter semantics.
// An empty result is valid; this never fails on a network fault.
func (s *Service) Exercises(ctx context.Context, filter models.ExerciseFilter) ([]models.Exercise, error) {
	if s.conn.Online() {
		exercises, err := s.client.Exercises(ctx, filter)
		if err == nil {
			// Only an unfiltered fetch represents the whole library.
			if filter.IsZero() {
				if err := s.store.ReplaceExercises(exercises); err != nil {
					s.log.WithError(err).Warn("exercise cache refresh failed")
				}
			}
			return exercises, nil
		}
		s.log.WithError(err).Debug("exercise fetch failed, falling back to cache")
	}

	return s.store.ListExercises(filter)
}

// ActivePlan returns the user's plan. Online it fetches and refreshes the
// cache; offline it reconstructs the most recently cached plan by joining
// the local tables.
func (s *Service) ActivePlan(ctx context.Context) (*models.PlanBundle, error) {
	if s.conn.Online() {
		bundle, err := s.client.ActivePlan(ctx)
		if err == nil {
			if err := s.store.SavePlan(bundle); err != nil {
				s.log.WithError(err).Warn("plan cache refresh failed")
			}
			return bundle, nil
		}
		s.log.WithError(err).Debug("plan fetch failed, falling back to cache")
	}

	return s.store.LatestPlan()
}

// History returns the workout history, most recent first, always read from
// the local store. Online it first refreshes the store from the server;
// entries still awaiting sync are never discarded by that refresh.
func (s *Service) History(ctx context.Context) ([]*models.HistoryEntry, error) {
	if s.conn.Online() {
		remote, err := s.client.History(ctx, historyFetchLimit, 0)
		if err != nil {
			s.log.WithError(err).Debug("history fetch failed, serving cache")
		} else if err := s.store.ReplaceHistory(remote); err != nil {
			s.log.WithError(err).Warn("history cache refresh failed")
		}
	}

	return s.store.ListHistory()
}

// LogWorkout records a completed workout.
//
// The entry is stamped and durably written to the local store before any
// network attempt; from that point the event cannot be lost. If delivery
// succeeds the row is marked synced; otherwise the payload is queued for a
// later flush. Only a local storage fault is an error.
func (s *Service) LogWorkout(ctx context.Context, payload models.LogRequest) (models.LogResult, error) {
	entry := payload.Entry(s.now())

	localID, err := s.store.InsertHistory(entry)
	if err != nil {
		return models.LogResult{}, fmt.Errorf("store workout locally: %w", err)
	}

	if s.conn.Online() {
		deliverErr := s.client.LogWorkout(ctx, payload, "")
		if deliverErr == nil {
			if err := s.store.MarkSynced(localID); err != nil {
				return models.LogResult{}, fmt.Errorf("mark workout synced: %w", err)
			}
			return models.LogResult{Success: true, Synced: true}, nil
		}
		s.log.WithError(deliverErr).WithField("local_id", localID).
			Warn("workout delivery failed, queueing")
	}

	item := models.NewQueueItem(payload, localID)
	if _, err := s.store.EnqueueSync(item); err != nil {
		return models.LogResult{}, fmt.Errorf("queue workout for sync: %w", err)
	}

	return models.LogResult{Success: true, Synced: false}, nil
}

// FlushQueue drains pending writes against the server. Items are processed
// in insertion order; one item's failure neither blocks the next item nor
// rolls back earlier successes. Per-item errors are logged, not returned.
func (s *Service) FlushQueue(ctx context.Context) (flushed, failed int) {
	items, err := s.store.QueueItems()
	if err != nil {
		s.log.WithError(err).Error("flush: reading sync queue failed")
		return 0, 0
	}
	if len(items) == 0 {
		return 0, 0
	}

	s.log.WithField("pending", len(items)).Info("flushing sync queue")

	for _, item := range items {
		if item.Action != models.ActionLogWorkout {
			s.log.WithField("action", item.Action).Warn("flush: unknown queue action, skipping")
			failed++
			continue
		}

		if err := s.client.LogWorkout(ctx, item.Payload, item.IdempotencyKey); err != nil {
			s.log.WithError(err).WithField("queue_id", item.ID).Warn("flush: delivery failed")
			failed++
			continue
		}

		if err := s.store.MarkSynced(item.LocalID); err != nil {
			s.log.WithError(err).WithField("local_id", item.LocalID).
				Error("flush: marking history synced failed")
		}
		if err := s.store.DeleteQueueItem(item.ID); err != nil {
			s.log.WithError(err).WithField("queue_id", item.ID).
				Error("flush: deleting queue item failed")
		}
		flushed++
	}

	return flushed, failed
}

// Pending returns the number of writes awaiting delivery. The UI uses it
// for the "pending sync" indicator.
func (s *Service) Pending() (int, error) {
	return s.store.QueueLen()
}
