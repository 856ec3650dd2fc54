// ABOUTME: Shared test helpers for offline package tests.
// ABOUTME: Provides a fake remote, fake connectivity, and service setup.
package offline

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/trainer/internal/models"
	"github.com/harperreed/trainer/internal/storage"
)

// fakeConn is a connectivity source tests flip by hand.
type fakeConn struct {
	mu      sync.Mutex
	online  bool
	changes chan bool
}

func newFakeConn(online bool) *fakeConn {
	return &fakeConn{online: online, changes: make(chan bool, 4)}
}

func (f *fakeConn) Online() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.online
}

func (f *fakeConn) Changes() <-chan bool { return f.changes }

// set flips the state and emits a transition when it changed.
func (f *fakeConn) set(online bool) {
	f.mu.Lock()
	changed := online != f.online
	f.online = online
	f.mu.Unlock()
	if changed {
		f.changes <- online
	}
}

// fakeRemote is a scriptable RemoteClient.
type fakeRemote struct {
	mu sync.Mutex

	exercises []models.Exercise
	plan      *models.PlanBundle
	history   []*models.HistoryEntry

	exercisesErr error
	planErr      error
	historyErr   error
	logErr       error

	// logErrFor fails delivery only for payloads with these day ids.
	logErrFor map[int64]error

	logCalls []models.LogRequest
	logKeys  []string
}

func (f *fakeRemote) Exercises(ctx context.Context, filter models.ExerciseFilter) ([]models.Exercise, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.exercisesErr != nil {
		return nil, f.exercisesErr
	}
	return f.exercises, nil
}

func (f *fakeRemote) ActivePlan(ctx context.Context) (*models.PlanBundle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.planErr != nil {
		return nil, f.planErr
	}
	return f.plan, nil
}

func (f *fakeRemote) History(ctx context.Context, limit, offset int) ([]*models.HistoryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	return f.history, nil
}

func (f *fakeRemote) LogWorkout(ctx context.Context, payload models.LogRequest, idempotencyKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.logErr != nil {
		return f.logErr
	}
	if err, ok := f.logErrFor[payload.DayID]; ok {
		return err
	}
	f.logCalls = append(f.logCalls, payload)
	f.logKeys = append(f.logKeys, idempotencyKey)
	return nil
}

func (f *fakeRemote) Health(ctx context.Context) error { return nil }

// deliveries returns how many log payloads the remote accepted.
func (f *fakeRemote) deliveries() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.logCalls)
}

// setupService creates a service over a real SQLite store in a temp dir.
func setupService(t *testing.T, online bool) (*Service, storage.Repository, *fakeRemote, *fakeConn) {
	t.Helper()

	store, err := storage.Open(filepath.Join(t.TempDir(), "trainer.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	remote := &fakeRemote{}
	conn := newFakeConn(online)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	svc := New(store, remote, conn, log)
	return svc, store, remote, conn
}

// testLogRequest is the canonical payload used across scenarios.
func testLogRequest() models.LogRequest {
	return models.LogRequest{
		DayID:           3,
		DayName:         "tuesday",
		DurationMinutes: 30,
		Exercises: []models.ExerciseResult{
			{ExerciseID: 7, SetsCompleted: 3, RepsCompleted: 10},
		},
	}
}

// historyEntry builds a remote-style entry logged at t.
func historyEntry(dayID int64, dayName string, loggedAt time.Time) *models.HistoryEntry {
	return &models.HistoryEntry{
		DayID:           dayID,
		DayName:         dayName,
		DurationMinutes: 25,
		Exercises: []models.ExerciseResult{
			{ExerciseID: 1, SetsCompleted: 2, RepsCompleted: 12},
		},
		LoggedAt: loggedAt,
	}
}
