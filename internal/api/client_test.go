// ABOUTME: Tests for the REST API client.
// ABOUTME: Verifies auth attachment, query params, and error normalization.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/trainer/internal/models"
)

// newTestServer runs a fake planner API and returns a client pointed at it.
func newTestServer(t *testing.T, configure func(r *mux.Router)) *Client {
	t.Helper()

	r := mux.NewRouter()
	configure(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return New(srv.URL, "test-token", nil)
}

func TestExercisesSendsAuthAndFilters(t *testing.T) {
	var gotAuth, gotMuscle, gotSearch string

	client := newTestServer(t, func(r *mux.Router) {
		r.HandleFunc("/api/workout/exercises", func(w http.ResponseWriter, req *http.Request) {
			gotAuth = req.Header.Get("Authorization")
			gotMuscle = req.URL.Query().Get("muscle")
			gotSearch = req.URL.Query().Get("search")
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"exercises": []models.Exercise{
					{ID: 2, Name: "Squat", MuscleGroup: "legs", Difficulty: "intermediate"},
				},
			})
		}).Methods(http.MethodGet)
	})

	got, err := client.Exercises(context.Background(), models.ExerciseFilter{Muscle: "legs", Search: "squ"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Squat", got[0].Name)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "legs", gotMuscle)
	assert.Equal(t, "squ", gotSearch)
}

func TestActivePlanDecodesBundle(t *testing.T) {
	client := newTestServer(t, func(r *mux.Router) {
		r.HandleFunc("/api/workout/plan", func(w http.ResponseWriter, req *http.Request) {
			_ = json.NewEncoder(w).Encode(models.PlanBundle{
				Plan: &models.WorkoutPlan{ID: 11, UserID: 1, Name: "Base", CreatedAt: time.Now()},
				Days: []models.PlanDay{{ID: 21, PlanID: 11, DayName: "monday", DayNumber: 1}},
				Exercises: []models.PlanExercise{
					{ID: 31, DayID: 21, ExerciseID: 7, Sets: 3, Reps: 10},
				},
			})
		}).Methods(http.MethodGet)
	})

	bundle, err := client.ActivePlan(context.Background())
	require.NoError(t, err)
	require.NotNil(t, bundle.Plan)
	assert.Equal(t, int64(11), bundle.Plan.ID)
	assert.Len(t, bundle.Days, 1)
	assert.Len(t, bundle.Exercises, 1)
}

func TestHistoryPagination(t *testing.T) {
	var gotLimit, gotOffset string

	client := newTestServer(t, func(r *mux.Router) {
		r.HandleFunc("/performance/history", func(w http.ResponseWriter, req *http.Request) {
			gotLimit = req.URL.Query().Get("limit")
			gotOffset = req.URL.Query().Get("offset")
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"history": []*models.HistoryEntry{
					{DayID: 3, DayName: "tuesday", DurationMinutes: 30, LoggedAt: time.Now()},
				},
			})
		}).Methods(http.MethodGet)
	})

	got, err := client.History(context.Background(), 100, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "tuesday", got[0].DayName)
	assert.Equal(t, "100", gotLimit)
	assert.Equal(t, "0", gotOffset)
}

func TestLogWorkoutPostsPayload(t *testing.T) {
	var gotKey string
	var gotPayload models.LogRequest

	client := newTestServer(t, func(r *mux.Router) {
		r.HandleFunc("/performance/log-workout", func(w http.ResponseWriter, req *http.Request) {
			gotKey = req.Header.Get("X-Idempotency-Key")
			require.NoError(t, json.NewDecoder(req.Body).Decode(&gotPayload))
			w.WriteHeader(http.StatusCreated)
		}).Methods(http.MethodPost)
	})

	payload := models.LogRequest{
		DayID:           3,
		DayName:         "tuesday",
		DurationMinutes: 30,
		Exercises: []models.ExerciseResult{
			{ExerciseID: 7, SetsCompleted: 3, RepsCompleted: 10},
		},
	}
	err := client.LogWorkout(context.Background(), payload, "abc-123")
	require.NoError(t, err)
	assert.Equal(t, "abc-123", gotKey)
	assert.Equal(t, payload, gotPayload)
}

func TestErrorNormalization(t *testing.T) {
	client := newTestServer(t, func(r *mux.Router) {
		r.HandleFunc("/api/workout/plan", func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "token expired"})
		}).Methods(http.MethodGet)
	})

	_, err := client.ActivePlan(context.Background())
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "token expired", apiErr.Message)
	assert.Contains(t, apiErr.Error(), "token expired")
}

func TestErrorWithoutBody(t *testing.T) {
	client := newTestServer(t, func(r *mux.Router) {
		r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}).Methods(http.MethodGet)
	})

	err := client.Health(context.Background())
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Empty(t, apiErr.Message)
}

func TestHealthOK(t *testing.T) {
	client := newTestServer(t, func(r *mux.Router) {
		r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusOK)
		}).Methods(http.MethodGet)
	})

	require.NoError(t, client.Health(context.Background()))
}
