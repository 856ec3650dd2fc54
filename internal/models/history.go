// ABOUTME: Workout history models: completed sessions and their results.
// ABOUTME: HistoryEntry is the write-ahead event record with the synced flag.
package models

import "time"

// ExerciseResult records what was actually completed for one exercise
// within a session.
type ExerciseResult struct {
	ExerciseID      int64 `json:"exercise_id"`
	SetsCompleted   int   `json:"sets_completed"`
	RepsCompleted   int   `json:"reps_completed"`
	DurationSeconds int   `json:"duration_seconds,omitempty"`
}

// HistoryEntry is one completed workout session.
//
// LocalID is assigned by the local store at write time and never leaves the
// device. Synced starts false and flips to true exactly once, when the
// server has acknowledged the entry.
type HistoryEntry struct {
	LocalID         int64            `json:"-"`
	DayID           int64            `json:"day_id"`
	DayName         string           `json:"day_name"`
	DurationMinutes int              `json:"duration_minutes"`
	Exercises       []ExerciseResult `json:"exercises"`
	Notes           *string          `json:"notes,omitempty"`
	LoggedAt        time.Time        `json:"logged_at"`
	Synced          bool             `json:"synced"`
}

// WithNotes sets notes on the entry.
func (h *HistoryEntry) WithNotes(notes string) *HistoryEntry {
	h.Notes = &notes
	return h
}

// LogRequest is the payload for logging a completed workout. It is exactly
// what goes over the wire to the server; logged_at and synced are stamped
// locally and never sent.
type LogRequest struct {
	DayID           int64            `json:"day_id"`
	DayName         string           `json:"day_name"`
	DurationMinutes int              `json:"duration_minutes"`
	Exercises       []ExerciseResult `json:"exercises"`
	Notes           *string          `json:"notes,omitempty"`
}

// Entry builds the local history record for this request, stamped at t.
func (r LogRequest) Entry(t time.Time) *HistoryEntry {
	return &HistoryEntry{
		DayID:           r.DayID,
		DayName:         r.DayName,
		DurationMinutes: r.DurationMinutes,
		Exercises:       r.Exercises,
		Notes:           r.Notes,
		LoggedAt:        t,
		Synced:          false,
	}
}

// LogResult reports the outcome of a workout log. Success is true whenever
// the entry is durably stored locally; Synced is true only if the server
// acknowledged it during the same call.
type LogResult struct {
	Success bool `json:"success"`
	Synced  bool `json:"synced"`
}
