// ABOUTME: Workout plan models: plan, plan days, and per-day exercises.
// ABOUTME: Cached wholesale from the server; joined locally when offline.
package models

import "time"

// WorkoutPlan is the user's generated plan. One plan is active at a time.
type WorkoutPlan struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// PlanDay is one weekday within a plan.
type PlanDay struct {
	ID        int64  `json:"id"`
	PlanID    int64  `json:"plan_id"`
	DayName   string `json:"day_name"`
	DayNumber int    `json:"day_number"`
}

// PlanExercise assigns an exercise to a plan day with its prescription.
type PlanExercise struct {
	ID              int64  `json:"id"`
	DayID           int64  `json:"day_id"`
	ExerciseID      int64  `json:"exercise_id"`
	ExerciseName    string `json:"exercise_name,omitempty"`
	Sets            int    `json:"sets"`
	Reps            int    `json:"reps"`
	DurationSeconds int    `json:"duration_seconds"`
}

// PlanBundle is the active plan with its days and exercises, as returned
// by the server and as reconstructed from the local cache.
type PlanBundle struct {
	Plan      *WorkoutPlan   `json:"plan"`
	Days      []PlanDay      `json:"days"`
	Exercises []PlanExercise `json:"exercises"`
}

// DayExercises returns the exercises assigned to the given day, in the
// order they appear in the bundle.
func (b *PlanBundle) DayExercises(dayID int64) []PlanExercise {
	var out []PlanExercise
	for _, ex := range b.Exercises {
		if ex.DayID == dayID {
			out = append(out, ex)
		}
	}
	return out
}
