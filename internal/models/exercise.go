// ABOUTME: Exercise model for the cached exercise library.
// ABOUTME: Rows are immutable reference data replaced wholesale on refresh.
package models

// Exercise is one entry in the exercise library. The server owns these;
// the local store only caches them for offline reads.
type Exercise struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	MuscleGroup string `json:"muscle_group"`
	Difficulty  string `json:"difficulty"`
}

// ExerciseFilter narrows an exercise listing. Empty fields match everything.
// Muscle and Search are case-insensitive substring matches on muscle group
// and name respectively.
type ExerciseFilter struct {
	Muscle     string
	Difficulty string
	Search     string
}

// IsZero reports whether the filter matches all exercises.
func (f ExerciseFilter) IsZero() bool {
	return f.Muscle == "" && f.Difficulty == "" && f.Search == ""
}
