// ABOUTME: Workout plan cache operations for SQLite storage.
// ABOUTME: Plans are refreshed wholesale and reconstructed by join when offline.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/harperreed/trainer/internal/models"
)

// SavePlan upserts the plan row and replaces its cached days and exercises
// in a single transaction.
func (d *DB) SavePlan(bundle *models.PlanBundle) error {
	if bundle == nil || bundle.Plan == nil {
		return nil
	}

	return d.inTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO workout_plans (id, user_id, name, created_at, cached_at)
			VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(id) DO UPDATE SET
				user_id = excluded.user_id,
				name = excluded.name,
				created_at = excluded.created_at,
				cached_at = CURRENT_TIMESTAMP`,
			bundle.Plan.ID,
			bundle.Plan.UserID,
			bundle.Plan.Name,
			bundle.Plan.CreatedAt.Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("save plan: %w", err)
		}

		// Replace the plan's days and exercises together so the join
		// tables never disagree with the plan row.
		_, err = tx.Exec(`
			DELETE FROM plan_exercises
			WHERE day_id IN (SELECT id FROM plan_days WHERE plan_id = ?)`,
			bundle.Plan.ID,
		)
		if err != nil {
			return fmt.Errorf("clear plan exercises: %w", err)
		}
		if _, err := tx.Exec("DELETE FROM plan_days WHERE plan_id = ?", bundle.Plan.ID); err != nil {
			return fmt.Errorf("clear plan days: %w", err)
		}

		for _, day := range bundle.Days {
			_, err := tx.Exec(`
				INSERT INTO plan_days (id, plan_id, day_name, day_number)
				VALUES (?, ?, ?, ?)`,
				day.ID, day.PlanID, day.DayName, day.DayNumber,
			)
			if err != nil {
				return fmt.Errorf("insert plan day %d: %w", day.ID, err)
			}
		}

		for _, ex := range bundle.Exercises {
			_, err := tx.Exec(`
				INSERT INTO plan_exercises (id, day_id, exercise_id, exercise_name, sets, reps, duration_seconds)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				ex.ID, ex.DayID, ex.ExerciseID, ex.ExerciseName,
				ex.Sets, ex.Reps, ex.DurationSeconds,
			)
			if err != nil {
				return fmt.Errorf("insert plan exercise %d: %w", ex.ID, err)
			}
		}
		return nil
	})
}

// LatestPlan reconstructs the most recently cached plan from the local
// tables. Returns a bundle with a nil Plan when nothing is cached.
func (d *DB) LatestPlan() (*models.PlanBundle, error) {
	bundle := &models.PlanBundle{}

	row := d.db.QueryRow(`
		SELECT id, user_id, name, created_at
		FROM workout_plans
		ORDER BY cached_at DESC, id DESC
		LIMIT 1
	`)

	var p models.WorkoutPlan
	var createdAt string
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &createdAt)
	if err == sql.ErrNoRows {
		return bundle, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan plan: %w", err)
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	bundle.Plan = &p

	rows, err := d.db.Query(`
		SELECT id, plan_id, day_name, day_number
		FROM plan_days
		WHERE plan_id = ?
		ORDER BY day_number ASC
	`, p.ID)
	if err != nil {
		return nil, fmt.Errorf("list plan days: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var day models.PlanDay
		if err := rows.Scan(&day.ID, &day.PlanID, &day.DayName, &day.DayNumber); err != nil {
			return nil, fmt.Errorf("scan plan day: %w", err)
		}
		bundle.Days = append(bundle.Days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	exRows, err := d.db.Query(`
		SELECT pe.id, pe.day_id, pe.exercise_id, pe.exercise_name, pe.sets, pe.reps, pe.duration_seconds
		FROM plan_exercises pe
		JOIN plan_days pd ON pd.id = pe.day_id
		WHERE pd.plan_id = ?
		ORDER BY pd.day_number ASC, pe.id ASC
	`, p.ID)
	if err != nil {
		return nil, fmt.Errorf("list plan exercises: %w", err)
	}
	defer exRows.Close()

	for exRows.Next() {
		var ex models.PlanExercise
		err := exRows.Scan(&ex.ID, &ex.DayID, &ex.ExerciseID, &ex.ExerciseName,
			&ex.Sets, &ex.Reps, &ex.DurationSeconds)
		if err != nil {
			return nil, fmt.Errorf("scan plan exercise: %w", err)
		}
		bundle.Exercises = append(bundle.Exercises, ex)
	}

	return bundle, exRows.Err()
}
