// ABOUTME: Exercise library cache operations for SQLite storage.
// ABOUTME: Wholesale replace on refresh, filtered scans for offline reads.
package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/harperreed/trainer/internal/models"
)

// ReplaceExercises clears the exercise table and bulk-inserts the given
// rows in a single transaction.
func (d *DB) ReplaceExercises(exercises []models.Exercise) error {
	return d.inTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM exercises"); err != nil {
			return fmt.Errorf("clear exercises: %w", err)
		}

		stmt, err := tx.Prepare(`
			INSERT INTO exercises (id, name, muscle_group, difficulty)
			VALUES (?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("prepare exercise insert: %w", err)
		}
		defer stmt.Close()

		for _, e := range exercises {
			if _, err := stmt.Exec(e.ID, e.Name, e.MuscleGroup, e.Difficulty); err != nil {
				return fmt.Errorf("insert exercise %d: %w", e.ID, err)
			}
		}
		return nil
	})
}

// ListExercises scans the cached library with the same filter semantics the
// server applies: case-insensitive substring match on muscle group and name,
// exact (case-insensitive) match on difficulty.
func (d *DB) ListExercises(filter models.ExerciseFilter) ([]models.Exercise, error) {
	query := `
		SELECT id, name, muscle_group, difficulty
		FROM exercises
	`
	var conds []string
	var args []interface{}

	if filter.Muscle != "" {
		conds = append(conds, "LOWER(muscle_group) LIKE '%' || LOWER(?) || '%'")
		args = append(args, filter.Muscle)
	}
	if filter.Search != "" {
		conds = append(conds, "LOWER(name) LIKE '%' || LOWER(?) || '%'")
		args = append(args, filter.Search)
	}
	if filter.Difficulty != "" {
		conds = append(conds, "LOWER(difficulty) = LOWER(?)")
		args = append(args, filter.Difficulty)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id ASC"

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	var exercises []models.Exercise
	for rows.Next() {
		var e models.Exercise
		if err := rows.Scan(&e.ID, &e.Name, &e.MuscleGroup, &e.Difficulty); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		exercises = append(exercises, e)
	}

	return exercises, rows.Err()
}
