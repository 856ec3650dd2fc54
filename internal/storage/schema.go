// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines cached reference tables, the history log, and the sync queue.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS exercises (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		muscle_group TEXT NOT NULL,
		difficulty TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS workout_plans (
		id INTEGER PRIMARY KEY,
		user_id INTEGER NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL,
		cached_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS plan_days (
		id INTEGER PRIMARY KEY,
		plan_id INTEGER NOT NULL,
		day_name TEXT NOT NULL,
		day_number INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS plan_exercises (
		id INTEGER PRIMARY KEY,
		day_id INTEGER NOT NULL,
		exercise_id INTEGER NOT NULL,
		exercise_name TEXT NOT NULL DEFAULT '',
		sets INTEGER NOT NULL DEFAULT 0,
		reps INTEGER NOT NULL DEFAULT 0,
		duration_seconds INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS workout_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		day_id INTEGER NOT NULL,
		day_name TEXT NOT NULL,
		duration_minutes INTEGER NOT NULL,
		exercises TEXT NOT NULL,
		notes TEXT,
		logged_at DATETIME NOT NULL,
		synced INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS sync_queue (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		action TEXT NOT NULL,
		payload TEXT NOT NULL,
		local_id INTEGER NOT NULL,
		idempotency_key TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_exercises_muscle ON exercises(muscle_group);
	CREATE INDEX IF NOT EXISTS idx_plan_days_plan ON plan_days(plan_id);
	CREATE INDEX IF NOT EXISTS idx_plan_exercises_day ON plan_exercises(day_id);
	CREATE INDEX IF NOT EXISTS idx_history_logged ON workout_history(logged_at DESC);
	CREATE INDEX IF NOT EXISTS idx_history_synced ON workout_history(synced);
	CREATE INDEX IF NOT EXISTS idx_sync_queue_created ON sync_queue(created_at);
	`

	_, err := d.db.Exec(schema)
	return err
}
