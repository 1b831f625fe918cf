// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines the exercises, pr_records and workout_logs tables.
package storage

const schema = `
CREATE TABLE IF NOT EXISTS exercises (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE CHECK (length(trim(name)) > 0),
	category TEXT NOT NULL CHECK (length(trim(category)) > 0)
);

CREATE TABLE IF NOT EXISTS pr_records (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	exercise_id INTEGER NOT NULL UNIQUE,
	max_lift REAL NOT NULL,
	FOREIGN KEY (exercise_id) REFERENCES exercises(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS workout_logs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	date TEXT NOT NULL,
	exercise_id INTEGER NOT NULL,
	duration_minutes REAL NOT NULL,
	calories REAL NOT NULL,
	FOREIGN KEY (exercise_id) REFERENCES exercises(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_workout_logs_date ON workout_logs(date DESC);
CREATE INDEX IF NOT EXISTS idx_workout_logs_exercise ON workout_logs(exercise_id);
`

// initSchema creates the tables if they are absent. It is safe to run on
// every open.
func (d *DB) initSchema() error {
	if _, err := d.db.Exec(schema); err != nil {
		return err
	}
	d.log.Debug().Msg("schema ready")
	return nil
}
