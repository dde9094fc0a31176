// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines tables for users, session logs and daily records.
package storage

// initSchema creates or updates the database schema.
// Inputs, plans, weather snapshots and daily records are stored as JSON.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		email TEXT PRIMARY KEY,
		private_key TEXT NOT NULL UNIQUE,
		name TEXT,
		password_hash TEXT,
		mass_kg REAL,
		hydration_goal_l REAL NOT NULL DEFAULT 0,
		sweat_rate_lph REAL NOT NULL DEFAULT 1.0,
		units TEXT NOT NULL DEFAULT 'metric',
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS logs (
		email TEXT NOT NULL,
		ts INTEGER NOT NULL,
		workout_type TEXT,
		input TEXT NOT NULL,
		plan TEXT NOT NULL,
		actual_intake_l REAL,
		weather TEXT,
		PRIMARY KEY (email, ts),
		FOREIGN KEY (email) REFERENCES users(email) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS daily_records (
		email TEXT NOT NULL,
		date TEXT NOT NULL,
		record TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (email, date),
		FOREIGN KEY (email) REFERENCES users(email) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_logs_ts ON logs(email, ts DESC);
	CREATE INDEX IF NOT EXISTS idx_daily_date ON daily_records(email, date DESC);
	`

	_, err := d.db.Exec(schema)
	return err
}
