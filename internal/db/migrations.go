package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS events (
			id               TEXT PRIMARY KEY,
			name             TEXT NOT NULL,
			date_range_start DATE NOT NULL,
			date_range_end   DATE NOT NULL,
			slot_duration    INTEGER NOT NULL CHECK(slot_duration IN (15, 30, 60)),
			created_at       DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS schedules (
			id           TEXT PRIMARY KEY,
			event_id     TEXT NOT NULL REFERENCES events(id),
			user_id      TEXT NOT NULL DEFAULT '',
			display_name TEXT NOT NULL,
			email        TEXT NOT NULL DEFAULT '',
			created_at   DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS availability (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			schedule_id TEXT NOT NULL REFERENCES schedules(id) ON DELETE CASCADE,
			date        DATE NOT NULL,
			start_time  INTEGER NOT NULL,
			end_time    INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_schedules_event ON schedules(event_id);
		CREATE INDEX IF NOT EXISTS idx_schedules_user ON schedules(event_id, user_id);
		CREATE INDEX IF NOT EXISTS idx_availability_schedule ON availability(schedule_id);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}
