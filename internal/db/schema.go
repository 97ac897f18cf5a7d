package db

import "fmt"

// schema is the bootstrap DDL. Every statement is idempotent so Initialize
// can run on every startup.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		username   TEXT NOT NULL UNIQUE,
		email      TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS cases (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id     INTEGER NOT NULL REFERENCES users(id),
		title       TEXT NOT NULL,
		description TEXT,
		status      TEXT NOT NULL DEFAULT 'open',
		case_number TEXT NOT NULL,
		created_at  INTEGER NOT NULL,
		updated_at  INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS evidence (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		case_id       INTEGER NOT NULL REFERENCES cases(id) ON DELETE CASCADE,
		title         TEXT NOT NULL,
		evidence_type TEXT NOT NULL,
		file_path     TEXT,
		obtained_date INTEGER,
		content       TEXT,
		status        TEXT NOT NULL DEFAULT 'collected',
		created_at    INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS deadlines (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		case_id     INTEGER NOT NULL REFERENCES cases(id) ON DELETE CASCADE,
		title       TEXT NOT NULL,
		description TEXT,
		due_date    INTEGER NOT NULL,
		priority    TEXT NOT NULL DEFAULT 'medium',
		status      TEXT NOT NULL DEFAULT 'upcoming',
		created_at  INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS notes (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		case_id    INTEGER NOT NULL REFERENCES cases(id) ON DELETE CASCADE,
		title      TEXT,
		content    TEXT NOT NULL,
		created_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS documents (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		case_id     INTEGER NOT NULL REFERENCES cases(id) ON DELETE CASCADE,
		file_name   TEXT NOT NULL,
		file_path   TEXT NOT NULL,
		description TEXT,
		uploaded_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS audit_logs (
		id            TEXT PRIMARY KEY,
		user_id       INTEGER NOT NULL,
		action        TEXT NOT NULL,
		resource_type TEXT NOT NULL,
		resource_id   INTEGER NOT NULL,
		details       TEXT NOT NULL DEFAULT '{}',
		created_at    INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_cases_user ON cases(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_evidence_case ON evidence(case_id)`,
	`CREATE INDEX IF NOT EXISTS idx_deadlines_case ON deadlines(case_id)`,
	`CREATE INDEX IF NOT EXISTS idx_notes_case ON notes(case_id)`,
	`CREATE INDEX IF NOT EXISTS idx_documents_case ON documents(case_id)`,
	`CREATE INDEX IF NOT EXISTS idx_audit_logs_user ON audit_logs(user_id)`,
}

// Initialize creates all tables and indexes if they do not exist.
func (db *DB) Initialize() error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
