package database

import (
	"database/sql"

	_ "modernc.org/sqlite" // SQLite driver
)

// New creates a new database connection pool with foreign keys on.
func New(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dataSourceName+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
func Migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		email TEXT UNIQUE,
		password_hash TEXT,
		avatar_glyph TEXT NOT NULL DEFAULT '',
		avatar_url TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS departments (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS events (
		id TEXT NOT NULL PRIMARY KEY,
		title TEXT NOT NULL,
		date TEXT NOT NULL,
		urgency TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		department_id TEXT REFERENCES departments(id) ON DELETE SET NULL,
		assignee_id TEXT REFERENCES users(id) ON DELETE SET NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS announcements (
		id TEXT NOT NULL PRIMARY KEY,
		title TEXT NOT NULL,
		body TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Acknowledgments are a grow-only set; the composite key makes
	-- concurrent acknowledgment writes a commutative set-add.
	CREATE TABLE IF NOT EXISTS announcement_reads (
		announcement_id TEXT NOT NULL REFERENCES announcements(id) ON DELETE CASCADE,
		user_id TEXT NOT NULL,
		PRIMARY KEY (announcement_id, user_id)
	);

	-- The access table is one record with two JSON fields: the ordered
	-- admin address list and the address-to-department map.
	CREATE TABLE IF NOT EXISTS access_table (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		admins_json TEXT NOT NULL DEFAULT '[]',
		scopes_json TEXT NOT NULL DEFAULT '{}'
	);
	INSERT OR IGNORE INTO access_table (id) VALUES (1);
	`
	_, err := db.Exec(sqlStmt)
	return err
}
