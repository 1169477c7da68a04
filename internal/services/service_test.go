package services

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/mgavilanes/campline-be/internal/database"
)

// testDB opens a throwaway sqlite database with the full schema
// applied.
func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}
