package testutil

import (
	"database/sql"
	"io/fs"
	"sort"
	"strings"
	"testing"

	"github.com/pagecraft/pagecraft/migrations"

	_ "modernc.org/sqlite"
)

// NewTestDB opens an in-memory SQLite database with the full schema applied
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	migrationsFS := migrations.GetFS()
	entries, err := fs.ReadDir(migrationsFS, ".")
	if err != nil {
		t.Fatalf("Failed to read migrations: %v", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	for _, name := range files {
		content, err := fs.ReadFile(migrationsFS, name)
		if err != nil {
			t.Fatalf("Failed to read migration %s: %v", name, err)
		}
		if _, err := db.Exec(string(content)); err != nil {
			t.Fatalf("Failed to apply migration %s: %v", name, err)
		}
	}

	return db
}

// CleanupDB closes the test database
func CleanupDB(db *sql.DB) {
	_ = db.Close()
}
