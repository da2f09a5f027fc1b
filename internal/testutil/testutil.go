// Package testutil provides shared helpers for package tests.
package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/sitecraft/sitecraft-go/internal/repository"
)

// NewDB returns a migrated SQLite database living in the test's temp dir.
// It is closed automatically when the test finishes.
func NewDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "sitecraft.db")
	db, err := repository.NewDB(context.Background(), repository.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := repository.Migrate(db, repository.DriverSQLite); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	return db
}
