// Package dbtest opens throwaway in-memory databases for tests.
package dbtest

import (
	"testing"

	"help-app-api/config"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Open returns a migrated, private in-memory database with foreign keys on.
// A single connection keeps the database alive for the test's lifetime.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_pragma=foreign_keys(1)"
	db, err := config.OpenDB(dsn)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}
