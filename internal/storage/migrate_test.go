package storage

import (
	"path/filepath"
	"testing"
)

func TestMigrationManagerUp(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migration-test.db")

	mgr, err := NewMigrationManager(dbPath)
	if err != nil {
		t.Fatalf("Failed to create migration manager: %v", err)
	}

	if err := mgr.Up(); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	version, dirty, err := mgr.Version()
	if err != nil {
		t.Fatalf("Failed to get migration version: %v", err)
	}
	if dirty {
		t.Error("Database is in dirty state after migrations")
	}
	if version < 2 {
		t.Errorf("Expected migration version >= 2, got %d", version)
	}

	// Up is idempotent
	if err := mgr.Up(); err != nil {
		t.Errorf("Second Up should be a no-op, got %v", err)
	}

	if err := mgr.Close(); err != nil {
		t.Fatalf("Failed to close migration manager: %v", err)
	}
}
