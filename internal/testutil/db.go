package testutil

import (
	"context"
	"testing"

	"expensetrack/internal/storage"
	"expensetrack/internal/storage/sqlite"
)

func SetupTestStorage(t *testing.T) storage.Storage {
	t.Helper()

	stor, err := sqlite.New(sqlite.Config{Source: ":memory:"})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err = stor.ApplyMigrations(context.Background(), TestLogger(t)); err != nil {
		t.Fatalf("Failed to apply migrations: %v", err)
	}

	t.Cleanup(func() {
		if err := stor.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})

	return stor
}
