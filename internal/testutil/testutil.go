// Package testutil provides test utilities and helpers.
package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/storage/redis/v3"

	"walink/internal/db"
)

// TestStorage starts an in-process Redis server and returns a storage bound to
// it. Both are closed when the test ends.
func TestStorage(t *testing.T) (*redis.Storage, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	storage := redis.New(redis.Config{
		URL: "redis://" + mr.Addr(),
	})
	t.Cleanup(func() {
		_ = storage.Close()
	})

	return storage, mr
}

// TestDB connects to TEST_DATABASE_URL and runs migrations. The test is skipped
// when the variable is not set.
func TestDB(t *testing.T) (*db.DB, func()) {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := db.New(ctx, connString)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := database.RunMigrations(connString); err != nil {
		database.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	cleanup := func() {
		_, _ = database.Pool.Exec(ctx, "DELETE FROM link_stats")
		database.Close()
	}

	return database, cleanup
}
