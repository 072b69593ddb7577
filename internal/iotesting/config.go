// Package iotesting provides shared helpers for tests that need a
// store. This is an internal package for test infrastructure only.
package iotesting

import (
	"context"
	"os"
	"testing"

	"github.com/gnames/brewdb/internal/iostore"
	"github.com/gnames/brewdb/pkg/config"
)

const (
	// TestDatabaseName is the PostgreSQL database used by tests.
	// Tests never run against other databases.
	TestDatabaseName = "brewdb_test"

	// DriverEnv selects the driver of test stores.
	DriverEnv = "BREWDB_TEST_DRIVER"
)

// Config returns a configuration for tests. By default the database is
// in-memory SQLite; with BREWDB_TEST_DRIVER=postgres it is
// TestDatabaseName on the configured PostgreSQL server.
func Config(opts ...config.Option) *config.Config {
	cfg := config.New()
	if os.Getenv(DriverEnv) == "postgres" {
		cfg.Update([]config.Option{
			config.OptDatabaseDriver("postgres"),
			config.OptDatabaseDatabase(TestDatabaseName),
		})
	} else {
		cfg.Update([]config.Option{
			config.OptDatabaseDriver("sqlite"),
			config.OptDatabasePath(":memory:"),
		})
	}
	cfg.Update(opts)
	return cfg
}

// OpenStore opens an empty store with all tables and closes it when the
// test finishes.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    db := iotesting.OpenStore(t)
//	    // ... use db as store.Store
//	}
func OpenStore(t *testing.T, opts ...config.Option) *iostore.DB {
	t.Helper()
	ctx := context.Background()

	cfg := Config(opts...)
	if cfg.Database.Driver == "postgres" && testing.Short() {
		t.Skip("skipping PostgreSQL test in short mode")
	}

	db, err := iostore.Open(ctx, cfg)
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err = db.DropAll(ctx); err != nil {
		t.Fatalf("Failed to clean test store: %v", err)
	}
	if err = db.Migrate(ctx); err != nil {
		t.Fatalf("Failed to migrate test store: %v", err)
	}
	return db
}

// SetupHomeDir creates a temporary home directory for a test. Config,
// data and log directories of BrewDB are created inside it by the code
// under test. The directory is removed when the test finishes.
func SetupHomeDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	return dir
}
