// Package testdb provides test database utilities for e2e testing.
//
// This package connects to a real Postgres instance and applies the
// repository migrations, ensuring tests validate actual database behavior
// including the conflict resolution the player resolver relies on.
//
// Tests are skipped unless TEST_DATABASE_URL is set:
//
//	TEST_DATABASE_URL=postgres://localhost:5432/miniapp_test?sslmode=disable go test ./tests/...
package testdb

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"

	"github.com/playforge/miniapp-api/internal/database"
)

// TestDB wraps a live database connection with per-test cleanup. All
// tests share one schema; New truncates the tables so each test starts
// empty.
type TestDB struct {
	DB *sqlx.DB
	t  *testing.T
}

var (
	migrateOnce sync.Once
	migrateErr  error
)

// findMigrationsDir walks up from the working directory until it finds
// the migrations directory.
func findMigrationsDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, "migrations")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find migrations directory")
		}
		dir = parent
	}
}

func applyMigrations(url string) error {
	migrateOnce.Do(func() {
		dir, err := findMigrationsDir()
		if err != nil {
			migrateErr = err
			return
		}
		m, err := migrate.New("file://"+dir, url)
		if err != nil {
			migrateErr = fmt.Errorf("opening migrations: %w", err)
			return
		}
		defer func() { _, _ = m.Close() }()
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			migrateErr = fmt.Errorf("applying migrations: %w", err)
		}
	})
	return migrateErr
}

// New connects to the test database, applies migrations and truncates
// the tables. The test is skipped when TEST_DATABASE_URL is not set.
func New(t *testing.T) *TestDB {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping database test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, database.Config{
		URL:             url,
		PoolSize:        10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
	})
	if err != nil {
		t.Fatalf("connecting to test database: %v", err)
	}

	if err := applyMigrations(url); err != nil {
		_ = db.Close()
		t.Fatalf("preparing test database: %v", err)
	}

	if _, err := db.ExecContext(ctx, "TRUNCATE players"); err != nil {
		_ = db.Close()
		t.Fatalf("truncating tables: %v", err)
	}

	return &TestDB{DB: db, t: t}
}

// Ctx returns a context with a sensible timeout for test queries.
func (tdb *TestDB) Ctx() context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	tdb.t.Cleanup(cancel)
	return ctx
}

// Close releases the connection pool.
func (tdb *TestDB) Close() {
	_ = tdb.DB.Close()
}
