// Command migrate applies database migrations from the migrations/
// directory.
//
// Usage:
//
//	migrate up            apply all pending migrations
//	migrate down          roll back one migration
//	migrate version       print the current schema version
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: migrate [up|down|version]")
		os.Exit(2)
	}

	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	m, err := migrate.New("file://migrations", databaseURL)
	if err != nil {
		slog.Error("opening migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _, _ = m.Close() }()

	switch os.Args[1] {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			slog.Error("applying migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
		slog.Info("migrations applied")
	case "down":
		if err := m.Steps(-1); err != nil {
			slog.Error("rolling back migration", slog.String("error", err.Error()))
			os.Exit(1)
		}
		slog.Info("rolled back one migration")
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			slog.Error("reading schema version", slog.String("error", err.Error()))
			os.Exit(1)
		}
		slog.Info("schema version", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", os.Args[1])
		os.Exit(2)
	}
}
