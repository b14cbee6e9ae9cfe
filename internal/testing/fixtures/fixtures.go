// Package fixtures creates test data directly in the database, bypassing
// the HTTP surface, for tests that need pre-existing rows.
package fixtures

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/playforge/miniapp-api/internal/database"
	"github.com/playforge/miniapp-api/internal/model"
	"github.com/playforge/miniapp-api/internal/testing/testdb"
)

var playerCounter int64

// NextPlayerID returns a process-unique player id.
func NextPlayerID() int64 {
	return 1_000_000 + atomic.AddInt64(&playerCounter, 1)
}

// CreatePlayer inserts a player row and returns it.
func CreatePlayer(t *testing.T, tdb *testdb.TestDB, id int64, username string) *model.Player {
	t.Helper()

	var player model.Player
	err := tdb.DB.GetContext(tdb.Ctx(), &player,
		"INSERT INTO players (id, username) VALUES ($1, $2) RETURNING id, username, created_at, updated_at",
		id, username,
	)
	if err != nil {
		t.Fatalf("fixtures: creating player %d: %v", id, err)
	}
	return &player
}

// CreatePlayers inserts n players with generated ids and usernames
// sharing the given prefix, in a single transaction so a failed fixture
// leaves no stragglers behind.
func CreatePlayers(t *testing.T, tdb *testdb.TestDB, n int, prefix string) []*model.Player {
	t.Helper()

	ctx := tdb.Ctx()
	players := make([]*model.Player, 0, n)
	err := database.Transaction(ctx, tdb.DB, func(tx *sqlx.Tx) error {
		for i := 0; i < n; i++ {
			id := NextPlayerID()
			var player model.Player
			if err := tx.GetContext(ctx, &player,
				"INSERT INTO players (id, username) VALUES ($1, $2) RETURNING id, username, created_at, updated_at",
				id, fmt.Sprintf("%s%d", prefix, id),
			); err != nil {
				return err
			}
			players = append(players, &player)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("fixtures: creating %d players: %v", n, err)
	}
	return players
}
