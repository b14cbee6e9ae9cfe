package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/playforge/miniapp-api/internal/database"
	"github.com/playforge/miniapp-api/internal/model"
)

// psql builds queries with Postgres placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const playerColumns = "id, username, created_at, updated_at"

// createOrGetQuery resolves a player in a single atomic statement: insert
// unless the id already exists, then read whichever row won. Concurrent
// first-contact calls for the same id therefore all observe exactly one
// row and none of them sees a duplicate-key error. A username supplied on
// the conflicting call is discarded; the stored username is never
// overwritten here.
const createOrGetQuery = `
WITH new_player AS (
    INSERT INTO players (id, username)
    VALUES ($1, $2)
    ON CONFLICT (id) DO NOTHING
    RETURNING ` + playerColumns + `
)
SELECT ` + playerColumns + ` FROM new_player
UNION
SELECT ` + playerColumns + ` FROM players WHERE id = $1`

// usernameUniqueConstraint is the schema-declared UNIQUE on username. The
// conflict target above is id, so a username collision on first insert
// surfaces as a raw unique violation rather than a resolved conflict.
const usernameUniqueConstraint = "players_username_key"

// PlayerRepository handles player data access
type PlayerRepository struct {
	db *sqlx.DB
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// CreateOrGet atomically inserts the player or returns the existing row.
func (r *PlayerRepository) CreateOrGet(ctx context.Context, id int64, username string) (*model.Player, error) {
	var p model.Player
	if err := r.db.GetContext(ctx, &p, createOrGetQuery, id, username); err != nil {
		if constraint, ok := database.UniqueViolation(err); ok && constraint == usernameUniqueConstraint {
			return nil, fmt.Errorf("%w: username %q", database.ErrDuplicate, username)
		}
		return nil, err
	}
	return &p, nil
}

// GetByID retrieves a player by id.
func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (*model.Player, error) {
	var p model.Player
	err := r.db.GetContext(ctx, &p, `SELECT `+playerColumns+` FROM players WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByIDs returns the requested page of players among the given ids,
// plus the total number of matches. Rows are ordered by id so pages stay
// stable under concurrent writes.
func (r *PlayerRepository) ListByIDs(ctx context.Context, ids []int64, page, limit int) ([]*model.Player, int, error) {
	return r.listPage(ctx, squirrel.Eq{"id": ids}, page, limit)
}

// SearchByUsername returns the requested page of players whose username
// contains the fragment, case-insensitively, plus the total match count.
func (r *PlayerRepository) SearchByUsername(ctx context.Context, fragment string, page, limit int) ([]*model.Player, int, error) {
	return r.listPage(ctx, squirrel.Expr("username ILIKE ?", "%"+fragment+"%"), page, limit)
}

func (r *PlayerRepository) listPage(ctx context.Context, where squirrel.Sqlizer, page, limit int) ([]*model.Player, int, error) {
	// Callers validate these; guard anyway so a slip cannot underflow the
	// offset.
	if page < 1 {
		page = 1
	}
	if limit < 0 {
		limit = 0
	}

	query, args, err := psql.
		Select("id", "username", "created_at", "updated_at").
		From("players").
		Where(where).
		OrderBy("id").
		Limit(uint64(limit)).
		Offset(uint64((page - 1) * limit)).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	players := make([]*model.Player, 0, limit)
	if err := r.db.SelectContext(ctx, &players, query, args...); err != nil {
		return nil, 0, err
	}

	countQuery, countArgs, err := psql.
		Select("COUNT(id)").
		From("players").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, err
	}

	return players, total, nil
}
