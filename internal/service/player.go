package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/playforge/miniapp-api/internal/database"
	"github.com/playforge/miniapp-api/internal/model"
)

// PlayerRepositoryInterface defines the repository methods used by PlayerService.
type PlayerRepositoryInterface interface {
	CreateOrGet(ctx context.Context, id int64, username string) (*model.Player, error)
	GetByID(ctx context.Context, id int64) (*model.Player, error)
	ListByIDs(ctx context.Context, ids []int64, page, limit int) ([]*model.Player, int, error)
	SearchByUsername(ctx context.Context, fragment string, page, limit int) ([]*model.Player, int, error)
}

// PlayerService contains business logic for player resolution and lookup.
type PlayerService struct {
	repo PlayerRepositoryInterface
}

func NewPlayerService(repo PlayerRepositoryInterface) *PlayerService {
	return &PlayerService{repo: repo}
}

// CreateOrGet resolves the player for an authenticated identity. If the
// player already exists the stored row is returned unchanged; the stored
// username is never overwritten, even when the identity carries a newer one.
func (s *PlayerService) CreateOrGet(ctx context.Context, id int64, username string) (*model.Player, error) {
	if id == 0 {
		return nil, ErrPlayerIDRequired
	}
	if len(username) > model.UsernameMaxLength {
		return nil, ErrUsernameTooLong
	}

	player, err := s.repo.CreateOrGet(ctx, id, username)
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("resolving player %d: %w", id, err)
	}
	return player, nil
}

// GetByID fetches a single player.
func (s *PlayerService) GetByID(ctx context.Context, id int64) (*model.Player, error) {
	player, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("fetching player %d: %w", id, err)
	}
	return player, nil
}

// ListByIDs returns the page of players whose ids appear in ids, ordered by
// id, with pagination metadata computed from the total match count. Ids with
// no matching row are skipped rather than reported as errors.
func (s *PlayerService) ListByIDs(ctx context.Context, ids []int64, page, limit int) ([]*model.Player, *model.Pagination, error) {
	players, total, err := s.repo.ListByIDs(ctx, ids, page, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("listing players: %w", err)
	}
	return players, model.NewPagination(page, limit, total), nil
}

// SearchByUsername returns the page of players whose username contains
// fragment, case-insensitively, with pagination metadata.
func (s *PlayerService) SearchByUsername(ctx context.Context, fragment string, page, limit int) ([]*model.Player, *model.Pagination, error) {
	players, total, err := s.repo.SearchByUsername(ctx, fragment, page, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("searching players: %w", err)
	}
	return players, model.NewPagination(page, limit, total), nil
}
