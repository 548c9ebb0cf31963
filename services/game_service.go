// services/game_service.go
package services

import (
	"context"
	"fmt"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"life-counter-api/models"
	"life-counter-api/storage"
)

type GameService struct {
	Store   storage.Store
	Log     *zap.SugaredLogger
	Matches *MatchService
}

func NewGameService(store storage.Store, log *zap.SugaredLogger, matches *MatchService) *GameService {
	return &GameService{Store: store, Log: log, Matches: matches}
}

type CreateGameRequest struct {
	Name         string `json:"name"`
	StartingLife int    `json:"starting_life"`
	FixedMaxLife bool   `json:"fixed_max_life"`
	AutoEndMatch bool   `json:"auto_end_match"`
}

type EditGameRequest struct {
	Name         *string `json:"name,omitempty"`
	StartingLife *int    `json:"starting_life,omitempty"`
	FixedMaxLife *bool   `json:"fixed_max_life,omitempty"`
	AutoEndMatch *bool   `json:"auto_end_match,omitempty"`
}

// CreateGame registers a new game policy. An omitted starting life defaults
// to models.DefaultStartingLife.
func (s *GameService) CreateGame(ctx context.Context, req CreateGameRequest) (*models.Game, string, error) {
	if req.Name == "" {
		return nil, "", validationErr("a game name must be informed")
	}
	if req.StartingLife < 0 {
		return nil, "", validationErr("starting life must be a positive number")
	}
	if req.StartingLife == 0 {
		req.StartingLife = models.DefaultStartingLife
	}

	if _, err := s.Store.GetGameByName(ctx, req.Name); err == nil {
		return nil, "", conflictErr("a game named %q already exists", req.Name)
	} else if err != storage.ErrNotFound {
		return nil, "", internalErr(err)
	}

	game := &models.Game{
		Name:         req.Name,
		Slug:         slug.Make(req.Name),
		StartingLife: req.StartingLife,
		FixedMaxLife: req.FixedMaxLife,
		AutoEndMatch: req.AutoEndMatch,
	}
	if err := s.Store.CreateGame(ctx, game); err != nil {
		return nil, "", internalErr(err)
	}

	s.Log.Infow("game created", "game_id", game.ID, "slug", game.Slug)
	return game, fmt.Sprintf("Game %q created successfully", game.Name), nil
}

// EditGame updates a game's policy fields. Matches created before the edit
// keep the snapshots they took at creation; only future matches see the new
// policy.
func (s *GameService) EditGame(ctx context.Context, gameID uint, req EditGameRequest) (*models.Game, string, error) {
	if gameID == 0 {
		return nil, "", validationErr("a GameId must be informed")
	}
	if req.StartingLife != nil && *req.StartingLife <= 0 {
		return nil, "", validationErr("starting life must be a positive number")
	}

	game, err := s.Store.GetGame(ctx, gameID)
	if err == storage.ErrNotFound {
		return nil, "", notFoundErr("game %d not found", gameID)
	}
	if err != nil {
		return nil, "", internalErr(err)
	}

	if req.Name != nil && *req.Name != "" && *req.Name != game.Name {
		if _, err := s.Store.GetGameByName(ctx, *req.Name); err == nil {
			return nil, "", conflictErr("a game named %q already exists", *req.Name)
		} else if err != storage.ErrNotFound {
			return nil, "", internalErr(err)
		}
		game.Name = *req.Name
		game.Slug = slug.Make(*req.Name)
	}
	if req.StartingLife != nil {
		game.StartingLife = *req.StartingLife
	}
	if req.FixedMaxLife != nil {
		game.FixedMaxLife = *req.FixedMaxLife
	}
	if req.AutoEndMatch != nil {
		game.AutoEndMatch = *req.AutoEndMatch
	}

	if err := s.Store.SaveGame(ctx, game); err != nil {
		return nil, "", internalErr(err)
	}
	return game, fmt.Sprintf("Game %q edited successfully", game.Name), nil
}

// RemoveGame soft-deletes a game and finishes every match still running
// under it, so no live match references a deleted game.
func (s *GameService) RemoveGame(ctx context.Context, gameID uint) (string, error) {
	if gameID == 0 {
		return "", validationErr("a GameId must be informed")
	}
	if _, err := s.Store.GetGame(ctx, gameID); err == storage.ErrNotFound {
		return "", notFoundErr("game %d not found", gameID)
	} else if err != nil {
		return "", internalErr(err)
	}

	finished, err := s.Matches.FinishGameMatches(ctx, gameID)
	if err != nil {
		return "", err
	}
	if err := s.Store.DeleteGame(ctx, gameID); err != nil {
		return "", internalErr(err)
	}

	s.Log.Infow("game removed", "game_id", gameID, "matches_finished", finished)
	if finished > 0 {
		return fmt.Sprintf("Game removed; %d running matches were finished", finished), nil
	}
	return "Game removed successfully", nil
}

func (s *GameService) GetGame(ctx context.Context, gameID uint) (*models.Game, string, error) {
	if gameID == 0 {
		return nil, "", validationErr("a GameId must be informed")
	}
	game, err := s.Store.GetGame(ctx, gameID)
	if err == storage.ErrNotFound {
		return nil, "", notFoundErr("game %d not found", gameID)
	}
	if err != nil {
		return nil, "", internalErr(err)
	}
	return game, fmt.Sprintf("Game %q", game.Name), nil
}

func (s *GameService) ListGames(ctx context.Context) ([]models.Game, string, error) {
	games, err := s.Store.ListGames(ctx)
	if err != nil {
		return nil, "", internalErr(err)
	}
	return games, fmt.Sprintf("%d games listed", len(games)), nil
}
