// services/player_service.go
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"life-counter-api/models"
	"life-counter-api/storage"
)

type PlayerService struct {
	Store storage.Store
	Log   *zap.SugaredLogger
	Match *MatchService

	now func() time.Time
}

func NewPlayerService(store storage.Store, log *zap.SugaredLogger, matches *MatchService) *PlayerService {
	return &PlayerService{Store: store, Log: log, Match: matches, now: time.Now}
}

type IncreaseLifeRequest struct {
	PlayerID uint `json:"player_id"`
	Amount   int  `json:"amount"`
}

type DecreaseLifeRequest struct {
	MatchID   *uint  `json:"match_id,omitempty"`
	PlayerIDs []uint `json:"player_ids,omitempty"`
	Amount    int    `json:"amount"`
}

type SetLifeRequest struct {
	PlayerID uint `json:"player_id"`
	NewLife  int  `json:"new_life"`
}

type ResetLifeRequest struct {
	MatchID   *uint  `json:"match_id,omitempty"`
	PlayerIDs []uint `json:"player_ids,omitempty"`
}

// loadPlayerMatch resolves one player id to (its match, the player), with the
// shared preconditions: the player exists, is not soft-deleted, and its match
// is still running.
func (s *PlayerService) loadPlayerMatch(ctx context.Context, playerID uint) (*models.Match, *models.Player, error) {
	if playerID == 0 {
		return nil, nil, validationErr("PlayerId must be a positive number")
	}
	match, err := s.Store.GetPlayerMatch(ctx, playerID)
	if err == storage.ErrNotFound {
		return nil, nil, notFoundErr("player %d not found", playerID)
	}
	if err != nil {
		return nil, nil, internalErr(err)
	}
	if match.IsFinished {
		return nil, nil, conflictErr("this player's match is already finished")
	}
	for i := range match.Players {
		p := &match.Players[i]
		if p.ID == playerID {
			if p.IsDeleted {
				return nil, nil, notFoundErr("player %d not found", playerID)
			}
			return match, p, nil
		}
	}
	return nil, nil, notFoundErr("player %d not found", playerID)
}

// resolveTargets resolves a MatchID-or-PlayerIDs target selection to the owning
// match and the players to mutate. A match id targets every seat; player ids
// must all belong to one and the same unfinished match.
func (s *PlayerService) resolveTargets(ctx context.Context, matchID *uint, playerIDs []uint) (*models.Match, []*models.Player, error) {
	if matchID == nil && len(playerIDs) == 0 {
		return nil, nil, validationErr("neither a MatchId nor at least one PlayerId were informed")
	}
	if matchID != nil && len(playerIDs) > 0 {
		return nil, nil, validationErr("inform either a MatchId or one or more PlayerIds, but not both")
	}

	if matchID != nil {
		if *matchID == 0 {
			return nil, nil, validationErr("MatchId must be a positive number")
		}
		match, err := s.Store.GetMatch(ctx, *matchID)
		if err == storage.ErrNotFound {
			return nil, nil, notFoundErr("match %d not found", *matchID)
		}
		if err != nil {
			return nil, nil, internalErr(err)
		}
		if match.IsFinished {
			return nil, nil, conflictErr("this match is already finished")
		}
		targets := make([]*models.Player, 0, len(match.Players))
		for i := range match.Players {
			targets = append(targets, &match.Players[i])
		}
		return match, targets, nil
	}

	for _, id := range playerIDs {
		if id == 0 {
			return nil, nil, validationErr("PlayerId must be a positive number")
		}
	}
	match, first, err := s.loadPlayerMatch(ctx, playerIDs[0])
	if err != nil {
		return nil, nil, err
	}
	targets := []*models.Player{first}
	for _, id := range playerIDs[1:] {
		found := false
		for i := range match.Players {
			p := &match.Players[i]
			if p.ID == id {
				if p.IsDeleted {
					return nil, nil, notFoundErr("player %d not found", id)
				}
				targets = append(targets, p)
				found = true
				break
			}
		}
		if found {
			continue
		}
		// The id resolves outside this match, or not at all.
		if _, err := s.Store.GetPlayerMatch(ctx, id); err == storage.ErrNotFound {
			return nil, nil, notFoundErr("player %d not found", id)
		} else if err != nil {
			return nil, nil, internalErr(err)
		}
		return nil, nil, conflictErr("players %s do not all belong to the same match", joinIDs(playerIDs))
	}
	return match, targets, nil
}

func joinIDs(ids []uint) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ", ")
}

// IncreaseLife heals one player. With a fixed max life the applied amount is
// clamped at the cap, and healing a player already at the cap is rejected.
func (s *PlayerService) IncreaseLife(ctx context.Context, req IncreaseLifeRequest) ([]PlayerSnapshot, string, error) {
	if req.Amount <= 0 {
		return nil, "", validationErr("the healing amount must be a positive value")
	}
	match, player, err := s.loadPlayerMatch(ctx, req.PlayerID)
	if err != nil {
		return nil, "", err
	}

	if limit, bounded := player.LifeBound(); bounded && player.CurrentLife >= limit {
		return nil, "", conflictErr("player %d is already at the maximum life of %d", player.ID, limit)
	}

	applied, capped := player.Heal(req.Amount)
	if err := s.Store.SaveMatch(ctx, match); err != nil {
		return nil, "", internalErr(err)
	}

	message := fmt.Sprintf("Player %d healed %d life points", player.ID, applied)
	if capped {
		limit, _ := player.LifeBound()
		message = fmt.Sprintf("Player %d healed %d of %d life points, capped at the maximum of %d",
			player.ID, applied, req.Amount, limit)
	}
	return snapshotPlayers(match), message, nil
}

// DecreaseLife damages the targeted players. Life may go negative. After the
// damage lands, the match's termination predicate is evaluated and an
// auto-end match finalizes itself.
func (s *PlayerService) DecreaseLife(ctx context.Context, req DecreaseLifeRequest) ([]PlayerSnapshot, string, error) {
	if req.Amount < 0 {
		return nil, "", validationErr("the damage amount must be a non-negative value")
	}
	match, targets, err := s.resolveTargets(ctx, req.MatchID, req.PlayerIDs)
	if err != nil {
		return nil, "", err
	}

	for _, p := range targets {
		p.Damage(req.Amount)
	}

	message := fmt.Sprintf("Player (id = %d) suffered %d damage", targets[0].ID, req.Amount)
	if len(targets) > 1 {
		ids := make([]uint, len(targets))
		for i, p := range targets {
			ids[i] = p.ID
		}
		message = fmt.Sprintf("Players (ids = %s) suffered %d damage", joinIDs(ids), req.Amount)
	}

	if match.AutoEnd && match.ShouldEnd(s.now()) {
		if _, err := s.Match.finalize(ctx, match); err != nil {
			return nil, "", err
		}
		message += ". This match is now finished and all its players have been removed"
	} else if err := s.Store.SaveMatch(ctx, match); err != nil {
		return nil, "", internalErr(err)
	}

	return snapshotPlayers(match), message, nil
}

// SetLife assigns a player's life directly. With a fixed max life, setting to
// the cap or above is rejected outright.
func (s *PlayerService) SetLife(ctx context.Context, req SetLifeRequest) ([]PlayerSnapshot, string, error) {
	if req.NewLife < 0 {
		return nil, "", validationErr("a player's life total cannot be set below zero")
	}
	match, player, err := s.loadPlayerMatch(ctx, req.PlayerID)
	if err != nil {
		return nil, "", err
	}

	if limit, bounded := player.LifeBound(); bounded && req.NewLife >= limit {
		return nil, "", conflictErr("the maximum life allowed for this game is %d; player %d is treated as already at maximum", limit, player.ID)
	}

	player.CurrentLife = req.NewLife
	if err := s.Store.SaveMatch(ctx, match); err != nil {
		return nil, "", internalErr(err)
	}
	return snapshotPlayers(match), fmt.Sprintf("Player %d's life was successfully set to %d points", player.ID, req.NewLife), nil
}

// ResetLife restores each targeted player to their own recorded starting
// life. A game edited after the match was created has no effect here.
func (s *PlayerService) ResetLife(ctx context.Context, req ResetLifeRequest) ([]PlayerSnapshot, string, error) {
	match, targets, err := s.resolveTargets(ctx, req.MatchID, req.PlayerIDs)
	if err != nil {
		return nil, "", err
	}

	for _, p := range targets {
		p.ResetLife()
	}
	if err := s.Store.SaveMatch(ctx, match); err != nil {
		return nil, "", internalErr(err)
	}

	message := fmt.Sprintf("Player (id = %d) had their life reset", targets[0].ID)
	if len(targets) > 1 {
		ids := make([]uint, len(targets))
		for i, p := range targets {
			ids[i] = p.ID
		}
		message = fmt.Sprintf("Players (ids = %s) had their lives reset", joinIDs(ids))
	}
	return snapshotPlayers(match), message, nil
}
