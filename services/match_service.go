// services/match_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"life-counter-api/models"
	"life-counter-api/storage"
)

type MatchService struct {
	Store storage.Store
	Log   *zap.SugaredLogger

	// now is swappable in tests.
	now func() time.Time
}

func NewMatchService(store storage.Store, log *zap.SugaredLogger) *MatchService {
	return &MatchService{Store: store, Log: log, now: time.Now}
}

// NewMatchRequest starts a match under a game. PlayersCount and PlayersLife
// are both optional; see NewMatch for how they reconcile.
type NewMatchRequest struct {
	GameID       uint  `json:"game_id"`
	PlayersCount *int  `json:"players_count,omitempty"`
	PlayersLife  []int `json:"players_life,omitempty"`
}

// PlayerSnapshot is the (id, life) pair every life operation reports back.
type PlayerSnapshot struct {
	PlayerID    uint `json:"player_id"`
	CurrentLife int  `json:"current_life"`
}

type MatchCreated struct {
	GameID  uint             `json:"game_id"`
	MatchID uint             `json:"match_id"`
	Players []PlayerSnapshot `json:"players"`
}

type MatchStatus struct {
	GameID      uint             `json:"game_id"`
	MatchID     uint             `json:"match_id"`
	Players     []PlayerSnapshot `json:"players"`
	ElapsedTime string           `json:"elapsed_time"`
	IsFinished  bool             `json:"is_finished"`
}

func snapshotPlayers(match *models.Match) []PlayerSnapshot {
	snaps := make([]PlayerSnapshot, 0, len(match.Players))
	for i := range match.Players {
		p := &match.Players[i]
		snaps = append(snaps, PlayerSnapshot{PlayerID: p.ID, CurrentLife: p.CurrentLife})
	}
	return snaps
}

// NewMatch creates a match and its seats under a game, copying the game's
// policy fields at this instant. Seat reconciliation:
//   - neither count nor life list: two seats at the game's starting life
//   - only a life list shorter than two: padded to two with the starting life
//   - a count larger than the life list: remaining seats get the starting life
//   - more life entries than seats: rejected
func (s *MatchService) NewMatch(ctx context.Context, req NewMatchRequest) (*MatchCreated, string, error) {
	if req.GameID == 0 {
		return nil, "", validationErr("a GameId must be informed")
	}
	if req.PlayersCount != nil && *req.PlayersCount < models.MinPlayerCount {
		return nil, "", validationErr("at least %d players are required to start a match", models.MinPlayerCount)
	}
	for _, life := range req.PlayersLife {
		if life <= 0 {
			return nil, "", validationErr("starting life must be at least 1, got %d", life)
		}
	}
	if req.PlayersCount != nil && len(req.PlayersLife) > *req.PlayersCount {
		return nil, "", validationErr(
			"there are %d seats but %d life entries; remove %d exceeding entries",
			*req.PlayersCount, len(req.PlayersLife), len(req.PlayersLife)-*req.PlayersCount)
	}

	game, err := s.Store.GetGame(ctx, req.GameID)
	if err == storage.ErrNotFound {
		return nil, "", notFoundErr("invalid GameId: game %d not found", req.GameID)
	}
	if err != nil {
		return nil, "", internalErr(err)
	}

	if game.FixedMaxLife {
		for _, life := range req.PlayersLife {
			if life > game.StartingLife {
				return nil, "", conflictErr("the maximum life total allowed for this game is %d", game.StartingLife)
			}
		}
	}

	lives := make([]int, len(req.PlayersLife))
	copy(lives, req.PlayersLife)
	seats := models.MinPlayerCount
	if req.PlayersCount != nil {
		seats = *req.PlayersCount
	}
	if len(lives) > seats {
		seats = len(lives)
	}
	for len(lives) < seats {
		lives = append(lives, game.StartingLife)
	}

	players := make([]models.Player, 0, len(lives))
	for _, life := range lives {
		player := models.Player{
			StartingLife: life,
			CurrentLife:  life,
			FixedMaxLife: game.FixedMaxLife,
		}
		if game.FixedMaxLife {
			maxLife := game.StartingLife
			player.MaxLife = &maxLife
		}
		players = append(players, player)
	}

	match := &models.Match{
		GameID:       game.ID,
		Players:      players,
		PlayerCount:  len(players),
		StartingTime: s.now(),
		AutoEnd:      game.AutoEndMatch,
	}
	if err := s.Store.CreateMatch(ctx, match); err != nil {
		return nil, "", internalErr(err)
	}

	s.Log.Infow("match started", "game_id", game.ID, "match_id", match.ID, "players", len(players))

	content := &MatchCreated{
		GameID:  game.ID,
		MatchID: match.ID,
		Players: snapshotPlayers(match),
	}
	return content, fmt.Sprintf("New %s match started with %d players", game.Name, len(players)), nil
}

// finalize runs the idempotent finalizer on a loaded match and persists the
// result. The bool reports whether this call did the finishing.
func (s *MatchService) finalize(ctx context.Context, match *models.Match) (bool, error) {
	if !match.Finish(s.now()) {
		return false, nil
	}
	if err := s.Store.SaveMatch(ctx, match); err != nil {
		return false, internalErr(err)
	}
	s.Log.Infow("match finished", "match_id", match.ID, "duration", match.Duration)
	return true, nil
}

// EndMatch ends a match on explicit request, regardless of the auto-end
// policy or the state of the life totals.
func (s *MatchService) EndMatch(ctx context.Context, matchID uint) (string, error) {
	if matchID == 0 {
		return "", validationErr("a MatchId must be informed")
	}
	match, err := s.Store.GetMatch(ctx, matchID)
	if err == storage.ErrNotFound {
		return "", notFoundErr("match %d not found", matchID)
	}
	if err != nil {
		return "", internalErr(err)
	}
	if match.IsFinished {
		return "", conflictErr("this match has already been finished previously")
	}
	if _, err := s.finalize(ctx, match); err != nil {
		return "", err
	}
	return "Match ended successfully. This match is now finished and all its players have been removed", nil
}

// MatchStatus reports a match's players, elapsed time and finished flag. It is
// also a detection point for auto-end: when the match's AutoEnd snapshot is
// set and the termination predicate holds, the status call itself finalizes
// before answering.
func (s *MatchService) MatchStatus(ctx context.Context, matchID uint) (*MatchStatus, string, error) {
	if matchID == 0 {
		return nil, "", validationErr("a MatchId must be informed")
	}
	match, err := s.Store.GetMatch(ctx, matchID)
	if err == storage.ErrNotFound {
		return nil, "", notFoundErr("match %d not found", matchID)
	}
	if err != nil {
		return nil, "", internalErr(err)
	}

	if !match.IsFinished && match.AutoEnd && match.ShouldEnd(s.now()) {
		if _, err := s.finalize(ctx, match); err != nil {
			return nil, "", err
		}
	}

	content := &MatchStatus{
		GameID:      match.GameID,
		MatchID:     match.ID,
		Players:     snapshotPlayers(match),
		ElapsedTime: models.FormatElapsed(match.Elapsed(s.now())),
		IsFinished:  match.IsFinished,
	}
	return content, fmt.Sprintf("Match %d status", match.ID), nil
}

// FinishGameMatches ends every active match of a game. RemoveGame uses it so
// a deleted game leaves no live matches behind.
func (s *MatchService) FinishGameMatches(ctx context.Context, gameID uint) (int, error) {
	matches, err := s.Store.ListActiveMatchesByGame(ctx, gameID)
	if err != nil {
		return 0, internalErr(err)
	}
	finished := 0
	for i := range matches {
		done, err := s.finalize(ctx, &matches[i])
		if err != nil {
			return finished, err
		}
		if done {
			finished++
		}
	}
	return finished, nil
}

// Stats aggregates counts and averages over all stored matches.
func (s *MatchService) Stats(ctx context.Context) (*storage.Stats, string, error) {
	stats, err := s.Store.MatchStats(ctx)
	if err != nil {
		return nil, "", internalErr(err)
	}
	return stats, "Statistics computed successfully", nil
}
