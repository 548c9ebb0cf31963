// storage/storage.go
package storage

import (
	"context"
	"errors"
	"time"

	"life-counter-api/models"
)

// ErrNotFound is returned when a referenced game, match or player row does
// not exist (or is soft-deleted).
var ErrNotFound = errors.New("record not found")

// Stats is the aggregate report over all stored matches.
type Stats struct {
	FinishedMatches    int64   `json:"finished_matches"`
	UnfinishedMatches  int64   `json:"unfinished_matches"`
	AvgPlayersPerMatch float64 `json:"avg_players_per_match"`
	AvgDurationMinutes float64 `json:"avg_match_duration_minutes"`
	MostPlayedGameID   uint    `json:"most_played_game_id"`
	LongestAvgGameID   uint    `json:"longest_avg_game_id"`
}

// Store is the persistence boundary of the engine: load an aggregate, mutate
// it in memory, save it back. Implementations must make SaveMatch atomic over
// the match row and its player rows, so a finalize can never leave a finished
// match with live players.
type Store interface {
	// Games
	CreateGame(ctx context.Context, game *models.Game) error
	GetGame(ctx context.Context, id uint) (*models.Game, error)
	GetGameByName(ctx context.Context, name string) (*models.Game, error)
	ListGames(ctx context.Context) ([]models.Game, error)
	SaveGame(ctx context.Context, game *models.Game) error
	DeleteGame(ctx context.Context, id uint) error

	// Matches and players
	CreateMatch(ctx context.Context, match *models.Match) error
	GetMatch(ctx context.Context, id uint) (*models.Match, error)
	SaveMatch(ctx context.Context, match *models.Match) error
	GetPlayerMatch(ctx context.Context, playerID uint) (*models.Match, error)
	ListActiveMatchesByGame(ctx context.Context, gameID uint) ([]models.Match, error)
	ListStaleAutoEndMatches(ctx context.Context, cutoff time.Time) ([]models.Match, error)

	// Statistics
	MatchStats(ctx context.Context) (*Stats, error)
}
