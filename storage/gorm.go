// storage/gorm.go
package storage

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"life-counter-api/models"
)

// GormStore is the Postgres-backed Store.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) CreateGame(ctx context.Context, game *models.Game) error {
	if err := s.DB.WithContext(ctx).Create(game).Error; err != nil {
		return errors.Wrap(err, "create game")
	}
	return nil
}

func (s *GormStore) GetGame(ctx context.Context, id uint) (*models.Game, error) {
	var game models.Game
	err := s.DB.WithContext(ctx).First(&game, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get game")
	}
	return &game, nil
}

func (s *GormStore) GetGameByName(ctx context.Context, name string) (*models.Game, error) {
	var game models.Game
	err := s.DB.WithContext(ctx).Where("name = ?", name).First(&game).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get game by name")
	}
	return &game, nil
}

func (s *GormStore) ListGames(ctx context.Context) ([]models.Game, error) {
	var games []models.Game
	if err := s.DB.WithContext(ctx).Order("id").Find(&games).Error; err != nil {
		return nil, errors.Wrap(err, "list games")
	}
	return games, nil
}

func (s *GormStore) SaveGame(ctx context.Context, game *models.Game) error {
	if err := s.DB.WithContext(ctx).Save(game).Error; err != nil {
		return errors.Wrap(err, "save game")
	}
	return nil
}

func (s *GormStore) DeleteGame(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.Game{}, id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete game")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) CreateMatch(ctx context.Context, match *models.Match) error {
	// Create persists the match row and its player rows in one transaction.
	if err := s.DB.WithContext(ctx).Create(match).Error; err != nil {
		return errors.Wrap(err, "create match")
	}
	return nil
}

func (s *GormStore) GetMatch(ctx context.Context, id uint) (*models.Match, error) {
	var match models.Match
	err := s.DB.WithContext(ctx).
		Preload("Players", func(db *gorm.DB) *gorm.DB { return db.Order("players.id") }).
		First(&match, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get match")
	}
	return &match, nil
}

// SaveMatch writes the match row and every player row inside one transaction,
// so a finalize lands all-or-nothing.
func (s *GormStore) SaveMatch(ctx context.Context, match *models.Match) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Players").Save(match).Error; err != nil {
			return err
		}
		for i := range match.Players {
			if err := tx.Save(&match.Players[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "save match")
	}
	return nil
}

// GetPlayerMatch resolves a player id to its owning match, players preloaded.
func (s *GormStore) GetPlayerMatch(ctx context.Context, playerID uint) (*models.Match, error) {
	var player models.Player
	err := s.DB.WithContext(ctx).First(&player, playerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get player")
	}
	return s.GetMatch(ctx, player.MatchID)
}

func (s *GormStore) ListActiveMatchesByGame(ctx context.Context, gameID uint) ([]models.Match, error) {
	var matches []models.Match
	err := s.DB.WithContext(ctx).
		Preload("Players").
		Where("game_id = ? AND is_finished = ?", gameID, false).
		Find(&matches).Error
	if err != nil {
		return nil, errors.Wrap(err, "list active matches")
	}
	return matches, nil
}

func (s *GormStore) ListStaleAutoEndMatches(ctx context.Context, cutoff time.Time) ([]models.Match, error) {
	var matches []models.Match
	err := s.DB.WithContext(ctx).
		Preload("Players").
		Where("auto_end = ? AND is_finished = ? AND starting_time <= ?", true, false, cutoff).
		Find(&matches).Error
	if err != nil {
		return nil, errors.Wrap(err, "list stale matches")
	}
	return matches, nil
}

func (s *GormStore) MatchStats(ctx context.Context) (*Stats, error) {
	db := s.DB.WithContext(ctx)
	stats := &Stats{}

	if err := db.Model(&models.Match{}).Where("is_finished = ?", true).
		Count(&stats.FinishedMatches).Error; err != nil {
		return nil, errors.Wrap(err, "count finished matches")
	}
	if err := db.Model(&models.Match{}).Where("is_finished = ?", false).
		Count(&stats.UnfinishedMatches).Error; err != nil {
		return nil, errors.Wrap(err, "count unfinished matches")
	}

	total := stats.FinishedMatches + stats.UnfinishedMatches
	if total > 0 {
		var playerSum int64
		if err := db.Model(&models.Match{}).
			Select("COALESCE(SUM(player_count), 0)").Scan(&playerSum).Error; err != nil {
			return nil, errors.Wrap(err, "sum player counts")
		}
		stats.AvgPlayersPerMatch = float64(playerSum) / float64(total)
	}

	if stats.FinishedMatches > 0 {
		var durationSum int64
		if err := db.Model(&models.Match{}).Where("is_finished = ?", true).
			Select("COALESCE(SUM(duration), 0)").Scan(&durationSum).Error; err != nil {
			return nil, errors.Wrap(err, "sum durations")
		}
		avg := time.Duration(durationSum) / time.Duration(stats.FinishedMatches)
		stats.AvgDurationMinutes = avg.Minutes()

		var mostPlayed struct{ GameID uint }
		err := db.Model(&models.Match{}).Where("is_finished = ?", true).
			Select("game_id").Group("game_id").Order("COUNT(*) DESC").Limit(1).
			Scan(&mostPlayed).Error
		if err != nil {
			return nil, errors.Wrap(err, "most played game")
		}
		stats.MostPlayedGameID = mostPlayed.GameID

		var longest struct{ GameID uint }
		err = db.Model(&models.Match{}).Where("is_finished = ?", true).
			Select("game_id").Group("game_id").Order("AVG(duration) DESC").Limit(1).
			Scan(&longest).Error
		if err != nil {
			return nil, errors.Wrap(err, "longest average game")
		}
		stats.LongestAvgGameID = longest.GameID
	}

	return stats, nil
}
