package services

import (
	"context"
	"time"

	"life-counter-api/models"
	"life-counter-api/storage"
)

// memStore is an in-memory storage.Store for tests. Reads hand out deep
// copies so a mutation only becomes visible once it is saved back, matching
// the load-mutate-save contract of the real store.
type memStore struct {
	games      map[uint]*models.Game
	matches    map[uint]*models.Match
	nextGameID uint
	nextID     uint

	failSaves bool
}

func newMemStore() *memStore {
	return &memStore{
		games:   make(map[uint]*models.Game),
		matches: make(map[uint]*models.Match),
	}
}

type saveFailure struct{}

func (saveFailure) Error() string { return "storage unavailable" }

func copyMatch(m *models.Match) *models.Match {
	out := *m
	out.Players = make([]models.Player, len(m.Players))
	copy(out.Players, m.Players)
	for i := range out.Players {
		if m.Players[i].MaxLife != nil {
			v := *m.Players[i].MaxLife
			out.Players[i].MaxLife = &v
		}
	}
	if m.EndingTime != nil {
		v := *m.EndingTime
		out.EndingTime = &v
	}
	return &out
}

func (s *memStore) CreateGame(_ context.Context, game *models.Game) error {
	s.nextGameID++
	game.ID = s.nextGameID
	g := *game
	s.games[game.ID] = &g
	return nil
}

func (s *memStore) GetGame(_ context.Context, id uint) (*models.Game, error) {
	game, ok := s.games[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	g := *game
	return &g, nil
}

func (s *memStore) GetGameByName(_ context.Context, name string) (*models.Game, error) {
	for _, game := range s.games {
		if game.Name == name {
			g := *game
			return &g, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *memStore) ListGames(_ context.Context) ([]models.Game, error) {
	games := make([]models.Game, 0, len(s.games))
	for _, game := range s.games {
		games = append(games, *game)
	}
	return games, nil
}

func (s *memStore) SaveGame(_ context.Context, game *models.Game) error {
	g := *game
	s.games[game.ID] = &g
	return nil
}

func (s *memStore) DeleteGame(_ context.Context, id uint) error {
	if _, ok := s.games[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.games, id)
	return nil
}

func (s *memStore) CreateMatch(_ context.Context, match *models.Match) error {
	s.nextID++
	match.ID = s.nextID
	for i := range match.Players {
		s.nextID++
		match.Players[i].ID = s.nextID
		match.Players[i].MatchID = match.ID
	}
	s.matches[match.ID] = copyMatch(match)
	return nil
}

func (s *memStore) GetMatch(_ context.Context, id uint) (*models.Match, error) {
	match, ok := s.matches[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return copyMatch(match), nil
}

func (s *memStore) SaveMatch(_ context.Context, match *models.Match) error {
	if s.failSaves {
		return saveFailure{}
	}
	s.matches[match.ID] = copyMatch(match)
	return nil
}

func (s *memStore) GetPlayerMatch(_ context.Context, playerID uint) (*models.Match, error) {
	for _, match := range s.matches {
		for i := range match.Players {
			if match.Players[i].ID == playerID {
				return copyMatch(match), nil
			}
		}
	}
	return nil, storage.ErrNotFound
}

func (s *memStore) ListActiveMatchesByGame(_ context.Context, gameID uint) ([]models.Match, error) {
	var out []models.Match
	for _, match := range s.matches {
		if match.GameID == gameID && !match.IsFinished {
			out = append(out, *copyMatch(match))
		}
	}
	return out, nil
}

func (s *memStore) ListStaleAutoEndMatches(_ context.Context, cutoff time.Time) ([]models.Match, error) {
	var out []models.Match
	for _, match := range s.matches {
		if match.AutoEnd && !match.IsFinished && !match.StartingTime.After(cutoff) {
			out = append(out, *copyMatch(match))
		}
	}
	return out, nil
}

func (s *memStore) MatchStats(_ context.Context) (*storage.Stats, error) {
	stats := &storage.Stats{}
	var playerSum int64
	var durationSum time.Duration
	for _, match := range s.matches {
		playerSum += int64(match.PlayerCount)
		if match.IsFinished {
			stats.FinishedMatches++
			durationSum += match.Duration
		} else {
			stats.UnfinishedMatches++
		}
	}
	total := stats.FinishedMatches + stats.UnfinishedMatches
	if total > 0 {
		stats.AvgPlayersPerMatch = float64(playerSum) / float64(total)
	}
	if stats.FinishedMatches > 0 {
		stats.AvgDurationMinutes = (durationSum / time.Duration(stats.FinishedMatches)).Minutes()
	}
	return stats, nil
}
