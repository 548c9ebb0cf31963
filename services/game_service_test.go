package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"life-counter-api/models"
	"life-counter-api/storage"
)

func TestCreateGameDefaultsAndSlug(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	game, msg, err := f.games.CreateGame(ctx, CreateGameRequest{Name: "Two-Headed Giant"})
	require.NoError(t, err)
	assert.Contains(t, msg, "created successfully")
	assert.Equal(t, models.DefaultStartingLife, game.StartingLife)
	assert.Equal(t, "two-headed-giant", game.Slug)
	assert.False(t, game.FixedMaxLife)
	assert.False(t, game.AutoEndMatch)
}

func TestCreateGameValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, _, err := f.games.CreateGame(ctx, CreateGameRequest{Name: ""})
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))

	_, _, err = f.games.CreateGame(ctx, CreateGameRequest{Name: "Brawl", StartingLife: -5})
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestCreateGameDuplicateName(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, _, err := f.games.CreateGame(ctx, CreateGameRequest{Name: "Commander", StartingLife: 40})
	require.NoError(t, err)

	_, _, err = f.games.CreateGame(ctx, CreateGameRequest{Name: "Commander"})
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestEditGame(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	game, _, err := f.games.CreateGame(ctx, CreateGameRequest{Name: "Standard"})
	require.NoError(t, err)

	edited, _, err := f.games.EditGame(ctx, game.ID, EditGameRequest{
		Name:         strPtr("Modern"),
		StartingLife: intPtr(25),
		AutoEndMatch: boolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, "Modern", edited.Name)
	assert.Equal(t, "modern", edited.Slug)
	assert.Equal(t, 25, edited.StartingLife)
	assert.True(t, edited.AutoEndMatch)

	_, _, err = f.games.EditGame(ctx, 999, EditGameRequest{StartingLife: intPtr(30)})
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))

	_, _, err = f.games.EditGame(ctx, game.ID, EditGameRequest{StartingLife: intPtr(0)})
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func strPtr(s string) *string { return &s }

func TestRemoveGameFinishesRunningMatches(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	game, _, err := f.games.CreateGame(ctx, CreateGameRequest{Name: "Limited"})
	require.NoError(t, err)

	match, _, err := f.matches.NewMatch(ctx, NewMatchRequest{GameID: game.ID})
	require.NoError(t, err)

	msg, err := f.games.RemoveGame(ctx, game.ID)
	require.NoError(t, err)
	assert.Contains(t, msg, "1 running matches were finished")

	stored, err := f.store.GetMatch(ctx, match.MatchID)
	require.NoError(t, err)
	assert.True(t, stored.IsFinished)
	for _, p := range stored.Players {
		assert.True(t, p.IsDeleted)
	}

	_, err = f.store.GetGame(ctx, game.ID)
	assert.Equal(t, storage.ErrNotFound, err)

	// Matches of a removed game stay queryable for statistics.
	stats, _, err := f.matches.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.FinishedMatches)
}

func TestRemoveGameNotFound(t *testing.T) {
	f := newFixture()
	_, err := f.games.RemoveGame(context.Background(), 77)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestListGames(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, _, err := f.games.CreateGame(ctx, CreateGameRequest{Name: "Pauper"})
	require.NoError(t, err)
	_, _, err = f.games.CreateGame(ctx, CreateGameRequest{Name: "Vintage", StartingLife: 20})
	require.NoError(t, err)

	games, msg, err := f.games.ListGames(ctx)
	require.NoError(t, err)
	assert.Len(t, games, 2)
	assert.Contains(t, msg, "2 games")
}
