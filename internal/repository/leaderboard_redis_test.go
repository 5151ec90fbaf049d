package repository

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
	"github.com/rocketscienceinc/tictactoe-cli/testing/suite"
)

func TestRedisLeaderboard_RoundTrip(t *testing.T) {
	ctx, st := suite.New(t)

	repo := NewRedisLeaderboardRepository(st.Logger, st.Storage, "")

	// Given: entries saved to redis
	entries := []entity.LeaderboardEntry{
		{Name: "Alice", Wins: 1, Losses: 1},
		{Name: "Mary Ann", Draws: 5},
	}
	require.NoError(t, repo.SaveAll(ctx, entries))

	// When: loading them back
	loaded, err := repo.LoadAll(ctx)
	require.NoError(t, err)

	// Then: they match, whatever order the hash returns
	sort.Slice(loaded, func(i, j int) bool { return loaded[i].Name < loaded[j].Name })
	assert.Equal(t, entries, loaded)
}

func TestRedisLeaderboard_SkipsCorruptValues(t *testing.T) {
	ctx, st := suite.New(t)

	repo := NewRedisLeaderboardRepository(st.Logger, st.Storage, "scores")
	require.NoError(t, repo.SaveAll(ctx, []entity.LeaderboardEntry{{Name: "Alice", Wins: 2}}))
	require.NoError(t, st.Storage.HSet(ctx, "scores", "Bob", "not json").Err())

	loaded, err := repo.LoadAll(ctx)

	require.NoError(t, err)
	assert.Equal(t, []entity.LeaderboardEntry{{Name: "Alice", Wins: 2}}, loaded)
}

func TestRedisLeaderboard_Clear(t *testing.T) {
	ctx, st := suite.New(t)

	repo := NewRedisLeaderboardRepository(st.Logger, st.Storage, "")
	require.NoError(t, repo.SaveAll(ctx, []entity.LeaderboardEntry{{Name: "Alice", Wins: 2}}))

	require.NoError(t, repo.Clear(ctx))
	require.NoError(t, repo.SaveAll(ctx, nil))

	loaded, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
