package repository

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFileLeaderboard_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "leaderboard.csv")
	repo := NewFileLeaderboardRepository(discardLogger(), path)

	// Given: entries with awkward names
	entries := []entity.LeaderboardEntry{
		{Name: "Alice", Wins: 1, Losses: 1},
		{Name: "Mary Ann", Wins: 12, Draws: 3},
		{Name: "Smith, John", Losses: 7},
		{Name: `The "Ace"`, Wins: 2},
		{Name: "  padded  ", Draws: 1},
	}

	// When: they are saved and loaded back
	require.NoError(t, repo.SaveAll(ctx, entries))
	loaded, err := repo.LoadAll(ctx)

	// Then: names and counts match exactly
	require.NoError(t, err)
	assert.Equal(t, entries, loaded)
}

func TestFileLeaderboard_LoadAll(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing file is an empty leaderboard", func(t *testing.T) {
		repo := NewFileLeaderboardRepository(discardLogger(), filepath.Join(t.TempDir(), "none.csv"))

		loaded, err := repo.LoadAll(ctx)

		require.NoError(t, err)
		assert.Empty(t, loaded)
	})

	t.Run("Blank and corrupt lines are skipped", func(t *testing.T) {
		// Given: a file mixing good records with broken ones
		path := filepath.Join(t.TempDir(), "leaderboard.csv")
		content := "Alice,3,1,0\n" +
			"\n" +
			"   \n" +
			"Bob,x,1,2\n" +
			"Carol,1,2\n" +
			"Dave,-1,0,0\n" +
			"\"Broken,1,1,1\n" +
			"Eve Online,0,0,4\n" +
			",1,1,1\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		repo := NewFileLeaderboardRepository(discardLogger(), path)

		// When: loading
		loaded, err := repo.LoadAll(ctx)

		// Then: only the valid records are kept
		require.NoError(t, err)
		assert.Equal(t, []entity.LeaderboardEntry{
			{Name: "Alice", Wins: 3, Losses: 1},
			{Name: "Eve Online", Draws: 4},
		}, loaded)
	})
}

func TestFileLeaderboard_LoadAll_OversizedLine(t *testing.T) {
	ctx := context.Background()

	// Given: a line far longer than any record, between two valid ones
	path := filepath.Join(t.TempDir(), "leaderboard.csv")
	content := "Alice,3,1,0\n" +
		strings.Repeat("z", 70<<10) + ",1,1,1\n" +
		"Bob,1,2,3\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	repo := NewFileLeaderboardRepository(discardLogger(), path)

	// When: loading
	loaded, err := repo.LoadAll(ctx)

	// Then: the long line is skipped and reading goes on
	require.NoError(t, err)
	assert.Equal(t, []entity.LeaderboardEntry{
		{Name: "Alice", Wins: 3, Losses: 1},
		{Name: "Bob", Wins: 1, Losses: 2, Draws: 3},
	}, loaded)
}

func TestFileLeaderboard_LoadAll_LastLineWithoutNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leaderboard.csv")
	require.NoError(t, os.WriteFile(path, []byte("Alice,3,1,0\r\nBob,1,2,3"), 0o600))

	loaded, err := NewFileLeaderboardRepository(discardLogger(), path).LoadAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []entity.LeaderboardEntry{
		{Name: "Alice", Wins: 3, Losses: 1},
		{Name: "Bob", Wins: 1, Losses: 2, Draws: 3},
	}, loaded)
}

func TestFileLeaderboard_SaveAll(t *testing.T) {
	ctx := context.Background()

	t.Run("Overwrites the previous content", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "leaderboard.csv")
		repo := NewFileLeaderboardRepository(discardLogger(), path)

		require.NoError(t, repo.SaveAll(ctx, []entity.LeaderboardEntry{{Name: "Old", Wins: 1}}))
		require.NoError(t, repo.SaveAll(ctx, []entity.LeaderboardEntry{{Name: "New", Draws: 2}}))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "New,0,0,2\n", string(content))
	})

	t.Run("Unwritable directory fails", func(t *testing.T) {
		repo := NewFileLeaderboardRepository(discardLogger(), filepath.Join(t.TempDir(), "missing", "leaderboard.csv"))

		err := repo.SaveAll(ctx, []entity.LeaderboardEntry{{Name: "Alice"}})

		require.Error(t, err)
	})
}

func TestFileLeaderboard_Clear(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "leaderboard.csv")
	repo := NewFileLeaderboardRepository(discardLogger(), path)
	require.NoError(t, repo.SaveAll(ctx, []entity.LeaderboardEntry{{Name: "Alice", Wins: 1}}))

	require.NoError(t, repo.Clear(ctx))
	require.NoError(t, repo.Clear(ctx))

	loaded, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestParseRecord(t *testing.T) {
	entry, err := parseRecord(`"Smith, John",4,5,6`)

	require.NoError(t, err)
	assert.Equal(t, entity.LeaderboardEntry{Name: "Smith, John", Wins: 4, Losses: 5, Draws: 6}, entry)

	_, err = parseRecord("Alice,1,2,3,4")
	require.Error(t, err)
}
