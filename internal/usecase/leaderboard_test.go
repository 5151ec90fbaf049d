package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
	"github.com/rocketscienceinc/tictactoe-cli/internal/repository"
)

var (
	errDiskFull  = errors.New("disk full")
	errRedisDown = errors.New("redis down")
)

type mockLeaderboardRepo struct {
	mock.Mock
}

func (that *mockLeaderboardRepo) LoadAll(ctx context.Context) ([]entity.LeaderboardEntry, error) {
	args := that.Called(ctx)
	entries, _ := args.Get(0).([]entity.LeaderboardEntry)
	return entries, args.Error(1)
}

func (that *mockLeaderboardRepo) SaveAll(ctx context.Context, entries []entity.LeaderboardEntry) error {
	args := that.Called(ctx, entries)
	return args.Error(0)
}

func (that *mockLeaderboardRepo) Clear(ctx context.Context) error {
	args := that.Called(ctx)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLeaderboard_Record(t *testing.T) {
	ctx := context.Background()

	t.Run("Win then loss for Alice", func(t *testing.T) {
		// Given: a memory-only leaderboard
		leaderboard := NewLeaderboard(discardLogger(), nil)

		// When: Alice wins once and loses once
		require.NoError(t, leaderboard.Record(ctx, "Alice", entity.OutcomeWin))
		require.NoError(t, leaderboard.Record(ctx, "Alice", entity.OutcomeLoss))

		// Then: the snapshot has a single entry with both counts
		assert.Equal(t, []entity.LeaderboardEntry{{Name: "Alice", Wins: 1, Losses: 1}}, leaderboard.Snapshot())
	})

	t.Run("Names are case sensitive", func(t *testing.T) {
		leaderboard := NewLeaderboard(discardLogger(), nil)

		require.NoError(t, leaderboard.Record(ctx, "alice", entity.OutcomeDraw))
		require.NoError(t, leaderboard.Record(ctx, "Alice", entity.OutcomeDraw))

		assert.Len(t, leaderboard.Snapshot(), 2)
	})

	t.Run("Invalid names are rejected", func(t *testing.T) {
		leaderboard := NewLeaderboard(discardLogger(), nil)

		err := leaderboard.Record(ctx, "", entity.OutcomeWin)

		require.ErrorIs(t, err, apperror.ErrInvalidPlayerName)
		assert.Empty(t, leaderboard.Snapshot())
	})

	t.Run("Every change is flushed", func(t *testing.T) {
		repo := &mockLeaderboardRepo{}
		repo.On("SaveAll", mock.Anything, []entity.LeaderboardEntry{{Name: "Bob", Draws: 1}}).Return(nil).Once()
		leaderboard := NewLeaderboard(discardLogger(), repo)

		require.NoError(t, leaderboard.Record(ctx, "Bob", entity.OutcomeDraw))

		repo.AssertExpectations(t)
	})

	t.Run("Write failure keeps the in-memory change", func(t *testing.T) {
		// Given: a repository that cannot write
		repo := &mockLeaderboardRepo{}
		repo.On("SaveAll", mock.Anything, mock.Anything).Return(errDiskFull)
		leaderboard := NewLeaderboard(discardLogger(), repo)

		// When: recording a win
		err := leaderboard.Record(ctx, "Alice", entity.OutcomeWin)

		// Then: the failure is surfaced and memory stays authoritative
		require.ErrorIs(t, err, apperror.ErrPersistenceWrite)
		require.ErrorIs(t, err, errDiskFull)

		entry, err := leaderboard.Get("Alice")
		require.NoError(t, err)
		assert.Equal(t, 1, entry.Wins)
	})
}

func TestLeaderboard_Snapshot_SortedByName(t *testing.T) {
	ctx := context.Background()
	leaderboard := NewLeaderboard(discardLogger(), nil)

	for _, name := range []string{"Charlie", "Alice", "Bob"} {
		require.NoError(t, leaderboard.Record(ctx, name, entity.OutcomeWin))
	}

	snapshot := leaderboard.Snapshot()

	require.Len(t, snapshot, 3)
	assert.Equal(t, "Alice", snapshot[0].Name)
	assert.Equal(t, "Bob", snapshot[1].Name)
	assert.Equal(t, "Charlie", snapshot[2].Name)
}

func TestLeaderboard_Get_NotFound(t *testing.T) {
	leaderboard := NewLeaderboard(discardLogger(), nil)

	_, err := leaderboard.Get("nobody")

	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestLeaderboard_PersistAndReload(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "leaderboard.csv")

	// Given: a leaderboard backed by a file with a few results
	leaderboard := NewLeaderboard(discardLogger(), repository.NewFileLeaderboardRepository(discardLogger(), path))
	require.NoError(t, leaderboard.Record(ctx, "Alice", entity.OutcomeWin))
	require.NoError(t, leaderboard.Record(ctx, "Alice", entity.OutcomeLoss))
	require.NoError(t, leaderboard.Record(ctx, "Mary Ann", entity.OutcomeDraw))

	// When: a fresh leaderboard loads the same file
	reloaded := NewLeaderboard(discardLogger(), repository.NewFileLeaderboardRepository(discardLogger(), path))
	require.NoError(t, reloaded.Load(ctx))

	// Then: counts are reproduced exactly
	assert.Equal(t, leaderboard.Snapshot(), reloaded.Snapshot())
	assert.Equal(t, []entity.LeaderboardEntry{
		{Name: "Alice", Wins: 1, Losses: 1},
		{Name: "Mary Ann", Draws: 1},
	}, reloaded.Snapshot())
}

func TestLeaderboard_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("Duplicates keep the last entry", func(t *testing.T) {
		repo := &mockLeaderboardRepo{}
		repo.On("LoadAll", mock.Anything).Return([]entity.LeaderboardEntry{
			{Name: "Alice", Wins: 1},
			{Name: "Alice", Wins: 4},
		}, nil)
		leaderboard := NewLeaderboard(discardLogger(), repo)

		require.NoError(t, leaderboard.Load(ctx))

		assert.Equal(t, []entity.LeaderboardEntry{{Name: "Alice", Wins: 4}}, leaderboard.Snapshot())
	})

	t.Run("Repository failure is returned", func(t *testing.T) {
		repo := &mockLeaderboardRepo{}
		repo.On("LoadAll", mock.Anything).Return(nil, errRedisDown)
		leaderboard := NewLeaderboard(discardLogger(), repo)

		err := leaderboard.Load(ctx)

		require.ErrorIs(t, err, errRedisDown)
	})
}

func TestLeaderboard_Reset(t *testing.T) {
	ctx := context.Background()

	t.Run("Clears memory and the durable copy", func(t *testing.T) {
		repo := &mockLeaderboardRepo{}
		repo.On("SaveAll", mock.Anything, mock.Anything).Return(nil)
		repo.On("Clear", mock.Anything).Return(nil).Once()
		leaderboard := NewLeaderboard(discardLogger(), repo)
		require.NoError(t, leaderboard.Record(ctx, "Alice", entity.OutcomeWin))

		require.NoError(t, leaderboard.Reset(ctx))

		assert.Empty(t, leaderboard.Snapshot())
		repo.AssertExpectations(t)
	})

	t.Run("Clear failure is a write error", func(t *testing.T) {
		repo := &mockLeaderboardRepo{}
		repo.On("Clear", mock.Anything).Return(errDiskFull)
		leaderboard := NewLeaderboard(discardLogger(), repo)

		err := leaderboard.Reset(ctx)

		require.ErrorIs(t, err, apperror.ErrPersistenceWrite)
	})
}

func TestLeaderboard_ConcurrentRecords(t *testing.T) {
	ctx := context.Background()
	leaderboard := NewLeaderboard(discardLogger(), nil)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = leaderboard.Record(ctx, "Alice", entity.OutcomeWin)
			_ = leaderboard.Snapshot()
		}()
	}
	wg.Wait()

	entry, err := leaderboard.Get("Alice")
	require.NoError(t, err)
	assert.Equal(t, 50, entry.Wins)
}
