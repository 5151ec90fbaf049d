package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
)

type leaderboardRepo interface {
	LoadAll(ctx context.Context) ([]entity.LeaderboardEntry, error)
	SaveAll(ctx context.Context, entries []entity.LeaderboardEntry) error
	Clear(ctx context.Context) error
}

// Leaderboard is the in-memory scoreboard and the source of truth while the process runs.
// Every change is flushed to the repository; a failed flush is reported with
// apperror.ErrPersistenceWrite but the in-memory change is kept.
type Leaderboard struct {
	logger *slog.Logger
	repo   leaderboardRepo

	mu      sync.Mutex
	entries map[string]*entity.LeaderboardEntry
}

// NewLeaderboard creates an empty leaderboard. repo may be nil for a memory-only store.
func NewLeaderboard(logger *slog.Logger, repo leaderboardRepo) *Leaderboard {
	return &Leaderboard{
		logger:  logger.With("component", "leaderboard"),
		repo:    repo,
		entries: make(map[string]*entity.LeaderboardEntry),
	}
}

// Load replaces the in-memory entries with the repository content.
func (that *Leaderboard) Load(ctx context.Context) error {
	if that.repo == nil {
		return nil
	}

	log := that.logger.With("method", "Load")

	loaded, err := that.repo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load leaderboard: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.entries = make(map[string]*entity.LeaderboardEntry, len(loaded))
	for _, entry := range loaded {
		if _, ok := that.entries[entry.Name]; ok {
			log.Warn("duplicate leaderboard entry, keeping the last one", "name", entry.Name)
		}

		that.entries[entry.Name] = &entry
	}

	log.Info("leaderboard loaded", "entries", len(that.entries))

	return nil
}

// Record - adds one outcome to name's entry, creating it if needed.
func (that *Leaderboard) Record(ctx context.Context, name string, outcome entity.Outcome) error {
	if err := entity.ValidatePlayerName(name); err != nil {
		return err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.entries[name]
	if !ok {
		entry = &entity.LeaderboardEntry{Name: name}
	}

	if err := entry.Apply(outcome); err != nil {
		return fmt.Errorf("failed to record %s for %q: %w", outcome, name, err)
	}

	that.entries[name] = entry

	return that.flush(ctx)
}

// Get returns the entry for name.
func (that *Leaderboard) Get(name string) (entity.LeaderboardEntry, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.entries[name]
	if !ok {
		return entity.LeaderboardEntry{}, fmt.Errorf("%w: player %q", apperror.ErrNotFound, name)
	}

	return *entry, nil
}

// Snapshot returns a copy of all entries ordered by name.
func (that *Leaderboard) Snapshot() []entity.LeaderboardEntry {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.snapshot()
}

// Reset - clears the leaderboard and its durable copy.
func (that *Leaderboard) Reset(ctx context.Context) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.entries = make(map[string]*entity.LeaderboardEntry)

	if that.repo == nil {
		return nil
	}

	if err := that.repo.Clear(ctx); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrPersistenceWrite, err)
	}

	that.logger.Info("leaderboard reset")

	return nil
}

func (that *Leaderboard) snapshot() []entity.LeaderboardEntry {
	entries := make([]entity.LeaderboardEntry, 0, len(that.entries))
	for _, entry := range that.entries {
		entries = append(entries, *entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	return entries
}

func (that *Leaderboard) flush(ctx context.Context) error {
	if that.repo == nil {
		return nil
	}

	if err := that.repo.SaveAll(ctx, that.snapshot()); err != nil {
		that.logger.Error("failed to persist leaderboard", "error", err)
		return fmt.Errorf("%w: %w", apperror.ErrPersistenceWrite, err)
	}

	return nil
}
