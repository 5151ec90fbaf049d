package repository

import (
	"context"

	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
)

// LeaderboardRepository is the durable copy of the leaderboard. The in-memory store
// is authoritative; the repository receives the full set of entries on every flush.
type LeaderboardRepository interface {
	// LoadAll returns every readable entry. Malformed records are skipped, never fatal.
	LoadAll(ctx context.Context) ([]entity.LeaderboardEntry, error)
	// SaveAll replaces the stored entries with entries.
	SaveAll(ctx context.Context, entries []entity.LeaderboardEntry) error
	// Clear removes every stored entry.
	Clear(ctx context.Context) error
}
