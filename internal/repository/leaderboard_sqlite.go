package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
)

type sqliteLeaderboard struct {
	logger *slog.Logger
	conn   *sql.DB
}

func NewSQLiteLeaderboardRepository(logger *slog.Logger, conn *sql.DB) LeaderboardRepository {
	return &sqliteLeaderboard{
		logger: logger.With("component", "sqlite_leaderboard"),
		conn:   conn,
	}
}

func (that *sqliteLeaderboard) LoadAll(ctx context.Context) ([]entity.LeaderboardEntry, error) {
	log := that.logger.With("method", "LoadAll")

	query := `SELECT name, wins, losses, draws FROM leaderboard ORDER BY name`

	rows, err := that.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("can't load leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []entity.LeaderboardEntry
	for rows.Next() {
		var entry entity.LeaderboardEntry
		if err = rows.Scan(&entry.Name, &entry.Wins, &entry.Losses, &entry.Draws); err != nil {
			log.Warn("skipping leaderboard record", "error", &apperror.ParseError{Err: err})
			continue
		}

		if err = entry.Validate(); err != nil {
			log.Warn("skipping leaderboard record", "name", entry.Name, "error", &apperror.ParseError{Err: err})
			continue
		}

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return entries, fmt.Errorf("can't read leaderboard: %w", err)
	}

	return entries, nil
}

func (that *sqliteLeaderboard) SaveAll(ctx context.Context, entries []entity.LeaderboardEntry) error {
	tx, err := that.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint: errcheck // no-op after commit

	if _, err = tx.ExecContext(ctx, `DELETE FROM leaderboard`); err != nil {
		return fmt.Errorf("can't clear leaderboard: %w", err)
	}

	query := `INSERT INTO leaderboard (name, wins, losses, draws) VALUES (?, ?, ?, ?)`
	for _, entry := range entries {
		if _, err = tx.ExecContext(ctx, query, entry.Name, entry.Wins, entry.Losses, entry.Draws); err != nil {
			return fmt.Errorf("can't save entry %q: %w", entry.Name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit leaderboard: %w", err)
	}

	return nil
}

func (that *sqliteLeaderboard) Clear(ctx context.Context) error {
	if _, err := that.conn.ExecContext(ctx, `DELETE FROM leaderboard`); err != nil {
		return fmt.Errorf("can't clear leaderboard: %w", err)
	}

	return nil
}
