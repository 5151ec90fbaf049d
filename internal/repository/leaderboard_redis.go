package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
)

const DefaultLeaderboardKey = "leaderboard"

// redisLeaderboard stores the leaderboard as one hash: field is the player name,
// value is the JSON encoded entry.
type redisLeaderboard struct {
	logger *slog.Logger
	client *redis.Client
	key    string
}

func NewRedisLeaderboardRepository(logger *slog.Logger, client *redis.Client, key string) LeaderboardRepository {
	if key == "" {
		key = DefaultLeaderboardKey
	}

	return &redisLeaderboard{
		logger: logger.With("component", "redis_leaderboard", "key", key),
		client: client,
		key:    key,
	}
}

func (that *redisLeaderboard) LoadAll(ctx context.Context) ([]entity.LeaderboardEntry, error) {
	log := that.logger.With("method", "LoadAll")

	response, err := that.client.HGetAll(ctx, that.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	entries := make([]entity.LeaderboardEntry, 0, len(response))
	for name, value := range response {
		var entry entity.LeaderboardEntry
		if err = json.Unmarshal([]byte(value), &entry); err != nil {
			log.Warn("skipping leaderboard record", "name", name, "error", &apperror.ParseError{Err: err})
			continue
		}

		entry.Name = name
		if err = entry.Validate(); err != nil {
			log.Warn("skipping leaderboard record", "name", name, "error", &apperror.ParseError{Err: err})
			continue
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

func (that *redisLeaderboard) SaveAll(ctx context.Context, entries []entity.LeaderboardEntry) error {
	values := make(map[string]any, len(entries))
	for _, entry := range entries {
		entryJSON, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("failed to marshal entry: %w", err)
		}

		values[entry.Name] = entryJSON
	}

	_, err := that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, that.key)
		if len(values) > 0 {
			pipe.HSet(ctx, that.key, values)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save leaderboard: %w", err)
	}

	return nil
}

func (that *redisLeaderboard) Clear(ctx context.Context) error {
	if err := that.client.Del(ctx, that.key).Err(); err != nil {
		return fmt.Errorf("failed to clear leaderboard: %w", err)
	}

	return nil
}
