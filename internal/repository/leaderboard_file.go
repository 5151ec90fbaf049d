package repository

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
	"github.com/rocketscienceinc/tictactoe-cli/internal/pkg"
)

const (
	fileRecordFields = 4
	maxRecordLength  = 4 << 10
)

// fileLeaderboard keeps one CSV record per line: name,wins,losses,draws.
// Names with commas, quotes or surrounding spaces are quoted by the csv writer.
type fileLeaderboard struct {
	logger *slog.Logger
	path   string
}

func NewFileLeaderboardRepository(logger *slog.Logger, path string) LeaderboardRepository {
	return &fileLeaderboard{
		logger: logger.With("component", "file_leaderboard", "path", path),
		path:   path,
	}
}

func (that *fileLeaderboard) LoadAll(_ context.Context) ([]entity.LeaderboardEntry, error) {
	log := that.logger.With("method", "LoadAll")

	file, err := os.Open(that.path)
	if errors.Is(err, os.ErrNotExist) {
		log.Info("leaderboard file does not exist yet")
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to open leaderboard file: %w", err)
	}
	defer file.Close()

	var entries []entity.LeaderboardEntry

	reader := bufio.NewReader(file)
	for lineNo := 1; ; lineNo++ {
		line, err := pkg.ReadLine(reader, maxRecordLength)
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil && !errors.Is(err, pkg.ErrLineTooLong) {
			return entries, fmt.Errorf("failed to read leaderboard file: %w", err)
		}

		if err == nil && strings.TrimSpace(line) == "" {
			continue
		}

		var entry entity.LeaderboardEntry
		if err == nil {
			entry, err = parseRecord(line)
		}

		if err != nil {
			log.Warn("skipping leaderboard record", "error", &apperror.ParseError{Line: lineNo, Err: err})
			continue
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

func (that *fileLeaderboard) SaveAll(_ context.Context, entries []entity.LeaderboardEntry) error {
	var buf bytes.Buffer

	writer := csv.NewWriter(&buf)
	for _, entry := range entries {
		if err := writer.Write(formatRecord(entry)); err != nil {
			return fmt.Errorf("failed to encode entry %q: %w", entry.Name, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to encode leaderboard: %w", err)
	}

	// write next to the target and rename, so a failed write never truncates the old file
	tmp, err := os.CreateTemp(filepath.Dir(that.path), filepath.Base(that.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err = tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write leaderboard: %w", err)
	}

	if err = tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err = os.Rename(tmp.Name(), that.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace leaderboard file: %w", err)
	}

	return nil
}

func (that *fileLeaderboard) Clear(_ context.Context) error {
	if err := os.Remove(that.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove leaderboard file: %w", err)
	}

	return nil
}

// parseRecord decodes a single line. Each line is read on its own so a broken
// quote cannot consume the records that follow it.
func parseRecord(line string) (entity.LeaderboardEntry, error) {
	reader := csv.NewReader(strings.NewReader(line))
	reader.FieldsPerRecord = fileRecordFields

	fields, err := reader.Read()
	if err != nil {
		return entity.LeaderboardEntry{}, fmt.Errorf("invalid record: %w", err)
	}

	counts := make([]int, 0, fileRecordFields-1)
	for _, field := range fields[1:] {
		n, err := strconv.Atoi(field)
		if err != nil {
			return entity.LeaderboardEntry{}, fmt.Errorf("invalid counter %q: %w", field, err)
		}

		counts = append(counts, n)
	}

	entry := entity.LeaderboardEntry{
		Name:   fields[0],
		Wins:   counts[0],
		Losses: counts[1],
		Draws:  counts[2],
	}

	if err = entry.Validate(); err != nil {
		return entity.LeaderboardEntry{}, err
	}

	return entry, nil
}

func formatRecord(entry entity.LeaderboardEntry) []string {
	return []string{
		entry.Name,
		strconv.Itoa(entry.Wins),
		strconv.Itoa(entry.Losses),
		strconv.Itoa(entry.Draws),
	}
}
