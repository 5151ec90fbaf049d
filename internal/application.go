package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/tictactoe-cli/internal/config"
	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
	"github.com/rocketscienceinc/tictactoe-cli/internal/repository"
	"github.com/rocketscienceinc/tictactoe-cli/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-cli/internal/service"
	"github.com/rocketscienceinc/tictactoe-cli/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-cli/transport/console"
	"github.com/rocketscienceinc/tictactoe-cli/transport/rest"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	repo, closeRepo, err := newLeaderboardRepository(ctx, logger, conf)
	if err != nil {
		return err
	}
	defer closeRepo()

	leaderboard := usecase.NewLeaderboard(logger, repo)
	if err = leaderboard.Load(ctx); err != nil {
		return fmt.Errorf("could not load leaderboard: %w", err)
	}

	difficulty, err := entity.ParseDifficulty(conf.AI.DefaultDifficulty)
	if err != nil {
		return fmt.Errorf("invalid default difficulty: %w", err)
	}

	bot := service.NewBotService(newRandomizer(conf.AI.Seed), conf.AI.EasyRandomRate)
	gameManager := usecase.NewGameManager(logger, leaderboard, bot, conf.AI.Name)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	if conf.HTTPPort != "" {
		go func() {
			log.Info("Starting HTTP server", "port", conf.HTTPPort)
			if httpErr := rest.Start(ctx, conf.HTTPPort, rest.NewRouter(logger, leaderboard)); httpErr != nil {
				log.Error("HTTP server error", "error", httpErr)
				httpErrCh <- httpErr
			}
		}()
	}

	// run console
	consoleDone := make(chan error, 1)
	go func() {
		cli := console.New(logger, os.Stdin, os.Stdout, gameManager, leaderboard, difficulty)
		consoleDone <- cli.Run(ctx)
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-consoleDone:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("console error: %w", err)
		}
		log.Info("Console closed, shutting down")
		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

func newLeaderboardRepository(ctx context.Context, logger *slog.Logger, conf *config.Config) (repository.LeaderboardRepository, func(), error) {
	log := logger.With("component", "app")

	switch conf.Storage.Driver {
	case config.DriverRedis:
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		closeFn := func() {
			if err := redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}

		return repository.NewRedisLeaderboardRepository(logger, redisStorage.Connection, conf.Redis.Key), closeFn, nil

	case config.DriverSQLite:
		sqliteStorage, err := storage.NewSQLiteStorage(conf.Storage.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		closeFn := func() {
			if err := sqliteStorage.Close(); err != nil {
				log.Error("could not close sqlite storage", "error", err)
			}
		}

		if err = sqliteStorage.Init(ctx); err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("could not init sqlite storage: %w", err)
		}

		return repository.NewSQLiteLeaderboardRepository(logger, sqliteStorage.Connection), closeFn, nil

	default:
		return repository.NewFileLeaderboardRepository(logger, conf.Storage.FilePath), func() {}, nil
	}
}

// newRandomizer seeds from the clock when seed is zero.
func newRandomizer(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
