package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/mousecat-backend/internal/config"
	"github.com/rocketscienceinc/mousecat-backend/internal/mousecat"
	"github.com/rocketscienceinc/mousecat-backend/internal/repository"
	"github.com/rocketscienceinc/mousecat-backend/internal/repository/storage"
	"github.com/rocketscienceinc/mousecat-backend/internal/service"
	"github.com/rocketscienceinc/mousecat-backend/transport/rest"
)

var (
	ErrAddrNotFound          = errors.New("redis address string is empty")
	ErrUnknownHistoryBackend = errors.New("unknown history backend")
)

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

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	moveRepo, closeHistory, err := newMoveRepository(ctx, conf, redisStorage)
	if err != nil {
		return err
	}
	defer closeHistory()

	gameRepo := repository.NewGameRepository(redisStorage.Connection)
	playerRepo := repository.NewPlayerRepository(redisStorage.Connection)
	counterRepo := repository.NewCounterRepository(redisStorage.Connection)

	engine := mousecat.NewEngine(mousecat.Rules{
		EnforceTurns:   conf.Rules.EnforceTurns,
		RejectOccupied: conf.Rules.RejectOccupied,
	}, nil)

	gameService := service.NewGameService(gameRepo, playerRepo, moveRepo)
	gamePlayService := service.NewGamePlayService(logger, engine, gameRepo, playerRepo, moveRepo)
	counterService := service.NewCounterService(counterRepo)

	server := rest.New(logger, gameService, gamePlayService, counterService)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort, "rules", conf.Rules)
		if httpErr := server.Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

func newMoveRepository(ctx context.Context, conf *config.Config, redisStorage *storage.RedisStorage) (repository.MoveRepository, func(), error) {
	switch conf.HistoryBackend {
	case config.HistoryBackendRedis:
		return repository.NewRedisMoveRepository(redisStorage.Connection), func() {}, nil
	case config.HistoryBackendSQLite:
		sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLiteStoragePath)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		if err = sqliteStorage.Init(ctx); err != nil {
			_ = sqliteStorage.Close()
			return nil, nil, fmt.Errorf("could not init sqlite storage: %w", err)
		}

		return repository.NewSQLMoveRepository(sqliteStorage.Connection), func() { _ = sqliteStorage.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownHistoryBackend, conf.HistoryBackend)
	}
}
