package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/fourinarow-backend/internal/config"
	"github.com/rocketscienceinc/fourinarow-backend/internal/repository"
	"github.com/rocketscienceinc/fourinarow-backend/internal/repository/storage"
	"github.com/rocketscienceinc/fourinarow-backend/internal/scheduler"
	"github.com/rocketscienceinc/fourinarow-backend/internal/service"
	"github.com/rocketscienceinc/fourinarow-backend/internal/transport/rest"
	"github.com/rocketscienceinc/fourinarow-backend/internal/transport/websocket"
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

	postgresStorage, err := storage.NewPostgresStorage(ctx, conf.Postgres.GetDSN())
	if err != nil {
		return fmt.Errorf("could not connect to postgres storage: %w", err)
	}

	defer func() {
		if err = postgresStorage.Close(); err != nil {
			log.Error("could not close postgres storage", "error", err)
		}
	}()

	if err = postgresStorage.Init(ctx); err != nil {
		return fmt.Errorf("could not init postgres storage: %w", err)
	}

	leaderboardRepo := repository.NewLeaderboardRepository(postgresStorage.Connection)
	leaderboardCache := repository.NewLeaderboardCache(redisStorage, conf.Redis.CacheTTL)
	leaderboardService := service.NewLeaderboardService(logger, leaderboardRepo, leaderboardCache, conf.Persistence)

	timers := scheduler.New()
	registry := service.NewGameRegistry(logger, timers)
	queue := service.NewMatchmakingQueue(logger, registry, timers, conf.Game.MatchmakingTimeout)
	hub := websocket.NewHub(logger)

	gamePlayService := service.NewGamePlayService(
		logger,
		conf.Game,
		registry,
		queue,
		timers,
		service.NewBotService(logger),
		hub,
		leaderboardService,
		leaderboardService,
	)

	persistenceDone := make(chan struct{})
	go func() {
		defer close(persistenceDone)
		leaderboardService.Run(ctx)
	}()

	go gamePlayService.Run(ctx)

	wsServer := websocket.New(logger, hub, gamePlayService)
	router := rest.NewRouter(rest.NewHandlers(logger, leaderboardService, conf.Game.LeaderboardSize), wsServer)

	log.Info("Starting HTTP server", "port", conf.HTTPPort)

	if err = rest.Start(ctx, logger, conf.HTTPPort, router); err != nil {
		cancel()
		<-persistenceDone
		return fmt.Errorf("HTTP server error: %w", err)
	}

	<-persistenceDone
	log.Info("Application context canceled, shutting down")

	return nil
}
