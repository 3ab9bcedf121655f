package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/fourinarow-backend/internal/apperror"
	"github.com/rocketscienceinc/fourinarow-backend/internal/config"
	"github.com/rocketscienceinc/fourinarow-backend/internal/entity"
)

type leaderboardRepo interface {
	SaveCompletedGame(ctx context.Context, game *entity.Game) error
	Top(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error)
}

type leaderboardCache interface {
	Get(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error)
	Set(ctx context.Context, limit int, entries []entity.LeaderboardEntry) error
	Invalidate(ctx context.Context) error
}

// LeaderboardService - records completed games in the background and serves the top players.
type LeaderboardService struct {
	logger      *slog.Logger
	repo        leaderboardRepo
	cache       leaderboardCache
	queue       chan *entity.Game
	saveTimeout time.Duration
}

func NewLeaderboardService(logger *slog.Logger, repo leaderboardRepo, cache leaderboardCache, conf config.Persistence) *LeaderboardService {
	return &LeaderboardService{
		logger:      logger.With("component", "leaderboard"),
		repo:        repo,
		cache:       cache,
		queue:       make(chan *entity.Game, conf.QueueSize),
		saveTimeout: conf.SaveTimeout,
	}
}

// Submit - never blocks the caller, the record is dropped when the queue is full.
func (that *LeaderboardService) Submit(game *entity.Game) {
	select {
	case that.queue <- game:
	default:
		that.logger.Error("game record dropped", "gameID", game.ID, "error", apperror.ErrQueueOverflow)
	}
}

// Run - persists submitted games until ctx is done, then drains what is left.
func (that *LeaderboardService) Run(ctx context.Context) {
	for {
		select {
		case game := <-that.queue:
			that.save(ctx, game)
		case <-ctx.Done():
			that.drain()
			return
		}
	}
}

func (that *LeaderboardService) drain() {
	for {
		select {
		case game := <-that.queue:
			that.save(context.Background(), game)
		default:
			return
		}
	}
}

func (that *LeaderboardService) save(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "save", "gameID", game.ID)

	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), that.saveTimeout)
	defer cancel()

	if err := that.repo.SaveCompletedGame(saveCtx, game); err != nil {
		log.Error("failed to save completed game", "error", err)
		return
	}

	if err := that.cache.Invalidate(saveCtx); err != nil {
		log.Warn("failed to invalidate leaderboard cache", "error", err)
	}

	log.Info("game saved")
}

// Top - read-through: cached entries first, the store on a miss.
func (that *LeaderboardService) Top(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error) {
	log := that.logger.With("method", "Top")

	entries, err := that.cache.Get(ctx, limit)
	if err == nil {
		return entries, nil
	}

	if !errors.Is(err, apperror.ErrNotFound) {
		log.Warn("leaderboard cache unavailable", "error", err)
	}

	entries, err = that.repo.Top(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	if err = that.cache.Set(ctx, limit, entries); err != nil {
		log.Warn("failed to cache leaderboard", "error", err)
	}

	return entries, nil
}
