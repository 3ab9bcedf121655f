package service

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/fourinarow-backend/internal/apperror"
	"github.com/rocketscienceinc/fourinarow-backend/internal/entity"
	"github.com/rocketscienceinc/fourinarow-backend/internal/scheduler"
)

type gameCreator interface {
	CreateGame(first, second *entity.Player, isBotGame bool) *entity.Game
}

// MatchResult - a freshly paired human game.
type MatchResult struct {
	Game                 *entity.Game
	OpponentConnectionID string
}

// MatchmakingQueue - FIFO of players waiting for a human opponent.
// A player left alone for longer than the timeout is paired with the bot.
type MatchmakingQueue struct {
	logger  *slog.Logger
	games   gameCreator
	timers  *scheduler.Scheduler
	timeout time.Duration

	mu        sync.Mutex
	waiting   []*entity.Player
	onBotGame func(game *entity.Game)
}

func NewMatchmakingQueue(logger *slog.Logger, games gameCreator, timers *scheduler.Scheduler, timeout time.Duration) *MatchmakingQueue {
	return &MatchmakingQueue{
		logger:  logger.With("component", "matchmaking"),
		games:   games,
		timers:  timers,
		timeout: timeout,
	}
}

// OnBotGame - registers the callback invoked after a fallback bot game is created.
func (that *MatchmakingQueue) OnBotGame(fn func(game *entity.Game)) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.onBotGame = fn
}

// Enqueue - pairs the player with the longest waiting one, or queues them.
// A nil result means the player is waiting.
func (that *MatchmakingQueue) Enqueue(player *entity.Player) (*MatchResult, error) {
	log := that.logger.With("method", "Enqueue", "playerID", player.ID)

	that.mu.Lock()

	for _, waiting := range that.waiting {
		if waiting.ID == player.ID || waiting.DisplayName == player.DisplayName {
			that.mu.Unlock()
			return nil, fmt.Errorf("%w: %s", apperror.ErrAlreadyQueued, player.DisplayName)
		}
	}

	if len(that.waiting) == 0 {
		that.waiting = append(that.waiting, player)
		that.timers.Schedule(fallbackKey(player.ID), that.timeout, func() {
			that.startBotGame(player.ID)
		})
		that.mu.Unlock()

		log.Info("player queued", "displayName", player.DisplayName)
		return nil, nil
	}

	opponent := that.waiting[0]
	that.waiting = that.waiting[1:]
	that.timers.Cancel(fallbackKey(opponent.ID))
	that.mu.Unlock()

	game := that.games.CreateGame(player, opponent, false)

	log.Info("players matched", "gameID", game.ID, "opponent", opponent.DisplayName)

	return &MatchResult{
		Game:                 game,
		OpponentConnectionID: opponent.ConnectionID,
	}, nil
}

// Dequeue - removes the player and disarms their fallback timer.
func (that *MatchmakingQueue) Dequeue(playerID string) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.timers.Cancel(fallbackKey(playerID))

	return that.removeLocked(playerID) != nil
}

func (that *MatchmakingQueue) IsWaiting(playerID string) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	for _, waiting := range that.waiting {
		if waiting.ID == playerID {
			return true
		}
	}

	return false
}

func (that *MatchmakingQueue) Len() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.waiting)
}

func (that *MatchmakingQueue) startBotGame(playerID string) {
	log := that.logger.With("method", "startBotGame", "playerID", playerID)

	that.mu.Lock()
	player := that.removeLocked(playerID)
	onBotGame := that.onBotGame
	that.mu.Unlock()

	if player == nil {
		log.Debug("player already left the queue")
		return
	}

	game := that.games.CreateGame(player, entity.NewBotPlayer(), true)

	log.Info("no opponent found, starting bot game", "gameID", game.ID)

	if onBotGame != nil {
		onBotGame(game)
	}
}

func (that *MatchmakingQueue) removeLocked(playerID string) *entity.Player {
	for i, waiting := range that.waiting {
		if waiting.ID == playerID {
			that.waiting = append(that.waiting[:i], that.waiting[i+1:]...)
			return waiting
		}
	}

	return nil
}
