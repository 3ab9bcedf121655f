package service

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/fourinarow-backend/internal/apperror"
	"github.com/rocketscienceinc/fourinarow-backend/internal/entity"
	"github.com/rocketscienceinc/fourinarow-backend/internal/pkg"
	"github.com/rocketscienceinc/fourinarow-backend/internal/scheduler"
)

func disconnectKey(gameID string) string { return "disconnect:" + gameID }
func botMoveKey(gameID string) string    { return "bot:" + gameID }
func gameEndKey(gameID string) string    { return "end:" + gameID }
func fallbackKey(playerID string) string { return "fallback:" + playerID }

// GameRegistry - in-memory store of active and recently ended games,
// indexed by game id, player id, connection id and display name.
type GameRegistry struct {
	logger *slog.Logger
	timers *scheduler.Scheduler

	mu           sync.RWMutex
	games        map[string]*entity.Game
	byPlayer     map[string]string
	byConnection map[string]string
	byName       map[string]string
}

func NewGameRegistry(logger *slog.Logger, timers *scheduler.Scheduler) *GameRegistry {
	return &GameRegistry{
		logger:       logger.With("component", "registry"),
		timers:       timers,
		games:        make(map[string]*entity.Game),
		byPlayer:     make(map[string]string),
		byConnection: make(map[string]string),
		byName:       make(map[string]string),
	}
}

// CreateGame - registers a new in-progress game, first moves first.
func (that *GameRegistry) CreateGame(first, second *entity.Player, isBotGame bool) *entity.Game {
	game := entity.NewGame(pkg.GenerateGameID(), first, second, isBotGame)

	that.mu.Lock()
	defer that.mu.Unlock()

	that.games[game.ID] = game
	for _, player := range game.Players {
		if player.IsBot() {
			continue
		}

		that.byPlayer[player.ID] = game.ID
		that.byConnection[player.ConnectionID] = game.ID
		that.byName[player.DisplayName] = game.ID
	}

	that.logger.Info("game created", "gameID", game.ID, "first", first.DisplayName, "second", second.DisplayName, "isBotGame", isBotGame)

	return game
}

func (that *GameRegistry) ByID(gameID string) (*entity.Game, bool) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	game, ok := that.games[gameID]
	return game, ok
}

func (that *GameRegistry) ByPlayer(playerID string) (*entity.Game, bool) {
	return that.lookup(that.byPlayer, playerID)
}

func (that *GameRegistry) ByConnection(connectionID string) (*entity.Game, bool) {
	return that.lookup(that.byConnection, connectionID)
}

func (that *GameRegistry) ByDisplayName(displayName string) (*entity.Game, bool) {
	return that.lookup(that.byName, displayName)
}

func (that *GameRegistry) lookup(index map[string]string, key string) (*entity.Game, bool) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	gameID, ok := index[key]
	if !ok {
		return nil, false
	}

	game, ok := that.games[gameID]
	return game, ok
}

// UpdateSocket - rebinds the player to a new connection, the old connection stops resolving.
func (that *GameRegistry) UpdateSocket(playerID, connectionID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	gameID, ok := that.byPlayer[playerID]
	if !ok {
		return fmt.Errorf("%w: player %s", apperror.ErrGameNotFound, playerID)
	}

	game, ok := that.games[gameID]
	if !ok {
		return fmt.Errorf("%w: game %s", apperror.ErrGameNotFound, gameID)
	}

	player := game.PlayerByID(playerID)
	if player == nil {
		return apperror.ErrUnknownPlayer
	}

	if that.byConnection[player.ConnectionID] == gameID {
		delete(that.byConnection, player.ConnectionID)
	}

	player.ConnectionID = connectionID
	that.byConnection[connectionID] = gameID

	return nil
}

// Retire - removes the game and every index entry that still points to it.
func (that *GameRegistry) Retire(gameID string) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.retireLocked(gameID)
}

// Sweep - retires ended games older than endedTTL and in-progress games older than maxAge.
func (that *GameRegistry) Sweep(now time.Time, endedTTL, maxAge time.Duration) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	var retired int
	for id, game := range that.games {
		expired := game.IsFinished() && now.Sub(game.EndedAt) >= endedTTL
		stale := game.IsOngoing() && maxAge > 0 && now.Sub(game.CreatedAt) >= maxAge

		if expired || stale {
			that.retireLocked(id)
			retired++
		}
	}

	if retired > 0 {
		that.logger.Info("games swept", "count", retired)
	}

	return retired
}

func (that *GameRegistry) Len() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.games)
}

func (that *GameRegistry) retireLocked(gameID string) bool {
	game, ok := that.games[gameID]
	if !ok {
		return false
	}

	that.timers.Cancel(disconnectKey(gameID))
	that.timers.Cancel(botMoveKey(gameID))

	for _, player := range game.Players {
		if player.IsBot() {
			continue
		}

		deleteIfOwned(that.byPlayer, player.ID, gameID)
		deleteIfOwned(that.byConnection, player.ConnectionID, gameID)
		deleteIfOwned(that.byName, player.DisplayName, gameID)
	}

	delete(that.games, gameID)

	that.logger.Debug("game retired", "gameID", gameID)

	return true
}

// deleteIfOwned - a newer game may already own the key.
func deleteIfOwned(index map[string]string, key, gameID string) {
	if index[key] == gameID {
		delete(index, key)
	}
}
