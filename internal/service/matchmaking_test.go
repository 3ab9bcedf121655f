package service

import (
	"sync"
	"testing"
	"time"

	"github.com/rocketscienceinc/fourinarow-backend/internal/apperror"
	"github.com/rocketscienceinc/fourinarow-backend/internal/entity"
	"github.com/rocketscienceinc/fourinarow-backend/internal/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

func newTestQueue(t *testing.T, timeout time.Duration) (*MatchmakingQueue, *GameRegistry) {
	t.Helper()

	timers := scheduler.New()
	t.Cleanup(timers.Stop)

	registry := NewGameRegistry(discardLogger(), timers)

	return NewMatchmakingQueue(discardLogger(), registry, timers, timeout), registry
}

func TestMatchmakingQueue_Enqueue(t *testing.T) {
	t.Run("First player waits", func(t *testing.T) {
		queue, _ := newTestQueue(t, time.Hour)

		result, err := queue.Enqueue(newHumanPlayer("c-bob", "Bob"))

		require.NoError(t, err)
		assert.Nil(t, result)
		assert.True(t, queue.IsWaiting("c-bob"))
	})

	t.Run("Second player is paired and moves first", func(t *testing.T) {
		// Given: Bob is waiting
		queue, registry := newTestQueue(t, time.Hour)
		_, err := queue.Enqueue(newHumanPlayer("c-bob", "Bob"))
		require.NoError(t, err)

		// When: Alice arrives
		result, err := queue.Enqueue(newHumanPlayer("c-alice", "Alice"))

		// Then: a human game starts with Alice to move
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, "c-bob", result.OpponentConnectionID)
		assert.Equal(t, "c-alice", result.Game.CurrentPlayerID)
		assert.False(t, result.Game.IsBotGame)
		assert.Equal(t, 0, queue.Len())
		assert.Equal(t, 1, registry.Len())
	})

	t.Run("Rejects a display name that is already waiting", func(t *testing.T) {
		queue, _ := newTestQueue(t, time.Hour)
		_, err := queue.Enqueue(newHumanPlayer("c-1", "Alice"))
		require.NoError(t, err)

		_, err = queue.Enqueue(newHumanPlayer("c-2", "Alice"))

		assert.ErrorIs(t, err, apperror.ErrAlreadyQueued)
		assert.Equal(t, 1, queue.Len())
	})
}

func TestMatchmakingQueue_BotFallback(t *testing.T) {
	t.Run("Lonely player gets a bot game after the timeout", func(t *testing.T) {
		// Given: a short matchmaking timeout
		queue, _ := newTestQueue(t, 20*time.Millisecond)

		var (
			mu      sync.Mutex
			started *entity.Game
		)
		queue.OnBotGame(func(game *entity.Game) {
			mu.Lock()
			defer mu.Unlock()
			started = game
		})

		// When: Alice waits alone
		_, err := queue.Enqueue(newHumanPlayer("c-alice", "Alice"))
		require.NoError(t, err)

		// Then: a bot game is started with Alice to move
		require.Eventually(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return started != nil
		}, waitFor, tick)

		mu.Lock()
		defer mu.Unlock()
		assert.True(t, started.IsBotGame)
		assert.Equal(t, "c-alice", started.CurrentPlayerID)
		assert.Equal(t, entity.BotPlayerID, started.Players[1].ID)
		assert.False(t, queue.IsWaiting("c-alice"))
	})

	t.Run("Dequeued player never gets a bot game", func(t *testing.T) {
		queue, registry := newTestQueue(t, 20*time.Millisecond)
		_, err := queue.Enqueue(newHumanPlayer("c-alice", "Alice"))
		require.NoError(t, err)

		assert.True(t, queue.Dequeue("c-alice"))

		time.Sleep(60 * time.Millisecond)
		assert.Equal(t, 0, registry.Len())
	})

	t.Run("Paired player never gets a bot game", func(t *testing.T) {
		queue, registry := newTestQueue(t, 20*time.Millisecond)
		_, err := queue.Enqueue(newHumanPlayer("c-bob", "Bob"))
		require.NoError(t, err)
		_, err = queue.Enqueue(newHumanPlayer("c-alice", "Alice"))
		require.NoError(t, err)

		time.Sleep(60 * time.Millisecond)
		assert.Equal(t, 1, registry.Len())
	})
}
