package service

import (
	"testing"
	"time"

	"github.com/rocketscienceinc/fourinarow-backend/internal/apperror"
	"github.com/rocketscienceinc/fourinarow-backend/internal/entity"
	"github.com/rocketscienceinc/fourinarow-backend/internal/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) *GameRegistry {
	t.Helper()

	timers := scheduler.New()
	t.Cleanup(timers.Stop)

	return NewGameRegistry(discardLogger(), timers)
}

func TestGameRegistry_CreateGame(t *testing.T) {
	// Given: an empty registry
	registry := newTestRegistry(t)
	alice := newHumanPlayer("c-alice", "Alice")
	bob := newHumanPlayer("c-bob", "Bob")

	// When: a game is created
	game := registry.CreateGame(alice, bob, false)

	// Then: it is reachable through every index
	require.NotEmpty(t, game.ID)
	assert.Equal(t, alice.ID, game.CurrentPlayerID)

	for _, lookup := range []func() (*entity.Game, bool){
		func() (*entity.Game, bool) { return registry.ByID(game.ID) },
		func() (*entity.Game, bool) { return registry.ByPlayer("c-bob") },
		func() (*entity.Game, bool) { return registry.ByConnection("c-alice") },
		func() (*entity.Game, bool) { return registry.ByDisplayName("Bob") },
	} {
		found, ok := lookup()
		require.True(t, ok)
		assert.Same(t, game, found)
	}
}

func TestGameRegistry_BotIsNotIndexed(t *testing.T) {
	registry := newTestRegistry(t)

	registry.CreateGame(newHumanPlayer("c-alice", "Alice"), entity.NewBotPlayer(), true)

	_, ok := registry.ByDisplayName(entity.BotPlayerName)
	assert.False(t, ok)
	_, ok = registry.ByPlayer(entity.BotPlayerID)
	assert.False(t, ok)
}

func TestGameRegistry_UpdateSocket(t *testing.T) {
	t.Run("Rebinds the player to the new connection", func(t *testing.T) {
		// Given: a running game
		registry := newTestRegistry(t)
		game := registry.CreateGame(newHumanPlayer("c-alice", "Alice"), newHumanPlayer("c-bob", "Bob"), false)

		// When: Bob comes back on a new connection
		err := registry.UpdateSocket("c-bob", "c-bob-2")

		// Then: only the new connection resolves
		require.NoError(t, err)
		found, ok := registry.ByConnection("c-bob-2")
		require.True(t, ok)
		assert.Same(t, game, found)
		assert.Equal(t, "c-bob-2", game.PlayerByID("c-bob").ConnectionID)

		_, ok = registry.ByConnection("c-bob")
		assert.False(t, ok)
	})

	t.Run("Returns ErrGameNotFound for an unknown player", func(t *testing.T) {
		registry := newTestRegistry(t)

		err := registry.UpdateSocket("nobody", "c-1")

		assert.ErrorIs(t, err, apperror.ErrGameNotFound)
	})
}

func TestGameRegistry_Retire(t *testing.T) {
	t.Run("Removes the game and its indexes", func(t *testing.T) {
		registry := newTestRegistry(t)
		game := registry.CreateGame(newHumanPlayer("c-alice", "Alice"), newHumanPlayer("c-bob", "Bob"), false)

		assert.True(t, registry.Retire(game.ID))
		assert.False(t, registry.Retire(game.ID))

		_, ok := registry.ByDisplayName("Alice")
		assert.False(t, ok)
		assert.Equal(t, 0, registry.Len())
	})

	t.Run("Keeps index entries owned by a newer game", func(t *testing.T) {
		// Given: Alice finished one game and already plays a second one
		registry := newTestRegistry(t)
		oldGame := registry.CreateGame(newHumanPlayer("c-alice", "Alice"), newHumanPlayer("c-bob", "Bob"), false)
		oldGame.Finish("c-alice")
		newGame := registry.CreateGame(newHumanPlayer("c-alice", "Alice"), entity.NewBotPlayer(), true)

		// When: the old game is retired
		registry.Retire(oldGame.ID)

		// Then: Alice still resolves to the new game, Bob resolves to nothing
		found, ok := registry.ByDisplayName("Alice")
		require.True(t, ok)
		assert.Same(t, newGame, found)

		_, ok = registry.ByDisplayName("Bob")
		assert.False(t, ok)
	})

	t.Run("Cancels the pending disconnect timer", func(t *testing.T) {
		timers := scheduler.New()
		t.Cleanup(timers.Stop)
		registry := NewGameRegistry(discardLogger(), timers)
		game := registry.CreateGame(newHumanPlayer("c-alice", "Alice"), newHumanPlayer("c-bob", "Bob"), false)
		timers.Schedule(disconnectKey(game.ID), time.Hour, func() {})

		registry.Retire(game.ID)

		assert.False(t, timers.Pending(disconnectKey(game.ID)))
	})
}

func TestGameRegistry_Sweep(t *testing.T) {
	// Given: one fresh ended game, one old ended game and one ongoing game
	registry := newTestRegistry(t)
	now := time.Now()

	fresh := registry.CreateGame(newHumanPlayer("c-1", "One"), newHumanPlayer("c-2", "Two"), false)
	fresh.Finish("c-1")

	old := registry.CreateGame(newHumanPlayer("c-3", "Three"), newHumanPlayer("c-4", "Four"), false)
	old.Finish("")
	old.EndedAt = now.Add(-time.Hour)

	ongoing := registry.CreateGame(newHumanPlayer("c-5", "Five"), entity.NewBotPlayer(), true)

	// When
	retired := registry.Sweep(now, time.Minute, 24*time.Hour)

	// Then: only the expired game is gone
	assert.Equal(t, 1, retired)
	_, ok := registry.ByID(old.ID)
	assert.False(t, ok)
	_, ok = registry.ByID(fresh.ID)
	assert.True(t, ok)
	_, ok = registry.ByID(ongoing.ID)
	assert.True(t, ok)

	// And: games running for longer than the max age are dropped too
	ongoing.CreatedAt = now.Add(-48 * time.Hour)
	assert.Equal(t, 1, registry.Sweep(now, time.Minute, 24*time.Hour))
}
