package service

import (
	"io"
	"log/slog"
	"testing"

	"github.com/rocketscienceinc/fourinarow-backend/internal/apperror"
	"github.com/rocketscienceinc/fourinarow-backend/internal/connect4"
	"github.com/rocketscienceinc/fourinarow-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newBotGame() *entity.Game {
	human := &entity.Player{ID: "human", DisplayName: "Alice", ConnectionID: "human"}

	return entity.NewGame("bot-game", human, entity.NewBotPlayer(), true)
}

func TestBotService_ChooseMove(t *testing.T) {
	bot := NewBotService(discardLogger())

	t.Run("Prefers its own win over blocking", func(t *testing.T) {
		// Given: the bot has three on the bottom row and the human threatens column 5
		game := newBotGame()
		game.Board[6][0] = connect4.PlayerTwo
		game.Board[6][1] = connect4.PlayerTwo
		game.Board[6][2] = connect4.PlayerTwo
		game.Board[6][5] = connect4.PlayerOne
		game.Board[5][5] = connect4.PlayerOne
		game.Board[4][5] = connect4.PlayerOne

		// When
		column, err := bot.ChooseMove(game)

		// Then: it completes its own line
		require.NoError(t, err)
		assert.Equal(t, 3, column)
	})

	t.Run("Blocks the opponent's immediate win", func(t *testing.T) {
		// Given: the human has three stacked in column 2
		game := newBotGame()
		game.Board[6][2] = connect4.PlayerOne
		game.Board[5][2] = connect4.PlayerOne
		game.Board[4][2] = connect4.PlayerOne
		game.Board[6][0] = connect4.PlayerTwo
		game.Board[6][5] = connect4.PlayerTwo

		// When
		column, err := bot.ChooseMove(game)

		// Then
		require.NoError(t, err)
		assert.Equal(t, 2, column)
	})

	t.Run("Plays the center on an empty board", func(t *testing.T) {
		column, err := bot.ChooseMove(newBotGame())

		require.NoError(t, err)
		assert.Equal(t, 3, column)
	})

	t.Run("Falls back to the next preferred column when the center is full", func(t *testing.T) {
		// Given: column 3 is filled with alternating pieces
		game := newBotGame()
		for row := 0; row < connect4.Rows; row++ {
			game.Board[row][3] = connect4.Piece(row%2 + 1)
		}

		// When
		column, err := bot.ChooseMove(game)

		// Then
		require.NoError(t, err)
		assert.Equal(t, 2, column)
	})

	t.Run("Returns ErrNoValidMove on a full board", func(t *testing.T) {
		game := newBotGame()
		a := [connect4.Cols]connect4.Piece{1, 1, 2, 2, 1, 1}
		b := [connect4.Cols]connect4.Piece{2, 2, 1, 1, 2, 2}
		game.Board = connect4.Board{a, a, a, b, a, a, a}

		_, err := bot.ChooseMove(game)

		assert.ErrorIs(t, err, apperror.ErrNoValidMove)
	})

	t.Run("Returns ErrUnknownPlayer when the bot is not seated", func(t *testing.T) {
		alice := &entity.Player{ID: "a", DisplayName: "Alice"}
		bob := &entity.Player{ID: "b", DisplayName: "Bob"}

		_, err := bot.ChooseMove(entity.NewGame("g", alice, bob, false))

		assert.ErrorIs(t, err, apperror.ErrUnknownPlayer)
	})
}

func TestPreferredColumns(t *testing.T) {
	assert.Equal(t, []int{3, 2, 4, 1, 5, 0}, preferredColumns(6))
	assert.Equal(t, []int{3, 2, 4, 1, 5, 0, 6}, preferredColumns(7))
}
