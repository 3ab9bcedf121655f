package service

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/rocketscienceinc/fourinarow-backend/internal/apperror"
	"github.com/rocketscienceinc/fourinarow-backend/internal/connect4"
	"github.com/rocketscienceinc/fourinarow-backend/internal/entity"
)

type BotService interface {
	ChooseMove(game *entity.Game) (int, error)
}

type botService struct {
	logger    *slog.Logger
	preferred []int
}

func NewBotService(logger *slog.Logger) BotService {
	return &botService{
		logger:    logger.With("component", "bot"),
		preferred: preferredColumns(connect4.Cols),
	}
}

// ChooseMove - one-ply lookahead: win, then block, then closest to the center.
func (that *botService) ChooseMove(game *entity.Game) (int, error) {
	log := that.logger.With("method", "ChooseMove", "gameID", game.ID)

	botPiece, ok := game.PieceOf(entity.BotPlayerID)
	if !ok {
		return -1, fmt.Errorf("%w: bot is not seated in game %s", apperror.ErrUnknownPlayer, game.ID)
	}

	opponentPiece := connect4.PlayerOne
	if botPiece == connect4.PlayerOne {
		opponentPiece = connect4.PlayerTwo
	}

	openColumns := connect4.OpenColumns(game.Board)
	if len(openColumns) == 0 {
		return -1, apperror.ErrNoValidMove
	}

	if column, found := findWinningMove(game.Board, openColumns, botPiece); found {
		log.Debug("winning move found", "column", column)
		return column, nil
	}

	if column, found := findWinningMove(game.Board, openColumns, opponentPiece); found {
		log.Debug("blocking move found", "column", column)
		return column, nil
	}

	for _, column := range that.preferred {
		if connect4.IsValidMove(game.Board, column) {
			log.Debug("preferred move chosen", "column", column)
			return column, nil
		}
	}

	log.Warn("fallback to random move")

	return openColumns[rand.Intn(len(openColumns))], nil //nolint: gosec // it's ok
}

// findWinningMove - first column in ascending order where piece completes a line.
func findWinningMove(board connect4.Board, columns []int, piece connect4.Piece) (int, bool) {
	for _, column := range columns {
		newBoard, row, err := connect4.ApplyMove(board, column, piece)
		if err != nil {
			continue
		}

		if connect4.CheckWin(newBoard, row, column, piece) {
			return column, true
		}
	}

	return -1, false
}

// preferredColumns - center first, then alternating outwards.
func preferredColumns(cols int) []int {
	center := cols / 2
	order := []int{center}

	for offset := 1; offset < cols; offset++ {
		if center-offset >= 0 {
			order = append(order, center-offset)
		}
		if center+offset < cols {
			order = append(order, center+offset)
		}
	}

	return order
}
