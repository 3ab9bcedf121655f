package connect4

import (
	"fmt"

	"github.com/rocketscienceinc/fourinarow-backend/internal/apperror"
)

const (
	Rows = 7
	Cols = 6

	// WinLength - number of consecutive pieces that wins the game.
	WinLength = 4
)

type Piece int

const (
	Empty     Piece = 0
	PlayerOne Piece = 1
	PlayerTwo Piece = 2
)

// Board - row 0 is the top of the grid, pieces fall towards row Rows-1.
type Board [Rows][Cols]Piece

// IsValidMove - checks that the column exists and still has capacity.
func IsValidMove(board Board, column int) bool {
	if column < 0 || column >= Cols {
		return false
	}

	return board[0][column] == Empty
}

// ApplyMove - drops piece into column and returns the new board and the row it landed on.
// The passed board is never modified.
func ApplyMove(board Board, column int, piece Piece) (Board, int, error) {
	if column < 0 || column >= Cols {
		return board, -1, fmt.Errorf("%w: column %d", apperror.ErrInvalidMove, column)
	}

	newBoard := board

	for row := Rows - 1; row >= 0; row-- {
		if newBoard[row][column] == Empty {
			newBoard[row][column] = piece
			return newBoard, row, nil
		}
	}

	return board, -1, fmt.Errorf("%w: column %d", apperror.ErrColumnFull, column)
}

// CheckWin - scans the whole row, column and both diagonals passing through (row, col).
func CheckWin(board Board, row, col int, piece Piece) bool {
	if row < 0 || row >= Rows || col < 0 || col >= Cols {
		return false
	}

	return checkHorizontal(board, row, piece) ||
		checkVertical(board, col, piece) ||
		checkDiagonalRising(board, row, col, piece) ||
		checkDiagonalFalling(board, row, col, piece)
}

// CheckDraw - the board is full when no column of the top row is empty.
func CheckDraw(board Board) bool {
	for col := 0; col < Cols; col++ {
		if board[0][col] == Empty {
			return false
		}
	}

	return true
}

// OpenColumns - returns columns that still accept a piece in ascending order.
func OpenColumns(board Board) []int {
	columns := make([]int, 0, Cols)
	for col := 0; col < Cols; col++ {
		if board[0][col] == Empty {
			columns = append(columns, col)
		}
	}

	return columns
}

func checkHorizontal(board Board, row int, piece Piece) bool {
	count := 0
	for col := 0; col < Cols; col++ {
		count = nextRun(count, board[row][col], piece)
		if count >= WinLength {
			return true
		}
	}

	return false
}

func checkVertical(board Board, col int, piece Piece) bool {
	count := 0
	for row := 0; row < Rows; row++ {
		count = nextRun(count, board[row][col], piece)
		if count >= WinLength {
			return true
		}
	}

	return false
}

// checkDiagonalRising - bottom-left to top-right.
func checkDiagonalRising(board Board, row, col int, piece Piece) bool {
	for row < Rows-1 && col > 0 {
		row++
		col--
	}

	count := 0
	for row >= 0 && col < Cols {
		count = nextRun(count, board[row][col], piece)
		if count >= WinLength {
			return true
		}

		row--
		col++
	}

	return false
}

// checkDiagonalFalling - top-left to bottom-right.
func checkDiagonalFalling(board Board, row, col int, piece Piece) bool {
	for row > 0 && col > 0 {
		row--
		col--
	}

	count := 0
	for row < Rows && col < Cols {
		count = nextRun(count, board[row][col], piece)
		if count >= WinLength {
			return true
		}

		row++
		col++
	}

	return false
}

func nextRun(count int, cell, piece Piece) int {
	if cell == piece {
		return count + 1
	}

	return 0
}
