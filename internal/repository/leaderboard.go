package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rocketscienceinc/fourinarow-backend/internal/apperror"
	"github.com/rocketscienceinc/fourinarow-backend/internal/entity"
)

const (
	upsertPlayerQuery = `
		INSERT INTO players (username, id, wins) VALUES ($1, $2, $3)
		ON CONFLICT (username) DO UPDATE SET wins = players.wins + EXCLUDED.wins, id = EXCLUDED.id`

	insertGameQuery = `
		INSERT INTO game_history (id, status, duration_ms, board_snapshot, is_bot_game, winner_id, player1_id, player2_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING`

	topPlayersQuery = `
		SELECT username, wins FROM players
		WHERE id <> $1 AND username <> $2
		ORDER BY wins DESC, created_at ASC
		LIMIT $3`
)

type LeaderboardRepository interface {
	SaveCompletedGame(ctx context.Context, game *entity.Game) error
	Top(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error)
}

type leaderboardRepository struct {
	conn *sqlx.DB
}

func NewLeaderboardRepository(conn *sqlx.DB) LeaderboardRepository {
	return &leaderboardRepository{
		conn: conn,
	}
}

// SaveCompletedGame - credits the winner and writes the history row in one transaction.
func (that *leaderboardRepository) SaveCompletedGame(ctx context.Context, game *entity.Game) error {
	if !game.IsFinished() {
		return fmt.Errorf("%w: %s", apperror.ErrGameNotEnded, game.ID)
	}

	board, err := json.Marshal(game.Board)
	if err != nil {
		return fmt.Errorf("could not marshal board: %w", err)
	}

	tx, err := that.conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, player := range game.Players {
		if player.IsBot() {
			continue
		}

		wins := 0
		if game.WinnerID != nil && *game.WinnerID == player.ID {
			wins = 1
		}

		if _, err = tx.ExecContext(ctx, upsertPlayerQuery, player.DisplayName, player.ID, wins); err != nil {
			return fmt.Errorf("can't save player %s: %w", player.DisplayName, err)
		}
	}

	duration := game.EndedAt.Sub(game.CreatedAt).Milliseconds()

	if _, err = tx.ExecContext(ctx, insertGameQuery,
		game.ID,
		string(game.Status),
		duration,
		string(board),
		game.IsBotGame,
		game.WinnerID,
		game.Players[0].ID,
		game.Players[1].ID,
	); err != nil {
		return fmt.Errorf("can't save game history: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit transaction: %w", err)
	}

	return nil
}

// Top - players ordered by wins, earlier registration first on ties, the bot excluded.
func (that *leaderboardRepository) Top(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error) {
	entries := []entity.LeaderboardEntry{}

	if err := that.conn.SelectContext(ctx, &entries, topPlayersQuery, entity.BotPlayerID, entity.BotPlayerName, limit); err != nil {
		return nil, fmt.Errorf("can't get leaderboard: %w", err)
	}

	return entries, nil
}
