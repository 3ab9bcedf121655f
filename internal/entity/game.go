package entity

import (
	"fmt"
	"maps"
	"time"

	"github.com/rocketscienceinc/fourinarow-backend/internal/apperror"
	"github.com/rocketscienceinc/fourinarow-backend/internal/connect4"
)

type Status string

const (
	StatusWaiting    Status = "WAITING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusEnded      Status = "ENDED"
)

type Game struct {
	ID              string         `json:"id"`
	Board           connect4.Board `json:"board"`
	Players         [2]*Player     `json:"players"`
	CurrentPlayerID string         `json:"currentPlayerId"`
	Status          Status         `json:"status"`
	WinnerID        *string        `json:"winnerId"`
	CreatedAt       time.Time      `json:"createdAt"`
	IsBotGame       bool           `json:"isBotGame"`

	DisconnectDeadline   *time.Time `json:"disconnectDeadline,omitempty"`
	DisconnectedPlayerID string     `json:"-"`
	EndedAt              time.Time  `json:"-"`

	// ReconnectDeadlines - every disconnected human, keyed by player id.
	ReconnectDeadlines map[string]time.Time `json:"-"`
	// DisconnectToken - bumped each time the forfeit timer is armed.
	DisconnectToken uint64 `json:"-"`
}

// NewGame - first player always moves first and plays connect4.PlayerOne.
func NewGame(id string, first, second *Player, isBotGame bool) *Game {
	return &Game{
		ID:              id,
		Players:         [2]*Player{first, second},
		CurrentPlayerID: first.ID,
		Status:          StatusInProgress,
		CreatedAt:       time.Now(),
		IsBotGame:       isBotGame,
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusEnded
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusInProgress
}

func (that *Game) ConfirmOngoingState() error {
	switch that.Status {
	case StatusInProgress:
		return nil
	case StatusEnded:
		return apperror.ErrGameFinished
	default:
		return fmt.Errorf("unexpected game status: %s", that.Status)
	}
}

// PieceOf - returns the piece of the given player, seat 0 plays PlayerOne.
func (that *Game) PieceOf(playerID string) (connect4.Piece, bool) {
	switch {
	case that.Players[0] != nil && that.Players[0].ID == playerID:
		return connect4.PlayerOne, true
	case that.Players[1] != nil && that.Players[1].ID == playerID:
		return connect4.PlayerTwo, true
	default:
		return connect4.Empty, false
	}
}

func (that *Game) PlayerByID(playerID string) *Player {
	for _, player := range that.Players {
		if player != nil && player.ID == playerID {
			return player
		}
	}

	return nil
}

func (that *Game) PlayerByConnection(connectionID string) *Player {
	for _, player := range that.Players {
		if player != nil && player.ConnectionID == connectionID {
			return player
		}
	}

	return nil
}

func (that *Game) PlayerByName(displayName string) *Player {
	for _, player := range that.Players {
		if player != nil && player.DisplayName == displayName {
			return player
		}
	}

	return nil
}

// Opponent - returns the other participant of the game.
func (that *Game) Opponent(playerID string) *Player {
	for _, player := range that.Players {
		if player != nil && player.ID != playerID {
			return player
		}
	}

	return nil
}

func (that *Game) NextPlayerID() string {
	if that.Players[0].ID == that.CurrentPlayerID {
		return that.Players[1].ID
	}

	return that.Players[0].ID
}

func (that *Game) IsBotTurn() bool {
	return that.CurrentPlayerID == BotPlayerID
}

// Finish - moves the game into its terminal state, winnerID is empty on a draw.
func (that *Game) Finish(winnerID string) {
	that.Status = StatusEnded
	that.EndedAt = time.Now()
	that.DisconnectDeadline = nil
	that.DisconnectedPlayerID = ""
	that.ReconnectDeadlines = nil

	if winnerID != "" {
		that.WinnerID = &winnerID
	}
}

// MarkDisconnected - records when playerID has to be back, an earlier record is kept.
func (that *Game) MarkDisconnected(playerID string, deadline time.Time) {
	if that.ReconnectDeadlines == nil {
		that.ReconnectDeadlines = make(map[string]time.Time)
	}

	if _, ok := that.ReconnectDeadlines[playerID]; !ok {
		that.ReconnectDeadlines[playerID] = deadline
	}
}

func (that *Game) MarkReconnected(playerID string) {
	delete(that.ReconnectDeadlines, playerID)
}

func (that *Game) ReconnectDeadline(playerID string) (time.Time, bool) {
	deadline, ok := that.ReconnectDeadlines[playerID]
	return deadline, ok
}

// Clone - deep copy that is safe to hand to other goroutines.
func (that *Game) Clone() *Game {
	clone := *that

	for i, player := range that.Players {
		if player != nil {
			p := *player
			clone.Players[i] = &p
		}
	}

	if that.WinnerID != nil {
		winnerID := *that.WinnerID
		clone.WinnerID = &winnerID
	}

	if that.DisconnectDeadline != nil {
		deadline := *that.DisconnectDeadline
		clone.DisconnectDeadline = &deadline
	}

	clone.ReconnectDeadlines = maps.Clone(that.ReconnectDeadlines)

	return &clone
}
