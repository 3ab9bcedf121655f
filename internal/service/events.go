package service

import "github.com/rocketscienceinc/fourinarow-backend/internal/entity"

// Outbound event names.
const (
	EventWaitingForOpponent = "waiting_for_opponent"
	EventGameUpdate         = "game_update"
	EventGameEnd            = "game_end"
	EventGameRejoined       = "game_rejoined"
	EventPlayerDisconnected = "player_disconnected"
	EventPlayerReconnected  = "player_reconnected"
	EventGameForfeit        = "game_forfeit"
	EventRejoinFailed       = "rejoin_failed"
	EventMoveRejected       = "move_rejected"
	EventLeaderboardUpdate  = "leaderboard_update"
	EventError              = "error"
)

// Notifier - delivers events to connections and to per-game rooms.
type Notifier interface {
	Send(connectionID, event string, payload any)
	Broadcast(room, event string, payload any)
	Join(connectionID, room string)
}

type WaitingPayload struct {
	Message   string `json:"message"`
	TimeoutMs int64  `json:"timeoutMs"`
}

type PlayerDisconnectedPayload struct {
	DisplayName     string `json:"displayName"`
	ReconnectTimeMs int64  `json:"reconnectTimeMs"`
	Message         string `json:"message"`
}

type PlayerReconnectedPayload struct {
	DisplayName string `json:"displayName"`
}

type ForfeitPayload struct {
	GameID               string `json:"gameId"`
	WinnerID             string `json:"winnerId"`
	ForfeitedDisplayName string `json:"forfeitedDisplayName"`
	Message              string `json:"message"`
}

type LeaderboardPayload struct {
	Entries []entity.LeaderboardEntry `json:"entries"`
}

// MessagePayload - body of error, move_rejected and rejoin_failed.
type MessagePayload struct {
	Message string `json:"message"`
}
