package entity

const (
	BotPlayerID   = "COMPETITIVE_BOT"
	BotPlayerName = "CompetitiveBot"
)

type Player struct {
	ID           string `json:"id"`
	DisplayName  string `json:"displayName"`
	ConnectionID string `json:"connectionId"`
}

// NewBotPlayer - synthetic identity of the heuristic opponent, it never owns a real connection.
func NewBotPlayer() *Player {
	return &Player{
		ID:           BotPlayerID,
		DisplayName:  BotPlayerName,
		ConnectionID: BotPlayerID,
	}
}

func (that *Player) IsBot() bool {
	return that.ID == BotPlayerID
}

type LeaderboardEntry struct {
	DisplayName string `json:"displayName" db:"username"`
	Wins        int    `json:"wins" db:"wins"`
}
