package entity

import "time"

// Move is a request to move one piece. Cell bounds are checked by the
// validator, after the game status.
type Move struct {
	ID        string    `json:"id"`
	GameID    string    `json:"game_id"`
	PlayerID  string    `json:"player_id"`
	Origin    int       `json:"origin"`
	Target    int       `json:"target"`
	CreatedAt time.Time `json:"created_at"`
}

func NewMove(id, gameID, playerID string, origin, target int) *Move {
	return &Move{
		ID:        id,
		GameID:    gameID,
		PlayerID:  playerID,
		Origin:    origin,
		Target:    target,
		CreatedAt: time.Now().UTC(),
	}
}
