package entity

// Player is the set of games a player takes part in, split by side.
type Player struct {
	ID           string   `json:"id"`
	GamesAsCat   []string `json:"games_as_cat,omitempty"`
	GamesAsMouse []string `json:"games_as_mouse,omitempty"`
}
