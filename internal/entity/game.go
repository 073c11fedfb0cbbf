package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/mousecat-backend/internal/apperror"
)

type Status int

const (
	StatusCreated Status = iota
	StatusActive
	StatusFinished
)

func (s Status) String() string {
	switch s {
	case StatusCreated:
		return "Created"
	case StatusActive:
		return "Active"
	case StatusFinished:
		return "Finished"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

type Role int

const (
	RoleNone Role = iota
	RoleCat
	RoleMouse
)

func (r Role) String() string {
	switch r {
	case RoleCat:
		return "cat"
	case RoleMouse:
		return "mouse"
	default:
		return "none"
	}
}

const (
	CatCount = 4

	MarkerMouse = -1
	MarkerEmpty = 0
	MarkerCat   = 1
)

var (
	DefaultCats  = [CatCount]int{0, 2, 4, 6}
	DefaultMouse = 59
)

type Game struct {
	ID          string        `json:"id"`
	CatPlayer   string        `json:"cat_player"`
	MousePlayer string        `json:"mouse_player,omitempty"`
	Cats        [CatCount]int `json:"cats"`
	Mouse       int           `json:"mouse"`
	CatTurn     bool          `json:"cat_turn"`
	Status      Status        `json:"status"`
}

// NewGame creates a game owned by catPlayer with the pieces in their starting cells.
func NewGame(id, catPlayer string) (*Game, error) {
	game := &Game{
		ID:        id,
		CatPlayer: catPlayer,
		Cats:      DefaultCats,
		Mouse:     DefaultMouse,
		CatTurn:   true,
		Status:    StatusCreated,
	}

	if err := game.validatePositions(); err != nil {
		return nil, err
	}

	return game, nil
}

// Validate checks every invariant that must hold before the game is stored.
func (that *Game) Validate() error {
	if err := that.validatePositions(); err != nil {
		return err
	}

	return that.validateStatus()
}

func (that *Game) validatePositions() error {
	for i, cat := range that.Cats {
		if !IsPlayableCell(cat) {
			return fmt.Errorf("%w: cat %d at %d", apperror.ErrInvalidCell, i+1, cat)
		}
	}

	if !IsPlayableCell(that.Mouse) {
		return fmt.Errorf("%w: mouse at %d", apperror.ErrInvalidCell, that.Mouse)
	}

	return nil
}

func (that *Game) validateStatus() error {
	switch that.Status {
	case StatusCreated:
		if that.HasMousePlayer() {
			return fmt.Errorf("%w: created game already has a mouse player", apperror.ErrInvalidStatus)
		}
	case StatusActive, StatusFinished:
		if !that.HasMousePlayer() {
			return fmt.Errorf("%w: %s game has no mouse player", apperror.ErrInvalidStatus, that.Status)
		}
	default:
		return fmt.Errorf("%w: unknown status %d", apperror.ErrInvalidStatus, int(that.Status))
	}

	return nil
}

func (that *Game) HasMousePlayer() bool {
	return that.MousePlayer != ""
}

func (that *Game) IsCreated() bool {
	return that.Status == StatusCreated
}

func (that *Game) IsActive() bool {
	return that.Status == StatusActive
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

// RoleOf resolves which side, if any, the player controls in this game.
func (that *Game) RoleOf(player string) Role {
	switch {
	case player == "":
		return RoleNone
	case player == that.CatPlayer:
		return RoleCat
	case player == that.MousePlayer:
		return RoleMouse
	default:
		return RoleNone
	}
}

// AttachMousePlayer seats the second player and activates the game.
func (that *Game) AttachMousePlayer(player string) error {
	if !that.IsCreated() || that.HasMousePlayer() {
		return fmt.Errorf("%w: cannot join a %s game", apperror.ErrInvalidStatus, that.Status)
	}

	if player == "" {
		return fmt.Errorf("%w: empty mouse player", apperror.ErrInvalidStatus)
	}

	that.MousePlayer = player
	that.Status = StatusActive

	return nil
}

// ApplyMove moves the acting player's piece from move.Origin to move.Target.
// Legality must be checked beforehand; this only re-checks board positions.
// The turn flag is left untouched.
func (that *Game) ApplyMove(move *Move) error {
	cats, mouse := that.Cats, that.Mouse

	switch that.RoleOf(move.PlayerID) {
	case RoleCat:
		idx := that.CatAt(move.Origin)
		if idx < 0 {
			return fmt.Errorf("%w: no cat at %d", apperror.ErrIllegalMove, move.Origin)
		}
		cats[idx] = move.Target
	case RoleMouse:
		if mouse != move.Origin {
			return fmt.Errorf("%w: mouse is not at %d", apperror.ErrIllegalMove, move.Origin)
		}
		mouse = move.Target
	default:
		return fmt.Errorf("%w: %s", apperror.ErrNotAParticipant, move.PlayerID)
	}

	next := Game{Cats: cats, Mouse: mouse}
	if err := next.validatePositions(); err != nil {
		return err
	}

	that.Cats, that.Mouse = cats, mouse

	return nil
}

// AdvanceTurn hands the turn to the other side.
func (that *Game) AdvanceTurn() {
	that.CatTurn = !that.CatTurn
}

// Finish closes an active game.
func (that *Game) Finish() error {
	if !that.IsActive() {
		return fmt.Errorf("%w: cannot finish a %s game", apperror.ErrInvalidStatus, that.Status)
	}

	that.Status = StatusFinished

	return nil
}

// CatAt returns the index of the cat standing on cell, or -1.
func (that *Game) CatAt(cell int) int {
	for i, cat := range that.Cats {
		if cat == cell {
			return i
		}
	}

	return -1
}

func (that *Game) IsOccupied(cell int) bool {
	return that.Mouse == cell || that.CatAt(cell) >= 0
}

// BoardSnapshot projects the pieces onto the 64 cells of the board.
func (that *Game) BoardSnapshot() []int {
	board := make([]int, BoardSize)

	for _, cat := range that.Cats {
		if IsValidCell(cat) {
			board[cat] = MarkerCat
		}
	}

	if IsValidCell(that.Mouse) {
		board[that.Mouse] = MarkerMouse
	}

	return board
}

func (that *Game) String() string {
	catTurn, mouseTurn := "[X]", "[ ]"
	if !that.CatTurn {
		catTurn, mouseTurn = "[ ]", "[X]"
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "(%s, %s)\tCat %s %s(%d, %d, %d, %d)",
		that.ID, that.Status, catTurn, that.CatPlayer,
		that.Cats[0], that.Cats[1], that.Cats[2], that.Cats[3])

	if that.HasMousePlayer() {
		fmt.Fprintf(&sb, " --- Mouse %s %s(%d)", mouseTurn, that.MousePlayer, that.Mouse)
	}

	return sb.String()
}
