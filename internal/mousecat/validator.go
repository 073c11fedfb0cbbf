package mousecat

import (
	"fmt"

	"github.com/rocketscienceinc/mousecat-backend/internal/apperror"
	"github.com/rocketscienceinc/mousecat-backend/internal/entity"
)

var (
	stepDownRight = entity.Delta{Rows: 1, Cols: 1}
	stepUpLeft    = entity.Delta{Rows: -1, Cols: -1}
)

// Rules toggles checks that go beyond the base geometry rules.
// Both are off by default.
type Rules struct {
	EnforceTurns   bool
	RejectOccupied bool
}

type MoveValidator struct {
	rules Rules
}

func NewMoveValidator(rules Rules) *MoveValidator {
	return &MoveValidator{rules: rules}
}

// Validate decides whether player may move a piece from origin to target.
// It never mutates the game.
func (that *MoveValidator) Validate(game *entity.Game, player string, origin, target int) error {
	if !game.IsActive() {
		return fmt.Errorf("%w: game is %s", apperror.ErrGameNotActive, game.Status)
	}

	delta, err := entity.StepDelta(origin, target)
	if err != nil {
		return err
	}

	role := game.RoleOf(player)

	switch role {
	case entity.RoleCat:
		if delta != stepDownRight {
			return fmt.Errorf("%w: cat %d -> %d", apperror.ErrIllegalMove, origin, target)
		}
	case entity.RoleMouse:
		if delta != stepDownRight && delta != stepUpLeft {
			return fmt.Errorf("%w: mouse %d -> %d", apperror.ErrIllegalMove, origin, target)
		}
	default:
		return fmt.Errorf("%w: %q", apperror.ErrNotAParticipant, player)
	}

	if that.rules.EnforceTurns && game.CatTurn != (role == entity.RoleCat) {
		return apperror.ErrNotYourTurn
	}

	if that.rules.RejectOccupied && game.IsOccupied(target) {
		return fmt.Errorf("%w: %d", apperror.ErrCellOccupied, target)
	}

	return nil
}
