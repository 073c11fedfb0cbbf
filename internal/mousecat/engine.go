package mousecat

import (
	"fmt"

	"github.com/rocketscienceinc/mousecat-backend/internal/entity"
)

// Engine runs a move through validation, application and the lifecycle hook.
type Engine struct {
	validator *MoveValidator
	lifecycle *Lifecycle
}

func NewEngine(rules Rules, detector WinDetector) *Engine {
	return &Engine{
		validator: NewMoveValidator(rules),
		lifecycle: NewLifecycle(rules, detector),
	}
}

func (that *Engine) Join(game *entity.Game, player string) error {
	return that.lifecycle.OnPlayerJoin(game, player)
}

// MakeMove applies move to game. On error the game is left as it was.
func (that *Engine) MakeMove(game *entity.Game, move *entity.Move) error {
	if err := that.validator.Validate(game, move.PlayerID, move.Origin, move.Target); err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}

	before := *game

	if err := game.ApplyMove(move); err != nil {
		return fmt.Errorf("failed to apply move: %w", err)
	}

	if err := that.lifecycle.OnMoveApplied(game); err != nil {
		*game = before
		return err
	}

	return nil
}
