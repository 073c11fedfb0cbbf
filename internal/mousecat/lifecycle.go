package mousecat

import (
	"fmt"

	"github.com/rocketscienceinc/mousecat-backend/internal/entity"
)

// WinDetector decides whether a game has been won after a move.
// None ships with the engine.
type WinDetector interface {
	IsOver(game *entity.Game) bool
}

type Lifecycle struct {
	rules    Rules
	detector WinDetector
}

// NewLifecycle builds the coordinator. detector may be nil.
func NewLifecycle(rules Rules, detector WinDetector) *Lifecycle {
	return &Lifecycle{
		rules:    rules,
		detector: detector,
	}
}

func (that *Lifecycle) OnPlayerJoin(game *entity.Game, player string) error {
	if err := game.AttachMousePlayer(player); err != nil {
		return fmt.Errorf("failed to attach mouse player: %w", err)
	}

	return nil
}

func (that *Lifecycle) OnMoveApplied(game *entity.Game) error {
	if that.rules.EnforceTurns {
		game.AdvanceTurn()
	}

	if that.detector == nil || !that.detector.IsOver(game) {
		return nil
	}

	if err := game.Finish(); err != nil {
		return fmt.Errorf("failed to finish game: %w", err)
	}

	return nil
}
