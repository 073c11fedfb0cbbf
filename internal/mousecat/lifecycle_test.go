package mousecat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/mousecat-backend/internal/apperror"
	"github.com/rocketscienceinc/mousecat-backend/internal/entity"
)

func TestLifecycle_OnPlayerJoin(t *testing.T) {
	t.Run("Moves a created game to active", func(t *testing.T) {
		lifecycle := NewLifecycle(Rules{}, nil)
		game, err := entity.NewGame("g1", catPlayer)
		require.NoError(t, err)

		require.NoError(t, lifecycle.OnPlayerJoin(game, mousePlayer))
		assert.Equal(t, entity.StatusActive, game.Status)
	})

	t.Run("Fails on an active game", func(t *testing.T) {
		lifecycle := NewLifecycle(Rules{}, nil)
		game := newActiveGame(t)

		assert.ErrorIs(t, lifecycle.OnPlayerJoin(game, "other"), apperror.ErrInvalidStatus)
	})
}

func TestLifecycle_OnMoveApplied(t *testing.T) {
	t.Run("Leaves the turn alone by default", func(t *testing.T) {
		lifecycle := NewLifecycle(Rules{}, nil)
		game := newActiveGame(t)

		require.NoError(t, lifecycle.OnMoveApplied(game))
		assert.True(t, game.CatTurn)
		assert.True(t, game.IsActive())
	})

	t.Run("Flips the turn when turns are enforced", func(t *testing.T) {
		lifecycle := NewLifecycle(Rules{EnforceTurns: true}, nil)
		game := newActiveGame(t)

		require.NoError(t, lifecycle.OnMoveApplied(game))
		assert.False(t, game.CatTurn)
	})

	t.Run("Detector that says no keeps the game active", func(t *testing.T) {
		lifecycle := NewLifecycle(Rules{}, detectorFunc(func(*entity.Game) bool { return false }))
		game := newActiveGame(t)

		require.NoError(t, lifecycle.OnMoveApplied(game))
		assert.True(t, game.IsActive())
	})
}
