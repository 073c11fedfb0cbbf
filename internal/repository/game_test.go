package repository

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/mousecat-backend/internal/apperror"
	"github.com/rocketscienceinc/mousecat-backend/internal/entity"
	"github.com/rocketscienceinc/mousecat-backend/testing/suite"
)

var errMutateFailed = errors.New("mutate failed")

func newGame(t *testing.T, id string) *entity.Game {
	t.Helper()

	game, err := entity.NewGame(id, "cat")
	require.NoError(t, err)

	return game
}

func TestGameRepository_Create(t *testing.T) {
	t.Run("Stores a valid game", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// Given: a new game
		game := newGame(t, "123")

		// When: Create is called
		err := gameRepo.Create(ctx, game)

		// Then: no error should be returned, and game is stored
		require.NoError(t, err)

		stored, err := gameRepo.GetByID(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, game, stored)
	})

	t.Run("Refuses a game with a piece on a light square", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// Given: a game whose mouse is on a light square
		game := newGame(t, "123")
		game.Mouse = 58

		// When: Create is called
		err := gameRepo.Create(ctx, game)

		// Then: ErrInvalidCell is returned and nothing is stored
		require.ErrorIs(t, err, apperror.ErrInvalidCell)

		_, err = gameRepo.GetByID(ctx, game.ID)
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("Refuses an active game without a mouse player", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		game := newGame(t, "123")
		game.Status = entity.StatusActive

		err := gameRepo.Create(ctx, game)

		require.ErrorIs(t, err, apperror.ErrInvalidStatus)
	})

	t.Run("Refuses an id that is already taken", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// Given: a stored game
		game := newGame(t, "123")
		require.NoError(t, gameRepo.Create(ctx, game))

		// When: another game with the same id is created
		other, err := entity.NewGame("123", "another-cat")
		require.NoError(t, err)

		err = gameRepo.Create(ctx, other)

		// Then: ErrGameExists is returned and the first game is kept
		require.ErrorIs(t, err, apperror.ErrGameExists)

		stored, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, game, stored)
	})
}

func TestGameRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// Given: an active game mid-play
		game := newGame(t, "123")
		require.NoError(t, game.AttachMousePlayer("mouse"))
		game.Mouse = 50
		game.CatTurn = false

		err := gameRepo.Create(ctx, game)
		require.NoError(t, err)

		// When: GetByID is called with existing ID
		retrievedGame, err := gameRepo.GetByID(ctx, game.ID)

		// Then: positions, status and turn flag round-trip
		require.NoError(t, err)
		require.Equal(t, game, retrievedGame)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		nonExistentGameID := "9999999"

		// When: GetByID is called with non-existent ID
		retrievedGame, err := gameRepo.GetByID(ctx, nonExistentGameID)

		// Then: an ErrGameNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
		assert.Nil(t, retrievedGame)
	})
}

func TestGameRepository_Update(t *testing.T) {
	t.Run("Stores the mutated game", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)
		require.NoError(t, gameRepo.Create(ctx, newGame(t, "123")))

		// When: a mouse player joins through Update
		updated, err := gameRepo.Update(ctx, "123", func(game *entity.Game) error {
			return game.AttachMousePlayer("mouse")
		})

		// Then: the stored game is active
		require.NoError(t, err)
		assert.True(t, updated.IsActive())

		stored, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, updated, stored)
	})

	t.Run("Mutate errors leave the stored game untouched", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)
		game := newGame(t, "123")
		require.NoError(t, gameRepo.Create(ctx, game))

		_, err := gameRepo.Update(ctx, "123", func(game *entity.Game) error {
			game.Cats[0] = 9
			return errMutateFailed
		})

		require.ErrorIs(t, err, errMutateFailed)

		stored, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, game, stored)
	})

	t.Run("Invalid result is not stored", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)
		require.NoError(t, gameRepo.Create(ctx, newGame(t, "123")))

		_, err := gameRepo.Update(ctx, "123", func(game *entity.Game) error {
			game.Cats[0] = 1
			return nil
		})

		require.ErrorIs(t, err, apperror.ErrInvalidCell)

		stored, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, 0, stored.Cats[0])
	})

	t.Run("Unknown game", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		_, err := gameRepo.Update(ctx, "missing", func(*entity.Game) error { return nil })

		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("Concurrent joins seat exactly one mouse", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)
		require.NoError(t, gameRepo.Create(ctx, newGame(t, "123")))

		// Given: several players trying to join at once
		const joiners = 8

		var (
			wg       sync.WaitGroup
			mu       sync.Mutex
			accepted int
		)

		for i := 0; i < joiners; i++ {
			wg.Add(1)
			go func(player string) {
				defer wg.Done()

				_, err := gameRepo.Update(ctx, "123", func(game *entity.Game) error {
					return game.AttachMousePlayer(player)
				})
				if err == nil {
					mu.Lock()
					accepted++
					mu.Unlock()
					return
				}

				assert.ErrorIs(t, err, apperror.ErrInvalidStatus)
			}(fmt.Sprintf("mouse-%d", i))
		}

		wg.Wait()

		// Then: only one of them got in
		assert.Equal(t, 1, accepted)
	})
}

func TestGameRepository_ListCreated(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage)

	// Given: two created games and one that has been joined
	require.NoError(t, gameRepo.Create(ctx, newGame(t, "b")))
	require.NoError(t, gameRepo.Create(ctx, newGame(t, "a")))
	require.NoError(t, gameRepo.Create(ctx, newGame(t, "c")))

	_, err := gameRepo.Update(ctx, "c", func(game *entity.Game) error {
		return game.AttachMousePlayer("mouse")
	})
	require.NoError(t, err)

	// When: listing created games
	games, err := gameRepo.ListCreated(ctx)

	// Then: only the waiting ones are returned in id order
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, "a", games[0].ID)
	assert.Equal(t, "b", games[1].ID)
}

func TestGameRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// Given: a stored game
		game := newGame(t, "123")

		err := gameRepo.Create(ctx, game)
		require.NoError(t, err)

		// When: DeleteByID is called with existing ID
		err = gameRepo.DeleteByID(ctx, game.ID)

		// Then: no error should be returned
		require.NoError(t, err)

		_, err = gameRepo.GetByID(ctx, game.ID)
		require.ErrorIs(t, err, apperror.ErrGameNotFound)

		games, err := gameRepo.ListCreated(ctx)
		require.NoError(t, err)
		assert.Empty(t, games)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// Given: a non-existent game ID
		nonExistentGameID := "9999999"

		// When: DeleteByID is called with non-existent ID
		err := gameRepo.DeleteByID(ctx, nonExistentGameID)

		// Then: an ErrGameNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})
}
