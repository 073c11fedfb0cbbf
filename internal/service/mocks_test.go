package service

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/mousecat-backend/internal/apperror"
	"github.com/rocketscienceinc/mousecat-backend/internal/entity"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memoryGameRepo keeps games in a map and mirrors the redis repository semantics.
type memoryGameRepo struct {
	mu    sync.Mutex
	games map[string]entity.Game

	// createErr, when set, is returned by Create instead of storing the game.
	createErr error
}

func newMemoryGameRepo() *memoryGameRepo {
	return &memoryGameRepo{games: map[string]entity.Game{}}
}

func (that *memoryGameRepo) Create(_ context.Context, game *entity.Game) error {
	if that.createErr != nil {
		return that.createErr
	}

	if err := game.Validate(); err != nil {
		return err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.games[game.ID]; ok {
		return apperror.ErrGameExists
	}

	that.games[game.ID] = *game

	return nil
}

func (that *memoryGameRepo) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.games[id]; !ok {
		return apperror.ErrGameNotFound
	}

	delete(that.games, id)

	return nil
}

func (that *memoryGameRepo) count() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.games)
}

func (that *memoryGameRepo) Update(_ context.Context, id string, mutate func(game *entity.Game) error) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	stored, ok := that.games[id]
	if !ok {
		return nil, apperror.ErrGameNotFound
	}

	game := stored
	if err := mutate(&game); err != nil {
		return nil, err
	}

	if err := game.Validate(); err != nil {
		return nil, err
	}

	that.games[id] = game

	return &game, nil
}

func (that *memoryGameRepo) GetByID(_ context.Context, id string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, ok := that.games[id]
	if !ok {
		return nil, apperror.ErrGameNotFound
	}

	return &game, nil
}

func (that *memoryGameRepo) ListCreated(_ context.Context) ([]*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	games := []*entity.Game{}
	for _, game := range that.games {
		game := game
		if game.IsCreated() {
			games = append(games, &game)
		}
	}

	slices.SortFunc(games, func(a, b *entity.Game) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})

	return games, nil
}

type mockPlayerRepo struct {
	mock.Mock
}

func (that *mockPlayerRepo) AddGame(ctx context.Context, playerID, gameID string, role entity.Role) error {
	args := that.Called(ctx, playerID, gameID, role)
	return args.Error(0)
}

func (that *mockPlayerRepo) GetByID(ctx context.Context, id string) (*entity.Player, error) {
	args := that.Called(ctx, id)

	player, _ := args.Get(0).(*entity.Player)

	return player, args.Error(1)
}

type mockMoveRepo struct {
	mock.Mock
}

func (that *mockMoveRepo) Append(ctx context.Context, move *entity.Move) error {
	args := that.Called(ctx, move)
	return args.Error(0)
}

func (that *mockMoveRepo) ListByGame(ctx context.Context, gameID string) ([]*entity.Move, error) {
	args := that.Called(ctx, gameID)

	moves, _ := args.Get(0).([]*entity.Move)

	return moves, args.Error(1)
}

type mockCounterRepo struct {
	mock.Mock
}

func (that *mockCounterRepo) Increment(ctx context.Context) (int64, error) {
	args := that.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (that *mockCounterRepo) CurrentValue(ctx context.Context) (int64, error) {
	args := that.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
