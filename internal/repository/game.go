package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/mousecat-backend/internal/apperror"
	"github.com/rocketscienceinc/mousecat-backend/internal/entity"
)

const (
	createdGamesKey  = "games:created"
	maxUpdateRetries = 16
)

type GameRepository interface {
	Create(ctx context.Context, game *entity.Game) error
	Update(ctx context.Context, id string, mutate func(game *entity.Game) error) (*entity.Game, error)
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	ListCreated(ctx context.Context) ([]*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

type dbGame struct {
	client *redis.Client
}

func NewGameRepository(client *redis.Client) GameRepository {
	return &dbGame{
		client: client,
	}
}

func gameKey(id string) string {
	return "game:" + id
}

// Create stores a new game. The game must pass validation and its id must be unused.
func (that *dbGame) Create(ctx context.Context, game *entity.Game) error {
	gameJSON, err := marshalGame(game)
	if err != nil {
		return err
	}

	key := gameKey(game.ID)

	txf := func(tx *redis.Tx) error {
		exists, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return fmt.Errorf("failed to check game: %w", err)
		}

		if exists > 0 {
			return fmt.Errorf("%w: game id %s", apperror.ErrGameExists, game.ID)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, gameJSON, 0)
			indexCreated(ctx, pipe, game)
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to set game: %w", err)
		}

		return nil
	}

	return that.watch(ctx, game.ID, txf)
}

// Update loads the game, runs mutate on it and stores the result, all under
// WATCH so no other write to the same game can slip in between.
// Errors returned by mutate are passed through and nothing is stored.
func (that *dbGame) Update(ctx context.Context, id string, mutate func(game *entity.Game) error) (*entity.Game, error) {
	key := gameKey(id)

	var updated *entity.Game

	txf := func(tx *redis.Tx) error {
		game, err := loadGame(ctx, tx, id)
		if err != nil {
			return err
		}

		if err = mutate(game); err != nil {
			return err
		}

		gameJSON, err := marshalGame(game)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, gameJSON, 0)
			indexCreated(ctx, pipe, game)
			return nil
		})
		if err != nil {
			return err
		}

		updated = game

		return nil
	}

	if err := that.watch(ctx, id, txf); err != nil {
		return nil, err
	}

	return updated, nil
}

// watch runs txf under WATCH on the game key, retrying when another client wrote the key first.
func (that *dbGame) watch(ctx context.Context, id string, txf func(tx *redis.Tx) error) error {
	for attempt := 0; attempt < maxUpdateRetries; attempt++ {
		err := that.client.Watch(ctx, txf, gameKey(id))
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}

		return err
	}

	return fmt.Errorf("%w: game id %s", apperror.ErrConcurrentUpdate, id)
}

func (that *dbGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	return loadGame(ctx, that.client, id)
}

// ListCreated returns the games still waiting for a mouse player, ordered by id.
func (that *dbGame) ListCreated(ctx context.Context) ([]*entity.Game, error) {
	ids, err := that.client.SMembers(ctx, createdGamesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list created games: %w", err)
	}

	return that.getMany(ctx, ids)
}

func (that *dbGame) getMany(ctx context.Context, ids []string) ([]*entity.Game, error) {
	slices.Sort(ids)

	games := make([]*entity.Game, 0, len(ids))
	for _, id := range ids {
		game, err := that.GetByID(ctx, id)
		if errors.Is(err, apperror.ErrGameNotFound) {
			continue
		}

		if err != nil {
			return nil, err
		}

		games = append(games, game)
	}

	return games, nil
}

func (that *dbGame) DeleteByID(ctx context.Context, id string) error {
	var deleted *redis.IntCmd

	_, err := that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		deleted = pipe.Del(ctx, gameKey(id))
		pipe.SRem(ctx, createdGamesKey, id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete game by ID: %w", err)
	}

	if deleted.Val() == 0 {
		return apperror.ErrGameNotFound
	}

	return nil
}

func loadGame(ctx context.Context, client getter, id string) (*entity.Game, error) {
	response, err := client.Get(ctx, gameKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	var existingGame entity.Game
	if err = json.Unmarshal([]byte(response), &existingGame); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}

func marshalGame(game *entity.Game) ([]byte, error) {
	if err := game.Validate(); err != nil {
		return nil, fmt.Errorf("refusing to store game %s: %w", game.ID, err)
	}

	gameJSON, err := json.Marshal(game)
	if err != nil {
		return nil, fmt.Errorf("could not marshal game: %w", err)
	}

	return gameJSON, nil
}

func indexCreated(ctx context.Context, pipe redis.Pipeliner, game *entity.Game) {
	if game.IsCreated() {
		pipe.SAdd(ctx, createdGamesKey, game.ID)
		return
	}

	pipe.SRem(ctx, createdGamesKey, game.ID)
}
