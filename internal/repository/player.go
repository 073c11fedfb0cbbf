package repository

import (
	"context"
	"fmt"
	"slices"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/mousecat-backend/internal/entity"
)

type PlayerRepository interface {
	AddGame(ctx context.Context, playerID, gameID string, role entity.Role) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type dbPlayer struct {
	client *redis.Client
}

func NewPlayerRepository(client *redis.Client) PlayerRepository {
	return &dbPlayer{
		client: client,
	}
}

func playerGamesKey(id string, role entity.Role) string {
	return "player:" + id + ":" + role.String()
}

func (that *dbPlayer) AddGame(ctx context.Context, playerID, gameID string, role entity.Role) error {
	if role == entity.RoleNone {
		return fmt.Errorf("player %s has no role in game %s", playerID, gameID)
	}

	if err := that.client.SAdd(ctx, playerGamesKey(playerID, role), gameID).Err(); err != nil {
		return fmt.Errorf("failed to add game to player: %w", err)
	}

	return nil
}

// GetByID never fails for unknown players; they simply have no games.
func (that *dbPlayer) GetByID(ctx context.Context, id string) (*entity.Player, error) {
	asCat, err := that.client.SMembers(ctx, playerGamesKey(id, entity.RoleCat)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get games as cat: %w", err)
	}

	asMouse, err := that.client.SMembers(ctx, playerGamesKey(id, entity.RoleMouse)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get games as mouse: %w", err)
	}

	slices.Sort(asCat)
	slices.Sort(asMouse)

	return &entity.Player{
		ID:           id,
		GamesAsCat:   asCat,
		GamesAsMouse: asMouse,
	}, nil
}
