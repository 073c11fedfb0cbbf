package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/mousecat-backend/internal/entity"
)

// MoveRepository is the append-only move history of each game.
type MoveRepository interface {
	Append(ctx context.Context, move *entity.Move) error
	ListByGame(ctx context.Context, gameID string) ([]*entity.Move, error)
}

type sqlMove struct {
	conn *sql.DB
}

func NewSQLMoveRepository(conn *sql.DB) MoveRepository {
	return &sqlMove{
		conn: conn,
	}
}

func (that *sqlMove) Append(ctx context.Context, move *entity.Move) error {
	query := `INSERT INTO moves (id, game_id, player_id, origin, target, created_at) VALUES (?, ?, ?, ?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query,
		move.ID, move.GameID, move.PlayerID, move.Origin, move.Target,
		move.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("can't save move: %w", err)
	}

	return nil
}

func (that *sqlMove) ListByGame(ctx context.Context, gameID string) ([]*entity.Move, error) {
	query := `SELECT id, game_id, player_id, origin, target, created_at FROM moves WHERE game_id = ? ORDER BY seq`

	rows, err := that.conn.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("can't list moves: %w", err)
	}
	defer rows.Close()

	moves := []*entity.Move{}
	for rows.Next() {
		var (
			move      entity.Move
			createdAt string
		)

		if err = rows.Scan(&move.ID, &move.GameID, &move.PlayerID, &move.Origin, &move.Target, &createdAt); err != nil {
			return nil, fmt.Errorf("can't scan move: %w", err)
		}

		if move.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("can't parse move time: %w", err)
		}

		moves = append(moves, &move)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't iterate moves: %w", err)
	}

	return moves, nil
}

type dbMove struct {
	client *redis.Client
}

func NewRedisMoveRepository(client *redis.Client) MoveRepository {
	return &dbMove{
		client: client,
	}
}

func movesKey(gameID string) string {
	return "moves:" + gameID
}

func (that *dbMove) Append(ctx context.Context, move *entity.Move) error {
	moveJSON, err := json.Marshal(move)
	if err != nil {
		return fmt.Errorf("could not marshal move: %w", err)
	}

	if err = that.client.RPush(ctx, movesKey(move.GameID), moveJSON).Err(); err != nil {
		return fmt.Errorf("failed to append move: %w", err)
	}

	return nil
}

func (that *dbMove) ListByGame(ctx context.Context, gameID string) ([]*entity.Move, error) {
	response, err := that.client.LRange(ctx, movesKey(gameID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list moves: %w", err)
	}

	moves := make([]*entity.Move, 0, len(response))
	for _, item := range response {
		var move entity.Move
		if err = json.Unmarshal([]byte(item), &move); err != nil {
			return nil, fmt.Errorf("failed to unmarshal move: %w", err)
		}

		moves = append(moves, &move)
	}

	return moves, nil
}
