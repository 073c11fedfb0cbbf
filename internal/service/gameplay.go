package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/mousecat-backend/internal/apperror"
	"github.com/rocketscienceinc/mousecat-backend/internal/entity"
	"github.com/rocketscienceinc/mousecat-backend/internal/pkg"
)

type GamePlayService interface {
	JoinGame(ctx context.Context, gameID, playerID string) (*entity.Game, error)
	MakeMove(ctx context.Context, gameID, playerID string, origin, target int) (*entity.Game, error)
	FinishGame(ctx context.Context, gameID, playerID string) (*entity.Game, error)
}

type engine interface {
	Join(game *entity.Game, player string) error
	MakeMove(game *entity.Game, move *entity.Move) error
}

type gamePlayService struct {
	logger *slog.Logger

	engine     engine
	gameRepo   gameRepo
	playerRepo playerRepo
	moveRepo   moveRepo
}

func NewGamePlayService(logger *slog.Logger, engine engine, gameRepo gameRepo, playerRepo playerRepo, moveRepo moveRepo) GamePlayService {
	return &gamePlayService{
		logger:     logger.With("component", "gameplay"),
		engine:     engine,
		gameRepo:   gameRepo,
		playerRepo: playerRepo,
		moveRepo:   moveRepo,
	}
}

func (that *gamePlayService) JoinGame(ctx context.Context, gameID, playerID string) (*entity.Game, error) {
	log := that.logger.With("method", "JoinGame", "gameID", gameID, "player", playerID)

	game, err := that.gameRepo.Update(ctx, gameID, func(game *entity.Game) error {
		if game.CatPlayer == playerID {
			return apperror.ErrOwnGame
		}

		return that.engine.Join(game, playerID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to join game: %w", err)
	}

	if err = that.playerRepo.AddGame(ctx, playerID, game.ID, entity.RoleMouse); err != nil {
		log.Error("failed to index game for player", "error", err)
	}

	log.Info("mouse player joined")

	return game, nil
}

func (that *gamePlayService) MakeMove(ctx context.Context, gameID, playerID string, origin, target int) (*entity.Game, error) {
	log := that.logger.With("method", "MakeMove", "gameID", gameID, "player", playerID)

	move := entity.NewMove(pkg.GenerateMoveID(), gameID, playerID, origin, target)

	game, err := that.gameRepo.Update(ctx, gameID, func(game *entity.Game) error {
		return that.engine.MakeMove(game, move)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to make move: %w", err)
	}

	// the game is already committed at this point, history is best effort
	if err = that.moveRepo.Append(ctx, move); err != nil {
		log.Error("failed to append move to history", "moveID", move.ID, "error", err)
	}

	log.Debug("move applied", "origin", origin, "target", target, "status", game.Status.String())

	return game, nil
}

// FinishGame closes an active game on behalf of one of its players.
func (that *gamePlayService) FinishGame(ctx context.Context, gameID, playerID string) (*entity.Game, error) {
	game, err := that.gameRepo.Update(ctx, gameID, func(game *entity.Game) error {
		if game.RoleOf(playerID) == entity.RoleNone {
			return fmt.Errorf("%w: %q", apperror.ErrNotAParticipant, playerID)
		}

		return game.Finish()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to finish game: %w", err)
	}

	that.logger.Info("game finished", "gameID", gameID, "player", playerID)

	return game, nil
}
