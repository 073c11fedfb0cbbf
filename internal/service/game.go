package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/mousecat-backend/internal/apperror"
	"github.com/rocketscienceinc/mousecat-backend/internal/entity"
	"github.com/rocketscienceinc/mousecat-backend/internal/pkg"
)

// PlayerGames are the games a player takes part in, by side.
type PlayerGames struct {
	AsCat   []*entity.Game `json:"as_cat"`
	AsMouse []*entity.Game `json:"as_mouse"`
}

type GameService interface {
	CreateGame(ctx context.Context, catPlayer string) (*entity.Game, error)
	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
	ListPlayerGames(ctx context.Context, playerID string) (*PlayerGames, error)
	ListJoinableGames(ctx context.Context, playerID string) ([]*entity.Game, error)
	GetMoves(ctx context.Context, gameID string) ([]*entity.Move, error)
}

type gameRepo interface {
	Create(ctx context.Context, game *entity.Game) error
	Update(ctx context.Context, id string, mutate func(game *entity.Game) error) (*entity.Game, error)
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	ListCreated(ctx context.Context) ([]*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type playerRepo interface {
	AddGame(ctx context.Context, playerID, gameID string, role entity.Role) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type moveRepo interface {
	Append(ctx context.Context, move *entity.Move) error
	ListByGame(ctx context.Context, gameID string) ([]*entity.Move, error)
}

// maxCreateAttempts bounds how many fresh ids CreateGame draws when an id is already taken.
const maxCreateAttempts = 3

type gameService struct {
	gameRepo   gameRepo
	playerRepo playerRepo
	moveRepo   moveRepo

	newID func() string
}

func NewGameService(gameRepo gameRepo, playerRepo playerRepo, moveRepo moveRepo) GameService {
	return &gameService{
		gameRepo:   gameRepo,
		playerRepo: playerRepo,
		moveRepo:   moveRepo,
		newID:      pkg.GenerateGameID,
	}
}

func (that *gameService) CreateGame(ctx context.Context, catPlayer string) (*entity.Game, error) {
	game, err := that.storeNewGame(ctx, catPlayer)
	if err != nil {
		return nil, err
	}

	if err = that.playerRepo.AddGame(ctx, catPlayer, game.ID, entity.RoleCat); err != nil {
		if delErr := that.gameRepo.DeleteByID(ctx, game.ID); delErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to remove unindexed game %s: %w", game.ID, delErr))
		}

		return nil, fmt.Errorf("failed to index game for player: %w", err)
	}

	return game, nil
}

func (that *gameService) storeNewGame(ctx context.Context, catPlayer string) (*entity.Game, error) {
	var err error

	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		var game *entity.Game

		game, err = entity.NewGame(that.newID(), catPlayer)
		if err != nil {
			return nil, fmt.Errorf("failed to build game: %w", err)
		}

		err = that.gameRepo.Create(ctx, game)
		if errors.Is(err, apperror.ErrGameExists) {
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("failed to create game from storage: %w", err)
		}

		return game, nil
	}

	return nil, fmt.Errorf("failed to create game from storage: %w", err)
}

func (that *gameService) GetGameByID(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve game from storage: %w", err)
	}

	return game, nil
}

func (that *gameService) ListPlayerGames(ctx context.Context, playerID string) (*PlayerGames, error) {
	player, err := that.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	asCat, err := that.getGames(ctx, player.GamesAsCat)
	if err != nil {
		return nil, err
	}

	asMouse, err := that.getGames(ctx, player.GamesAsMouse)
	if err != nil {
		return nil, err
	}

	return &PlayerGames{AsCat: asCat, AsMouse: asMouse}, nil
}

// ListJoinableGames returns the games waiting for a mouse that the player did not open.
func (that *gameService) ListJoinableGames(ctx context.Context, playerID string) ([]*entity.Game, error) {
	created, err := that.gameRepo.ListCreated(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list created games: %w", err)
	}

	games := make([]*entity.Game, 0, len(created))
	for _, game := range created {
		if game.CatPlayer != playerID {
			games = append(games, game)
		}
	}

	return games, nil
}

func (that *gameService) GetMoves(ctx context.Context, gameID string) ([]*entity.Move, error) {
	if _, err := that.GetGameByID(ctx, gameID); err != nil {
		return nil, err
	}

	moves, err := that.moveRepo.ListByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve moves from storage: %w", err)
	}

	return moves, nil
}

func (that *gameService) getGames(ctx context.Context, ids []string) ([]*entity.Game, error) {
	games := make([]*entity.Game, 0, len(ids))
	for _, id := range ids {
		game, err := that.GetGameByID(ctx, id)
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
