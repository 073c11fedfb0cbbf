package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/rocketscienceinc/mousecat-backend/internal/entity"
	"github.com/rocketscienceinc/mousecat-backend/internal/service"
)

const shutdownTimeout = 5 * time.Second

type gameService interface {
	CreateGame(ctx context.Context, catPlayer string) (*entity.Game, error)
	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
	ListPlayerGames(ctx context.Context, playerID string) (*service.PlayerGames, error)
	ListJoinableGames(ctx context.Context, playerID string) ([]*entity.Game, error)
	GetMoves(ctx context.Context, gameID string) ([]*entity.Move, error)
}

type gamePlayService interface {
	JoinGame(ctx context.Context, gameID, playerID string) (*entity.Game, error)
	MakeMove(ctx context.Context, gameID, playerID string, origin, target int) (*entity.Game, error)
	FinishGame(ctx context.Context, gameID, playerID string) (*entity.Game, error)
}

type counterService interface {
	Hit(ctx context.Context) (int64, error)
	Current(ctx context.Context) (int64, error)
}

type Server struct {
	logger *slog.Logger

	games    gameService
	gamePlay gamePlayService
	counter  counterService

	router *mux.Router
}

func New(logger *slog.Logger, games gameService, gamePlay gamePlayService, counter counterService) *Server {
	server := &Server{
		logger:   logger.With("component", "rest"),
		games:    games,
		gamePlay: gamePlay,
		counter:  counter,
		router:   mux.NewRouter(),
	}

	server.routes()

	return server
}

func (that *Server) routes() {
	that.router.HandleFunc("/ping", pingHandler).Methods(http.MethodGet)
	that.router.HandleFunc("/counter", that.handleCounter).Methods(http.MethodGet)
	that.router.HandleFunc("/counter/current", that.handleCounterCurrent).Methods(http.MethodGet)

	games := that.router.PathPrefix("/games").Subrouter()
	games.Use(requirePlayer)

	games.HandleFunc("", that.handleCreateGame).Methods(http.MethodPost)
	games.HandleFunc("", that.handleListGames).Methods(http.MethodGet)
	games.HandleFunc("/joinable", that.handleListJoinable).Methods(http.MethodGet)
	games.HandleFunc("/{id}", that.handleGetGame).Methods(http.MethodGet)
	games.HandleFunc("/{id}/join", that.handleJoinGame).Methods(http.MethodPost)
	games.HandleFunc("/{id}/moves", that.handleMakeMove).Methods(http.MethodPost)
	games.HandleFunc("/{id}/moves", that.handleListMoves).Methods(http.MethodGet)
	games.HandleFunc("/{id}/board", that.handleBoard).Methods(http.MethodGet)
	games.HandleFunc("/{id}/finish", that.handleFinishGame).Methods(http.MethodPost)
}

func (that *Server) Handler() http.Handler {
	return that.router
}

// Start - starts the HTTP server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
