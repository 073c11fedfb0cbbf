package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rocketscienceinc/mousecat-backend/internal/apperror"
	"github.com/rocketscienceinc/mousecat-backend/internal/entity"
)

// PlayerHeader carries the caller's opaque identity, set by whatever sits in front of this service.
const PlayerHeader = "X-Player-ID"

type playerKey struct{}

type ErrorResponse struct {
	Error string `json:"error"`
}

type MoveRequest struct {
	Origin *int `json:"origin"`
	Target *int `json:"target"`
}

type BoardResponse struct {
	GameID  string        `json:"game_id"`
	Status  entity.Status `json:"status"`
	CatTurn bool          `json:"cat_turn"`
	Board   []int         `json:"board"`
}

type CounterResponse struct {
	Global int64 `json:"counter_global"`
}

func requirePlayer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		player := r.Header.Get(PlayerHeader)
		if player == "" {
			respondWithError(w, http.StatusUnauthorized, PlayerHeader+" header is required")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), playerKey{}, player)))
	})
}

func playerFrom(r *http.Request) string {
	player, _ := r.Context().Value(playerKey{}).(string)
	return player
}

func (that *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.CreateGame(r.Context(), playerFrom(r))
	if err != nil {
		that.respondWithAppError(w, "CreateGame", err)
		return
	}

	respondWithJSON(w, http.StatusCreated, game)
}

func (that *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	games, err := that.games.ListPlayerGames(r.Context(), playerFrom(r))
	if err != nil {
		that.respondWithAppError(w, "ListGames", err)
		return
	}

	respondWithJSON(w, http.StatusOK, games)
}

func (that *Server) handleListJoinable(w http.ResponseWriter, r *http.Request) {
	games, err := that.games.ListJoinableGames(r.Context(), playerFrom(r))
	if err != nil {
		that.respondWithAppError(w, "ListJoinable", err)
		return
	}

	respondWithJSON(w, http.StatusOK, games)
}

func (that *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.GetGameByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		that.respondWithAppError(w, "GetGame", err)
		return
	}

	respondWithJSON(w, http.StatusOK, game)
}

func (that *Server) handleJoinGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gamePlay.JoinGame(r.Context(), mux.Vars(r)["id"], playerFrom(r))
	if err != nil {
		that.respondWithAppError(w, "JoinGame", err)
		return
	}

	respondWithJSON(w, http.StatusOK, game)
}

func (that *Server) handleMakeMove(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if req.Origin == nil || req.Target == nil {
		respondWithError(w, http.StatusBadRequest, "origin and target are required")
		return
	}

	game, err := that.gamePlay.MakeMove(r.Context(), mux.Vars(r)["id"], playerFrom(r), *req.Origin, *req.Target)
	if err != nil {
		that.respondWithAppError(w, "MakeMove", err)
		return
	}

	respondWithJSON(w, http.StatusOK, game)
}

func (that *Server) handleListMoves(w http.ResponseWriter, r *http.Request) {
	moves, err := that.games.GetMoves(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		that.respondWithAppError(w, "ListMoves", err)
		return
	}

	respondWithJSON(w, http.StatusOK, moves)
}

func (that *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.GetGameByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		that.respondWithAppError(w, "Board", err)
		return
	}

	respondWithJSON(w, http.StatusOK, BoardResponse{
		GameID:  game.ID,
		Status:  game.Status,
		CatTurn: game.CatTurn,
		Board:   game.BoardSnapshot(),
	})
}

func (that *Server) handleFinishGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gamePlay.FinishGame(r.Context(), mux.Vars(r)["id"], playerFrom(r))
	if err != nil {
		that.respondWithAppError(w, "FinishGame", err)
		return
	}

	respondWithJSON(w, http.StatusOK, game)
}

func (that *Server) handleCounter(w http.ResponseWriter, r *http.Request) {
	value, err := that.counter.Hit(r.Context())
	if err != nil {
		that.respondWithAppError(w, "Counter", err)
		return
	}

	respondWithJSON(w, http.StatusOK, CounterResponse{Global: value})
}

// handleCounterCurrent reports the counter without counting a view.
func (that *Server) handleCounterCurrent(w http.ResponseWriter, r *http.Request) {
	value, err := that.counter.Current(r.Context())
	if err != nil {
		that.respondWithAppError(w, "CounterCurrent", err)
		return
	}

	respondWithJSON(w, http.StatusOK, CounterResponse{Global: value})
}

// statusFor maps rejected operations to client errors; anything else is ours.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrNotAParticipant):
		return http.StatusForbidden
	case errors.Is(err, apperror.ErrInvalidCell),
		errors.Is(err, apperror.ErrIllegalMove):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperror.ErrInvalidStatus),
		errors.Is(err, apperror.ErrGameNotActive),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrOwnGame),
		errors.Is(err, apperror.ErrConcurrentUpdate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (that *Server) respondWithAppError(w http.ResponseWriter, method string, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
		respondWithError(w, code, http.StatusText(code))
		return
	}

	respondWithError(w, code, err.Error())
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal Server Error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}
