package handlers

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/game"
	"github.com/vancomm/minefield/internal/middleware"
)

type GameHandler struct {
	log     logrus.FieldLogger
	service *game.Service
	ws      *config.WebSocket
}

func NewGameHandler(
	log logrus.FieldLogger, service *game.Service, ws *config.WebSocket,
) *GameHandler {
	return &GameHandler{log: log, service: service, ws: ws}
}

func playerId(r *http.Request) *int64 {
	claims, ok := middleware.PlayerClaims(r.Context())
	if !ok {
		return nil
	}
	return &claims.PlayerId
}

// sendGameError maps service errors onto HTTP statuses.
func (h GameHandler) sendGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrInvalidParams),
		errors.Is(err, game.ErrOutOfBounds):
		sendError(w, h.log, http.StatusBadRequest, err)
	case errors.Is(err, game.ErrNotFound):
		sendError(w, h.log, http.StatusNotFound, err)
	case errors.Is(err, game.ErrForbidden):
		sendError(w, h.log, http.StatusForbidden, err)
	case errors.Is(err, game.ErrGameOver):
		sendError(w, h.log, http.StatusConflict, err)
	default:
		internalError(w, h.log, "game operation failed", err)
	}
}

func (h GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	var params game.Params
	if err := decodeQuery(&params, r); err != nil {
		sendError(w, h.log, http.StatusBadRequest, err)
		return
	}

	session, err := h.service.NewGame(r.Context(), params, playerId(r))
	if err != nil {
		h.sendGameError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	sendJSONOrLog(w, h.log, NewGameSessionDTO(session))
}

func (h GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(r)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	session, err := h.service.Fetch(r.Context(), id)
	if err != nil {
		h.sendGameError(w, err)
		return
	}

	sendJSONOrLog(w, h.log, NewGameSessionDTO(session))
}

func (h GameHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(r)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var pos PositionDTO
	if err := decodeQuery(&pos, r); err != nil {
		sendError(w, h.log, http.StatusBadRequest, err)
		return
	}

	session, err := h.service.Reveal(r.Context(), id, playerId(r), pos.Row, pos.Col)
	if err != nil {
		h.sendGameError(w, err)
		return
	}

	sendJSONOrLog(w, h.log, NewGameSessionDTO(session))
}

func (h GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(r)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	session, err := h.service.Forfeit(r.Context(), id, playerId(r))
	if err != nil {
		h.sendGameError(w, err)
		return
	}

	sendJSONOrLog(w, h.log, NewGameSessionDTO(session))
}

func (h GameHandler) PlayerGames(w http.ResponseWriter, r *http.Request) {
	player := playerId(r)
	if player == nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	sessions, err := h.service.PlayerGames(r.Context(), *player)
	if err != nil {
		internalError(w, h.log, "unable to list player games", err)
		return
	}

	dtos := make([]*GameSessionDTO, 0, len(sessions))
	for i := range sessions {
		dtos = append(dtos, NewGameSessionDTO(&sessions[i]))
	}
	sendJSONOrLog(w, h.log, dtos)
}
