package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/middleware"
	"github.com/vancomm/minefield/internal/repository"
)

// PlayerStore is implemented by [repository.Queries].
type PlayerStore interface {
	CreatePlayer(ctx context.Context, params repository.CreatePlayerParams) (*repository.Player, error)
	FetchPlayer(ctx context.Context, username string) (*repository.Player, error)
}

type AuthHandler struct {
	log      logrus.FieldLogger
	players  PlayerStore
	cookies  *config.Cookies
	hashCost int
}

func NewAuthHandler(
	log logrus.FieldLogger, players PlayerStore, cookies *config.Cookies,
) *AuthHandler {
	return &AuthHandler{
		log:      log,
		players:  players,
		cookies:  cookies,
		hashCost: bcrypt.DefaultCost,
	}
}

var (
	ErrBadAuthBody        = errors.New("request body must contain url-encoded username and password")
	ErrPasswordTooLong    = errors.New("password too long")
	ErrUsernameTaken      = errors.New("username taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type PlayerInfo struct {
	PlayerId int64  `json:"player_id"`
	Username string `json:"username"`
}

type Status struct {
	LoggedIn bool        `json:"logged_in"`
	Player   *PlayerInfo `json:"player,omitempty"`
}

func credentials(r *http.Request) (username, password string, err error) {
	if err = r.ParseForm(); err != nil {
		return
	}
	username, password = r.PostFormValue("username"), r.PostFormValue("password")
	if username == "" || password == "" {
		err = ErrBadAuthBody
	}
	return
}

func (h AuthHandler) login(w http.ResponseWriter, player *repository.Player) {
	claims := &config.PlayerClaims{PlayerId: player.PlayerId, Username: player.Username}
	if err := h.cookies.Refresh(w, claims); err != nil {
		internalError(w, h.log, "unable to refresh cookies", err)
		return
	}
	sendJSONOrLog(w, h.log, Status{
		LoggedIn: true,
		Player:   &PlayerInfo{player.PlayerId, player.Username},
	})
}

func (h AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	username, password, err := credentials(r)
	if err != nil {
		sendError(w, h.log, http.StatusBadRequest, ErrBadAuthBody)
		return
	}
	// bcrypt ignores everything past 72 bytes
	if len(password) > 72 {
		sendError(w, h.log, http.StatusBadRequest, ErrPasswordTooLong)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.hashCost)
	if err != nil {
		internalError(w, h.log, "unable to hash password", err)
		return
	}

	player, err := h.players.CreatePlayer(r.Context(), repository.CreatePlayerParams{
		Username:     username,
		PasswordHash: hash,
	})
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		sendError(w, h.log, http.StatusConflict, ErrUsernameTaken)
		return
	}
	if err != nil {
		internalError(w, h.log, "unable to insert player", err)
		return
	}

	h.log.WithField("username", username).Info("registered player")
	h.login(w, player)
}

func (h AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	username, password, err := credentials(r)
	if err != nil {
		sendError(w, h.log, http.StatusBadRequest, ErrBadAuthBody)
		return
	}

	player, err := h.players.FetchPlayer(r.Context(), username)
	if errors.Is(err, repository.ErrNotFound) {
		sendError(w, h.log, http.StatusUnauthorized, ErrInvalidCredentials)
		return
	}
	if err != nil {
		internalError(w, h.log, "unable to fetch player", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword(player.PasswordHash, []byte(password)); err != nil {
		sendError(w, h.log, http.StatusUnauthorized, ErrInvalidCredentials)
		return
	}

	h.login(w, player)
}

func (h AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.cookies.Clear(w)
	sendJSONOrLog(w, h.log, Status{LoggedIn: false})
}

func (h AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.PlayerClaims(r.Context())
	if !ok {
		h.cookies.Clear(w)
		sendJSONOrLog(w, h.log, Status{LoggedIn: false})
		return
	}
	if err := h.cookies.Refresh(w, claims); err != nil {
		internalError(w, h.log, "unable to refresh cookies", err)
		return
	}
	sendJSONOrLog(w, h.log, Status{
		LoggedIn: true,
		Player:   &PlayerInfo{claims.PlayerId, claims.Username},
	})
}
