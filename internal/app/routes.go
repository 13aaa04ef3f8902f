package app

import (
	"hash/maphash"
	"math/rand/v2"
	"net/http"
	"strings"

	"github.com/vancomm/minefield/internal/game"
	"github.com/vancomm/minefield/internal/handlers"
	"github.com/vancomm/minefield/internal/repository"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) route(pattern string, h http.HandlerFunc) {
	method, path, _ := strings.Cut(pattern, " ")
	a.router.HandleFunc(method+" "+a.cfg.BasePath+path, h)
}

func (a *App) loadRoutes(store *repository.Store, service *game.Service) {
	games := handlers.NewGameHandler(a.log, service, a.ws)
	auth := handlers.NewAuthHandler(a.log, store, a.cookies)

	a.route("POST /game", games.NewGame)
	a.route("GET /game/{id}", games.Fetch)
	a.route("POST /game/{id}/reveal", games.Reveal)
	a.route("POST /game/{id}/forfeit", games.Forfeit)
	a.route("GET /game/{id}/connect", games.Connect)
	a.route("GET /player/games", games.PlayerGames)

	a.route("POST /register", auth.Register)
	a.route("POST /login", auth.Login)
	a.route("POST /logout", auth.Logout)
	a.route("GET /status", auth.Status)
}
