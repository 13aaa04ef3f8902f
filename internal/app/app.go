package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/database"
	"github.com/vancomm/minefield/internal/game"
	"github.com/vancomm/minefield/internal/middleware"
	"github.com/vancomm/minefield/internal/repository"
)

type App struct {
	log     *logrus.Logger
	cfg     *config.App
	limits  *config.Limits
	cookies *config.Cookies
	ws      *config.WebSocket
	router  *http.ServeMux
}

func New(log *logrus.Logger) (*App, error) {
	cfg, err := config.NewApp()
	if err != nil {
		return nil, err
	}
	limits, err := config.NewLimits()
	if err != nil {
		return nil, err
	}
	jwt, err := config.NewJWT()
	if err != nil {
		return nil, err
	}
	cookies, err := config.NewCookies(jwt)
	if err != nil {
		return nil, err
	}

	app := &App{
		log:     log,
		cfg:     cfg,
		limits:  limits,
		cookies: cookies,
		ws:      config.NewWebSocket(),
		router:  http.NewServeMux(),
	}
	return app, nil
}

func (a *App) Handler(store *repository.Store) http.Handler {
	a.loadRoutes(store, game.NewService(a.log, store, *a.limits, createRand()))
	return middleware.Wrap(
		a.router,
		middleware.Auth(a.cookies),
		middleware.Cors(),
		middleware.Logging(a.log),
	)
}

// Start migrates the database and serves until ctx is done.
func (a *App) Start(ctx context.Context) error {
	db, err := database.ConnectAndMigrate(ctx)
	if err != nil {
		return fmt.Errorf("unable to connect to db: %w", err)
	}
	defer db.Close()

	server := &http.Server{
		Addr:    a.cfg.Addr,
		Handler: a.Handler(repository.NewStore(db)),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.WithField("addr", a.cfg.Addr).Info("server listening")
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		a.log.Info("shutting down")
		return server.Shutdown(sCtx)
	})

	return g.Wait()
}
