package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/vancomm/minefield/internal/app"
	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/logging"
)

func main() {
	log := logging.MustNew(config.NewLogging())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithField("development", config.Development()).Info("starting up")

	a, err := app.New(log)
	if err != nil {
		log.WithError(err).Fatal("unable to configure server")
	}
	if err := a.Start(ctx); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
	log.Info("bye")
}
