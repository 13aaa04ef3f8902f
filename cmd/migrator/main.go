package main

import (
	"errors"
	"flag"

	"github.com/golang-migrate/migrate/v4"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/database"
	"github.com/vancomm/minefield/internal/logging"
)

var down bool

func init() {
	flag.BoolVar(&down, "down", false, "roll back every migration instead of applying them")
}

func main() {
	flag.Parse()
	log := logging.MustNew(config.NewLogging())

	url, err := config.DatabaseURL()
	if err != nil {
		log.WithError(err).Fatal("no database configured")
	}

	migrator, err := database.NewMigrator(url, database.Migrations())
	if err != nil {
		log.WithError(err).Fatal("unable to create migrator")
	}
	defer migrator.Close()

	if down {
		err = migrator.Down()
	} else {
		err = migrator.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.WithError(err).Fatal("migration failed")
	}

	version, dirty, err := migrator.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		log.Info("database is empty")
		return
	}
	if err != nil {
		log.WithError(err).Fatal("unable to check migration version")
	}
	log.WithFields(logrus.Fields{
		"version": version,
		"dirty":   dirty,
	}).Info("migration successful")
}
