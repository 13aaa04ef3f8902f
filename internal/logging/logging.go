package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/minefield/internal/config"
)

// New builds the application logger: colored text in development, JSON
// otherwise, plus a rotating JSON file when cfg.File is set.
func New(cfg *config.Logging, out io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(level)
	if config.Development() {
		log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	if cfg.File != "" {
		hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Level:      level,
			Formatter:  &logrus.JSONFormatter{TimestampFormat: time.RFC3339},
		})
		if err != nil {
			return nil, fmt.Errorf("unable to open log file %s: %w", cfg.File, err)
		}
		log.AddHook(hook)
	}

	return log, nil
}

// MustNew is [New] writing to stderr that exits on failure.
func MustNew(cfg *config.Logging) *logrus.Logger {
	log, err := New(cfg, os.Stderr)
	if err != nil {
		logrus.Fatal(err)
	}
	return log
}
