package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

func lookupOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// Development reports whether DEVELOPMENT is set to anything but "0".
func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0"
}

type App struct {
	Addr            string
	BasePath        string
	ShutdownTimeout time.Duration
}

func NewApp() (*App, error) {
	timeout, err := time.ParseDuration(lookupOr("APP_SHUTDOWN_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("unable to parse APP_SHUTDOWN_TIMEOUT: %w", err)
	}
	app := &App{
		Addr:            lookupOr("APP_ADDR", ":8080"),
		BasePath:        os.Getenv("APP_BASE_PATH"),
		ShutdownTimeout: timeout,
	}
	return app, nil
}

// Limits bounds the boards players may request.
type Limits struct {
	MaxRows    int
	MaxColumns int
}

func NewLimits() (*Limits, error) {
	maxRows, err := strconv.Atoi(lookupOr("GAME_MAX_ROWS", "100"))
	if err != nil {
		return nil, fmt.Errorf("unable to convert GAME_MAX_ROWS to int: %w", err)
	}
	maxColumns, err := strconv.Atoi(lookupOr("GAME_MAX_COLUMNS", "100"))
	if err != nil {
		return nil, fmt.Errorf("unable to convert GAME_MAX_COLUMNS to int: %w", err)
	}
	if maxRows <= 0 || maxColumns <= 0 {
		return nil, fmt.Errorf("game limits must be positive")
	}
	return &Limits{MaxRows: maxRows, MaxColumns: maxColumns}, nil
}
