package config

import "os"

type Logging struct {
	Level string
	// File enables rotating file output next to stderr when set.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

func NewLogging() *Logging {
	level := "info"
	if Development() {
		level = "debug"
	}
	return &Logging{
		Level:      lookupOr("LOG_LEVEL", level),
		File:       os.Getenv("LOG_FILE"),
		MaxSizeMB:  50,
		MaxBackups: 3,
		MaxAgeDays: 28,
	}
}
