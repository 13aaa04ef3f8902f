package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minefield/internal/config"
)

func TestNewJSON(t *testing.T) {
	t.Setenv("DEVELOPMENT", "0")
	var buf bytes.Buffer
	log, err := New(&config.Logging{Level: "info"}, &buf)
	require.NoError(t, err)

	log.WithField("rows", 9).Debug("hidden")
	log.WithField("rows", 9).Info("board created")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"board created"`)
	assert.Contains(t, buf.String(), `"rows":9`)
}

func TestNewDevelopment(t *testing.T) {
	t.Setenv("DEVELOPMENT", "1")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FILE", "")
	log, err := New(config.NewLogging(), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
}

func TestNewRotatingFile(t *testing.T) {
	t.Setenv("DEVELOPMENT", "0")
	path := filepath.Join(t.TempDir(), "minefield.log")
	log, err := New(&config.Logging{
		Level: "info", File: path, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1,
	}, &bytes.Buffer{})
	require.NoError(t, err)

	log.Info("to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New(&config.Logging{Level: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)
}
