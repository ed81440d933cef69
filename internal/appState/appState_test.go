package appState

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/aretesun/hey-there/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("WARN"))
	assert.Equal(t, slog.LevelError, parseLevel("ERROR"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
}

func TestSetupLoggerToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hey-there.log")
	logger, closer, err := setupLogger(config.Log{LogLevel: "DEBUG", LogFile: path})
	require.NoError(t, err)
	require.NotNil(t, closer)
	defer closer.Close()

	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))
	assert.FileExists(t, path)
}
