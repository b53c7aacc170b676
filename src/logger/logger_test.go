package logger

import (
	"os"
	"path/filepath"
	"testing"

	"summarizer/src/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLoggerRejectsUnknownLevel(t *testing.T) {
	err := InitLogger(model.LogConfig{Level: "loud"})
	assert.Error(t, err)
}

func TestInitLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	require.NoError(t, InitLogger(model.LogConfig{Level: "info", Format: "json", Output: "file", FilePath: path}))
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.DebugLevel) })

	Info().Str("k", "v").Msg("hello")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"hello"`)
	assert.Contains(t, string(data), `"k":"v"`)
}
