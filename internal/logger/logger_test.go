package logger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLoggerManager_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "screenserver.log")

	lm, err := NewLoggerManager(path, true)
	require.NoError(t, err)
	lm.SetConsole(false)

	lm.Info("HP: %d%%", 42)
	lm.Debug("отладка %s", "включена")
	lm.LogError(errors.New("boom"), "Ошибка звука")
	lm.LogError(nil, "не должно попасть в лог")
	require.NoError(t, lm.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "HP: 42%")
	assert.Contains(t, content, "отладка включена")
	assert.Contains(t, content, "Ошибка звука")
	assert.Contains(t, content, "boom")
	assert.NotContains(t, content, "не должно попасть в лог")
}

func TestNewLoggerManager_InfoLevelDropsDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	lm, err := NewLoggerManager(path, false)
	require.NoError(t, err)
	lm.SetConsole(false)

	lm.Debug("скрыто")
	lm.Info("видно")
	require.NoError(t, lm.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "скрыто")
	assert.Contains(t, string(data), "видно")
}

func TestNewFromZap_Named(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	lm := NewFromZap(zap.New(core)).Named("engine")

	lm.Error("клик не прошел: %v", "timeout")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "engine", entry.LoggerName)
	assert.Equal(t, "клик не прошел: timeout", entry.Message)
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
}
