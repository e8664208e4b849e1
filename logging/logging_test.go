package logging_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Jumpaku/go-genericfile/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"WARN", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, logging.ParseLevel(tt.in), tt.in)
	}
}

func TestNew_JSON(t *testing.T) {
	out := filepath.Join(t.TempDir(), "provider.log")
	logger, err := logging.New(logging.Config{Level: "info", Format: "json", OutputPath: out})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("tree", zap.String("path", "/public/reports"))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "tree", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "/public/reports", entry["path"])
}

func TestNew_Console(t *testing.T) {
	out := filepath.Join(t.TempDir(), "provider.log")
	logger, err := logging.New(logging.Config{Level: "debug", Format: "console", OutputPath: out})
	require.NoError(t, err)

	logger.Debug("create folder", zap.Bool("created", true))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "DEBUG")
	assert.Contains(t, string(data), "create folder")
	assert.Contains(t, string(data), `{"created": true}`)
}
