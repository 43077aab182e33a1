package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"DEBUG", LevelDebug, false},
		{"info", LevelInfo, false},
		{"", LevelInfo, false},
		{"warn", LevelWarn, false},
		{"Warning", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "UNKNOWN", Level(42).String())
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New()
	l.SetOutput(&buf)
	l.SetLevel(LevelWarn)

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message %d", 3)
	l.Error("error message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "[WARN] warn message 3")
	assert.Contains(t, out, "[ERROR] error message")
}

func TestLogger_ConfigureFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kaam.log")

	l := New()
	require.NoError(t, l.Configure("debug", path))
	l.Debug("rewrote %d lines", 4)
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[DEBUG] rewrote 4 lines")
}

func TestLogger_ConfigureRejectsBadLevel(t *testing.T) {
	l := New()
	assert.Error(t, l.Configure("chatty", ""))
}

func TestNew_ReadsEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.log")
	t.Setenv("KAAM_LOG_LEVEL", "error")
	t.Setenv("KAAM_LOG_FILE", path)

	l := New()
	defer func() { _ = l.Close() }()

	l.Warn("dropped")
	l.Error("kept")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "kept")
}

func TestLogger_DiscardsByDefault(t *testing.T) {
	t.Setenv("KAAM_LOG_FILE", "")
	l := New()
	// No output configured: must not panic and must not need closing.
	l.Error("nowhere")
	assert.NoError(t, l.Close())
}
