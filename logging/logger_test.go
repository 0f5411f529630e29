package logging

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLBeforeInit(t *testing.T) {
	require.NotNil(t, L())
	require.NotPanics(t, func() {
		L().Infow("ignored", "key", "value")
		L().With("component", "test").Debug("ignored")
	})
}

func TestNilLoggerWith(t *testing.T) {
	var l *Logger
	require.Same(t, noopLogger, l.With("a", 1))
}

func TestDetectLevel(t *testing.T) {
	tests := []struct {
		env  string
		want zapcore.Level
	}{
		{"", zapcore.InfoLevel},
		{"debug", zapcore.DebugLevel},
		{"WARN", zapcore.WarnLevel},
		{"bogus", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.env)
			require.Equal(t, tt.want, detectLevel())
		})
	}
}

func TestLogPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)
	require.Equal(t, filepath.Join(dir, "runer", "runer.log"), logPath("runer"))
}
