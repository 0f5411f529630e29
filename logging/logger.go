package logging

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logger *Logger

	noopLogger = &Logger{zap.NewNop().Sugar()}
)

// Logger wraps zap's SugaredLogger.
type Logger struct {
	*zap.SugaredLogger
}

// With adds structured fields and returns a new logger.
func (l *Logger) With(args ...interface{}) *Logger {
	if l == nil {
		return noopLogger
	}
	return &Logger{l.SugaredLogger.With(args...)}
}

// L returns the global logger, or a no-op logger before Init.
func L() *Logger {
	if logger == nil {
		return noopLogger
	}
	return logger
}

// Init sets up the global logger. Entries only go to a rotated file so
// that command output on stdout stays untouched.
//
//   - RUNER_ENV=dev   console-encoded entries
//   - otherwise       JSON entries
//
// LOG_LEVEL picks the level (debug, info, warn, error); info if unset.
func Init(appName string) {
	mode := detectMode()

	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   logPath(appName),
		MaxSize:    5, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	})

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	var encoder zapcore.Encoder
	if mode == "dev" {
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, writer, zap.NewAtomicLevelAt(detectLevel()))
	logger = &Logger{zap.New(core, zap.AddCaller()).Sugar()}
}

// Sync flushes buffered entries.
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}

func detectMode() string {
	if strings.EqualFold(os.Getenv("RUNER_ENV"), "dev") {
		return "dev"
	}
	return "prod"
}

func detectLevel() zapcore.Level {
	lvl, err := zapcore.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL")))
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

func logPath(appName string) string {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), appName, appName+".log")
		}
		base = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(base, appName, appName+".log")
}
