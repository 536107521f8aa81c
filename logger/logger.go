// Package logger holds the process wide structured logger. Commands print
// user facing output through the ui package; everything diagnostic (failed
// name lookups, discarded stale resolutions, storage warnings) goes here.
package logger

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu      sync.RWMutex
	current = zap.NewNop().Sugar()
)

// Init builds a logger writing to stderr at the given level and installs it
// as the process logger. Valid levels are debug, info, warn and error.
func Init(level string) (*zap.SugaredLogger, error) {
	cfg, err := buildConfig(level)
	if err != nil {
		return nil, err
	}
	z, err := cfg.Build(zap.WithCaller(false))
	if err != nil {
		return nil, fmt.Errorf("cannot init zap logger: %w", err)
	}
	s := z.Named("jarvis-contacts").Sugar()
	Set(s)
	return s, nil
}

func buildConfig(level string) (zap.Config, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(level)))); err != nil {
		return zap.Config{}, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = lvl != zapcore.DebugLevel
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.MessageKey = "msg"
	cfg.EncoderConfig.NameKey = "logger"
	cfg.EncoderConfig.CallerKey = zapcore.OmitKey
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg, nil
}

// L returns the process logger. Before Init it is a no-op logger, so
// packages may log unconditionally, including from tests.
func L() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Set replaces the process logger. A nil logger installs a no-op one.
func Set(l *zap.SugaredLogger) {
	if l == nil {
		l = zap.NewNop().Sugar()
	}
	mu.Lock()
	current = l
	mu.Unlock()
}

// Sync flushes buffered entries. Errors from syncing stderr are ignored,
// they are expected on most terminals.
func Sync() {
	_ = L().Sync()
}
