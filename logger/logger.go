package logger

import (
	"fmt"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	base  atomic.Pointer[zap.Logger]
)

func init() {
	base.Store(zap.NewNop())
}

// Init builds the process logger. development switches to the console encoder.
func Init(levelName string, development bool) error {
	SetLevel(levelName)

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = level

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("error creating new logger: %w", err)
	}
	base.Store(l)
	return nil
}

// Replace swaps the underlying logger; tests use it with zaptest/observer cores.
func Replace(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	base.Store(l)
}

func L() *zap.Logger {
	return base.Load()
}

func SetLevel(name string) {
	if strings.EqualFold(strings.TrimSpace(name), "debug") {
		level.SetLevel(zapcore.DebugLevel)
		return
	}

	level.SetLevel(zapcore.InfoLevel)
}

func IsDebugEnabled() bool {
	return level.Enabled(zapcore.DebugLevel)
}

func Debugf(format string, v ...any) {
	if !IsDebugEnabled() {
		return
	}

	L().Debug(fmt.Sprintf(format, v...))
}

func Info(msg string, fields ...zap.Field) {
	L().Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	L().Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	L().Error(msg, fields...)
}

func Fatal(msg string, fields ...zap.Field) {
	L().Fatal(msg, fields...)
}

func Sync() {
	_ = L().Sync()
}
