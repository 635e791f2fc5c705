// Package logger builds the engine's zap loggers.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. LOG_ENV (falling back to APP_ENV) selects the
// profile: "production" emits JSON at info level with error stacktraces,
// anything else a colorized debug-level console logger for local ledgers.
func New() (*zap.Logger, error) {
	if environment() == "production" {
		return production()
	}
	return development()
}

func environment() string {
	if env := os.Getenv("LOG_ENV"); env != "" {
		return env
	}
	return os.Getenv("APP_ENV")
}

func production() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	return cfg.Build(zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

func development() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	return cfg.Build(zap.AddCaller())
}
