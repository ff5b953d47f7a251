// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logger provides leveled structured logging for the helper.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the logging surface the core components depend on.
// *zap.Logger satisfies it directly.
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	Sync() error
}

// New builds a zap-backed logger. level is one of debug, info, warn, or
// error; an unrecognized value keeps zap's default. pretty selects the
// colored development encoder for terminal use.
func New(level string, pretty bool) Logger {
	var cfg zap.Config
	if pretty {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}

	if lvl, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	log, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return log
}

// Nop returns a logger that discards everything.
func Nop() Logger { return zap.NewNop() }

// Field constructors re-exported from zap so callers do not import it directly.
func String(key, val string) zap.Field  { return zap.String(key, val) }
func Int(key string, val int) zap.Field { return zap.Int(key, val) }
func Err(err error) zap.Field           { return zap.Error(err) }
