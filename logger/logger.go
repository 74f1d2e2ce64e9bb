// Package logger wraps a zap sugared logger behind a small package-level API
// so the rest of the application does not depend on zap directly.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var sugar *zap.SugaredLogger

func init() {
	// Sensible default so tests and early boot logging work before Init.
	l, _ := zap.NewProduction()
	sugar = l.Sugar()
}

// Init replaces the default logger with one configured for the given level
// and environment. Unknown levels fall back to info.
func Init(level string, development bool) error {
	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		parsed = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(parsed)

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}
	sugar = l.Sugar()
	return nil
}

// Sync flushes buffered log entries. Call before process exit.
func Sync() {
	_ = sugar.Sync()
}

func Debugf(format string, args ...interface{}) { sugar.Debugf(format, args...) }
func Infof(format string, args ...interface{})  { sugar.Infof(format, args...) }
func Warnf(format string, args ...interface{})  { sugar.Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { sugar.Errorf(format, args...) }
func Fatalf(format string, args ...interface{}) { sugar.Fatalf(format, args...) }
