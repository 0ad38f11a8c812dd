package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a zap logger for the given environment. "production" gets the
// JSON production logger, "development" the console development logger, and
// anything else (local runs, tests) a debug-level example logger.
func New(env string) (*zap.Logger, error) {
	switch env {
	case "production":
		return zap.NewProduction()
	case "development":
		return zap.NewDevelopment()
	default:
		conf := zap.NewDevelopmentConfig()
		conf.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		conf.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		return conf.Build()
	}
}
