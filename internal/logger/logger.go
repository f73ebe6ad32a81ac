package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"crmapi/internal/config"
)

// New builds the application logger.
// Production emits one JSON object per line; any other environment uses the
// human-friendly development encoder.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level := parseLevel(cfg.Level)

	if cfg.Environment == "production" {
		prodConfig := zap.NewProductionConfig()
		prodConfig.Level = zap.NewAtomicLevelAt(level)
		prodConfig.EncoderConfig.TimeKey = "ts"
		prodConfig.EncoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder
		return prodConfig.Build(zap.Fields(zap.String("service", "crmapi")))
	}

	devConfig := zap.NewDevelopmentConfig()
	devConfig.Level = zap.NewAtomicLevelAt(level)
	devConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return devConfig.Build(zap.Fields(zap.String("service", "crmapi")))
}

func parseLevel(s string) zapcore.Level {
	switch s {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
