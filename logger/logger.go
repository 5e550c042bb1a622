package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a JSON zap logger.
// Debug mode keeps JSON output but lowers the level to debug.
func New(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "json"
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.InitialFields = map[string]any{"service": "rogainizer"}
	return cfg.Build()
}

// ForStatus picks the level a request log line is written at.
func ForStatus(l *zap.Logger, status int) func(string, ...zap.Field) {
	switch {
	case status >= 500:
		return l.Error
	case status >= 400:
		return l.Warn
	default:
		return l.Info
	}
}
