package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func New(env, level string) (*zap.Logger, error) {
	var cfg zap.Config
	if strings.EqualFold(strings.TrimSpace(env), "production") {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	if lvl := strings.TrimSpace(level); lvl != "" {
		parsed, err := zapcore.ParseLevel(lvl)
		if err != nil {
			return nil, err
		}
		cfg.Level = zap.NewAtomicLevelAt(parsed)
	}

	return cfg.Build()
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
