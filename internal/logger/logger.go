package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/polkiloo/foodcourier/internal/config"
)

const serviceName = "foodcourier"

// New creates the JSON service logger at the configured level. Unknown levels
// fall back to info. Running with the built-in JWT secret is logged as a warning.
func New(cfg *config.Config) *slog.Logger {
	return newLogger(os.Stdout, cfg)
}

func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg != nil && cfg.LogLevel != "" {
		if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
			level = slog.LevelInfo
		}
	}
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler).With(slog.String("service", serviceName))
	if cfg != nil && cfg.UsesDefaultJWTSecret() {
		logger.Warn("auth tokens are signed with the built-in development secret; set JWT_SECRET or JWT_SECRET_FILE")
	}
	return logger
}
