package logging

import (
	"os"
	"strings"

	"github.com/rs/zerolog"

	"secops/internal/config"
)

// New builds the process logger. Unknown levels fall back to info.
func New(cfg config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).
		Level(level).
		With().
		Timestamp().
		Str("service", cfg.AppName).
		Logger()
}
