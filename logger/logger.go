package logger

import (
	"context"
	"io"
	"os"

	"github.com/nevrodda11/torny-aws-api/config"
	"github.com/rs/zerolog"
)

// New builds the root JSON logger at the configured level.
func New(cfg *config.Config) zerolog.Logger {
	return NewWithWriter(os.Stdout, cfg.LogLevel)
}

func NewWithWriter(w io.Writer, level string) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	logger := zerolog.New(w).
		With().
		Timestamp().
		Caller().
		Logger().
		Level(lvl)

	zerolog.DefaultContextLogger = &logger
	return logger
}

// FromContext returns the request-scoped logger, falling back to the default one.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}
