package logger

import (
	"context"
	"os"
	"shareit/config"
	"shareit/shared/constant"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}

	log.Logger = log.Output(output)
	log.Trace().Msg("Zerolog initialized.")
}

// UseJSON switches the global logger to structured JSON output outside development.
func UseJSON(cfg *config.Config) {
	if cfg.Server.Env == constant.ServerEnvDevelopment || cfg.Server.Env == constant.Empty {
		return
	}

	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Str("app", cfg.App.Name).Logger()
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// WithRequestID returns a context carrying a logger tagged with the request id.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	l := log.With().Str("request_id", requestID).Logger()

	return l.WithContext(ctx)
}

func SetLogLevel(config *config.Config) {
	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil {
		level = zerolog.TraceLevel
		log.Trace().Str("loglevel", level.String()).Msg("Environment has no log level set up, using default.")
	} else {
		log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
	}

	zerolog.SetGlobalLevel(level)
}
