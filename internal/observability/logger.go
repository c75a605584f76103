package observability

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const EnvLogLevel = "LIBCTL_LOG_LEVEL"

func InitLogger(app string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	logger := zerolog.New(output).
		Level(levelFromEnv()).
		With().
		Timestamp().
		Str("app", app).
		Logger()
	log.Logger = logger
	return logger
}

func levelFromEnv() zerolog.Level {
	if lvl, ok := parseLevel(os.Getenv(EnvLogLevel)); ok {
		return lvl
	}
	return zerolog.InfoLevel
}

func parseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "disable", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}
