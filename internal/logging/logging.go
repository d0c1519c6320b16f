package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger. pretty selects the console
// writer used in development; otherwise lines are JSON. If w is nil,
// os.Stderr is used. An unknown level falls back to info.
func Init(level string, pretty bool, w ...io.Writer) {
	var writer io.Writer = os.Stderr
	if len(w) > 0 && w[0] != nil {
		writer = w[0]
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if pretty {
		writer = zerolog.ConsoleWriter{Out: writer, NoColor: writer != os.Stderr}
	}
	log.Logger = zerolog.New(writer).With().Timestamp().Logger()
}

// New returns a logger with a "component" field for package-scoped logging.
func New(component string) zerolog.Logger {
	return log.Logger.With().Str("component", component).Logger()
}
