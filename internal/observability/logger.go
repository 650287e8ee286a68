package observability

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLoggerTo installs a console logger writing to out as the global logger.
func InitLoggerTo(out io.Writer, app string, timestamp, noColor bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}
	ctx := zerolog.New(output).With().Str("app", app)
	if timestamp {
		ctx = ctx.Timestamp()
	}
	logger := ctx.Logger()
	log.Logger = logger
	return logger
}
