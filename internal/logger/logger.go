// Package logger builds the zerolog logger shared by the commands.
package logger

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

func init() {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339
}

// New returns a console logger writing to w at the level selected by the
// -v count.
func New(w io.Writer, verbosity int) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    noColor(),
	}

	return zerolog.New(output).
		Level(Level(verbosity)).
		With().
		Timestamp().
		Logger()
}

// Level maps a verbosity count to a log level: 0=error, 1=warn, 2=info,
// 3=debug, 4 and above=trace.
func Level(verbosity int) zerolog.Level {
	switch {
	case verbosity == 1:
		return zerolog.WarnLevel
	case verbosity == 2:
		return zerolog.InfoLevel
	case verbosity == 3:
		return zerolog.DebugLevel
	case verbosity >= 4:
		return zerolog.TraceLevel
	default:
		return zerolog.ErrorLevel
	}
}
