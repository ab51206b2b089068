package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Level maps a -v count to a log level: warn, info, debug, then trace.
func Level(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// New builds a console logger writing to w. Caller information is added
// from debug level up.
func New(w io.Writer, verbosity int) zerolog.Logger {
	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
	}

	ctx := zerolog.New(console).Level(Level(verbosity)).With().Timestamp()
	if verbosity >= 2 {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}
