package shared

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/rs/zerolog"
)

// SetupLogger configures zerolog with pretty console output
func SetupLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// SetupEngineLogger returns the logger handed to the round resolver. Round
// traces are only emitted with trace enabled; otherwise warnings only.
func SetupEngineLogger(w io.Writer, trace bool) *log.Logger {
	level := log.WarnLevel
	if trace {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:  level,
		Prefix: "engine",
	})
}
