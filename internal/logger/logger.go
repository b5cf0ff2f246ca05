package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options controls how the process logger is built.
type Options struct {
	Verbose bool
	JSON    bool
	Out     io.Writer // defaults to os.Stderr
}

// New builds the process logger and installs it as the zerolog global.
// Logs go to stderr so stdout stays free for command output.
func New(opts Options) zerolog.Logger {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	level := zerolog.InfoLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}

	var logger zerolog.Logger
	if opts.JSON {
		zerolog.TimeFieldFormat = time.RFC3339
		logger = zerolog.New(out).With().Timestamp().Logger()
	} else {
		output := zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
		logger = zerolog.New(output).With().Timestamp().Logger()
	}
	logger = logger.Level(level)
	log.Logger = logger
	return logger
}
