package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the process logger. Unknown levels fall back to info.
func New(level string, pretty bool) *zerolog.Logger {
	return newWithWriter(os.Stdout, level, pretty)
}

func newWithWriter(out io.Writer, level string, pretty bool) *zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	if pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	logger := zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	return &logger
}
