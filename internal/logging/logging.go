// Package logging builds the zerolog loggers used by the command line.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options configures a logger.
type Options struct {
	// Level is a zerolog level name ("debug", "info", ...). Empty means info.
	Level string
	// Color enables ANSI colors in console output.
	Color bool
	// JSON writes one JSON object per event instead of console lines.
	JSON bool
}

// New creates a logger writing to w.
func New(w io.Writer, opts Options) (zerolog.Logger, error) {
	level := zerolog.InfoLevel

	if opts.Level != "" {
		var err error

		level, err = zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
	}

	if opts.JSON {
		return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
	}

	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.DateTime,
		NoColor:    !opts.Color,
	}

	console.FormatLevel = func(i any) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}

	console.FormatFieldName = func(i any) string {
		return fmt.Sprintf(" %s=", i)
	}

	console.FormatFieldValue = func(i any) string {
		return fmt.Sprintf("%v", i)
	}

	return zerolog.New(console).Level(level).With().Timestamp().Logger(), nil
}
