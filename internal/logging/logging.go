// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	Level  string // trace, debug, info, warn, error
	Format string // console or json
	Output string // stdout or stderr
	File   string // optional path; enables rotated file logging
}

// Setup initializes the global logger. When File is set, output goes to a
// size-rotated log file instead of the console stream.
func Setup(opts Options) error {
	level, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)

	var output io.Writer
	switch {
	case strings.TrimSpace(opts.File) != "":
		output = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		}
	case opts.Output == "stdout":
		output = os.Stdout
	default:
		output = os.Stderr
	}

	if strings.ToLower(opts.Format) == "console" && opts.File == "" {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}

	log.Logger = zerolog.New(output).With().Timestamp().Logger()
	return nil
}

// WithComponent returns a child logger tagged with a component field.
func WithComponent(component string) zerolog.Logger {
	return log.Logger.With().Str("component", component).Logger()
}
