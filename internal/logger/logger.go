// Package logger builds the structured logger shared by the CLI and the store.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

type Options struct {
	Level  string // debug, info, warn, error; empty keeps slog's default (info)
	Format string // text or json
	File   string // append logs to this file; empty means Output, os.DevNull discards

	// Output receives logs when File is empty. Defaults to os.Stderr so logs
	// never interleave with menu output.
	Output io.Writer
}

// New returns a logger for options. Unknown levels and formats fall back to
// the defaults and say so through the returned logger.
func New(options *Options) *slog.Logger {
	var err error

	var opts slog.HandlerOptions
	switch strings.ToLower(options.Level) {
	case "":
		opts.Level = nil
	case "debug":
		opts.Level = slog.LevelDebug
	case "info":
		opts.Level = slog.LevelInfo
	case "warn":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	default:
		bad := options.Level
		options.Level = ""
		logger := New(options)
		logger.Warn("could not parse logger level", "level", bad)
		return logger
	}

	var output io.Writer
	switch options.File {
	case "":
		output = options.Output
		if output == nil {
			output = os.Stderr
		}
	case os.DevNull:
		return slog.New(slog.DiscardHandler)
	default:
		output, err = os.OpenFile(options.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			options.File = ""
			logger := New(options)
			logger.Warn("could not open logger output", "err", err)
			return logger
		}
	}

	var handler slog.Handler
	switch strings.ToLower(options.Format) {
	case "json":
		handler = slog.NewJSONHandler(output, &opts)
	case "", "text":
		handler = slog.NewTextHandler(output, &opts)
	default:
		bad := options.Format
		options.Format = "text"
		logger := New(options)
		logger.Warn("could not parse logger format", "format", bad)
		return logger
	}

	return slog.New(handler)
}
