// Package logging builds the application logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mdewilde/treecomp/pkg/config"
)

// New constructs a zerolog logger from the logging configuration.
// Console format writes human-readable lines; json writes structured
// events. When a file is configured, output goes through size-based
// rotation instead of stderr.
func New(cfg config.LoggingConfig) (zerolog.Logger, error) {
	if !cfg.Enabled {
		return zerolog.Nop(), nil
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var out io.Writer = os.Stderr
	if cfg.File != "" {
		out = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			Compress:   true,
		}
	}

	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}
