package logging

import (
	"fmt"
	"io"
	"os"

	"storyviewer/internal/config"

	log "github.com/sirupsen/logrus"
)

// Setup configures the package-level logrus logger. When fallback is nil and no
// log file is configured, log output is discarded. The returned closer must be
// called on shutdown.
func Setup(cfg config.LogConfig, fallback io.Writer) (io.Closer, error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	log.SetLevel(level)

	switch cfg.Format {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		log.SetOutput(f)
		return f, nil
	}

	if fallback == nil {
		fallback = io.Discard
	}
	log.SetOutput(fallback)
	return nopCloser{}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
