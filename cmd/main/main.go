package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"storyviewer/internal/config"
	"storyviewer/internal/container"
	"storyviewer/internal/logging"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Viewer exited with error: %v", err)
	}
}

func run() error {
	flags := config.Flags("storyviewer")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	// Load configuration using viper
	cfg, err := config.Load(flags)
	if err != nil {
		return err
	}

	// the terminal belongs to the interactive viewer, so logs only go to a file there
	var fallback io.Writer = io.Discard
	if cfg.Snapshot != "" {
		fallback = os.Stderr
	}
	closer, err := logging.Setup(cfg.Log, fallback)
	if err != nil {
		return err
	}
	defer closer.Close()

	log.Infof("Starting viewer against %s", cfg.Viewer.BaseURL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := container.NewViewer(cfg)
	if cfg.Snapshot != "" {
		return app.Snapshot(ctx)
	}
	return app.RunInteractive(ctx)
}
