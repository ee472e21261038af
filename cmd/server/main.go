package main

import (
	"context"
	"errors"
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
	flags := config.Flags("storyviewer-server")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		log.Fatalf("Failed to parse flags: %v", err)
	}

	cfg, err := config.Load(flags)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	closer, err := logging.Setup(cfg.Log, os.Stderr)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer closer.Close()

	log.Infof("Starting book server for %s", cfg.Server.OutputsDir)

	app, err := container.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Serve(ctx); err != nil {
		log.Errorf("❌ Server exited with error: %v", err)
		return
	}

	log.Info("Server stopped")
}
