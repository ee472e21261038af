package container

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"storyviewer/internal/cache"
	"storyviewer/internal/client"
	"storyviewer/internal/config"
	"storyviewer/internal/repository"
	"storyviewer/internal/server"
	"storyviewer/internal/state"
	"storyviewer/internal/ui"
	"storyviewer/internal/viewer"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const warmWorkers = 4

// Container holds all initialized components
type Container struct {
	Config *config.Config

	// viewer side
	Client client.BookClient
	State  *state.ViewerState
	Viewer *viewer.Viewer
	Runner *viewer.Runner

	// server side
	Repository repository.RunRepository
	Server     *server.Server

	redis *redis.Client
}

// NewViewer wires the book viewer against the configured book API
func NewViewer(cfg *config.Config) *Container {
	s := state.New()
	bookClient := client.NewBookClient(cfg.Viewer)

	return &Container{
		Config: cfg,
		Client: bookClient,
		State:  s,
		Viewer: viewer.New(s),
		Runner: viewer.NewRunner(bookClient),
	}
}

// NewServer wires the book API server, with the redis book cache when enabled
func NewServer(cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	var repo repository.RunRepository = repository.NewRunRepository(cfg.Server.OutputsDir)

	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})

		// Test connection
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("✅ Connected to Redis successfully")

		container.redis = rdb
		repo = cache.NewCachedRepository(repo, cache.NewRedisBookCache(rdb, cfg.Redis))
	}

	container.Repository = repo
	container.Server = server.New(cfg.Server, server.NewHandler(repo, cfg.Server.OutputsDir))

	return container, nil
}

// Serve runs the server until ctx is cancelled. With the cache enabled, the
// cache is warmed alongside.
func (c *Container) Serve(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return c.Server.Run(ctx)
	})

	if c.redis != nil {
		g.Go(func() error {
			if _, err := cache.Warm(ctx, c.Repository, warmWorkers); err != nil && ctx.Err() == nil {
				log.Warnf("⚠️ Cache warm failed: %v", err)
			}
			return nil
		})
	}

	return g.Wait()
}

// RunInteractive runs the terminal viewer until the user quits or ctx ends
func (c *Container) RunInteractive(ctx context.Context) error {
	program := tea.NewProgram(
		ui.NewModel(ctx, c.Viewer, c.Runner),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("viewer exited: %w", err)
	}
	return nil
}

// Snapshot loads the catalog and first run headlessly, advances the
// configured number of pages and writes the page as HTML.
func (c *Container) Snapshot(ctx context.Context) error {
	session := viewer.NewSession(c.Viewer, c.Runner)
	session.Start(ctx)

	for i := 0; i < c.Config.Pages; i++ {
		if !session.Next() {
			break
		}
	}

	screen := session.Screen()
	if !screen.BookVisible {
		log.Warnf("⚠️ No page to show: %s", screen.Status)
	}

	f, err := os.Create(c.Config.Snapshot)
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}
	if err := ui.WriteHTML(f, screen); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to render snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	log.Infof("✅ Snapshot written to %s", c.Config.Snapshot)
	return nil
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			return fmt.Errorf("failed to close Redis: %w", err)
		}
	}

	log.Info("Container shut down successfully")
	return nil
}
