package cache

import (
	"context"
	"fmt"
	"sync/atomic"

	"storyviewer/internal/repository"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Warm loads every listed run's book through repo so a cached repository is
// populated before the first request. Individual failures are logged and
// skipped. It returns the number of books loaded.
func Warm(ctx context.Context, repo repository.RunRepository, workers int) (int, error) {
	runs, err := repo.ListRuns(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list runs: %w", err)
	}
	if workers <= 0 {
		workers = 1
	}

	var loaded atomic.Int32
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, run := range runs {
		runID := run.ID
		g.Go(func() error {
			if _, err := repo.GetBook(ctx, runID); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				log.Warnf("⚠️ Skipping cache warm for %s: %v", runID, err)
				return nil
			}
			loaded.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return int(loaded.Load()), err
	}
	log.Infof("✅ Warmed book cache with %d of %d runs", loaded.Load(), len(runs))
	return int(loaded.Load()), nil
}
