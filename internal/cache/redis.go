package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storyviewer/internal/config"
	"storyviewer/internal/domain"
	"storyviewer/internal/repository"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

type BookCache interface {
	// Get returns nil without error on a cache miss
	Get(ctx context.Context, runID string) (*domain.Book, error)
	Set(ctx context.Context, runID string, book *domain.Book) error
}

type redisBookCache struct {
	redisClient *redis.Client
	keyPrefix   string
	ttl         time.Duration
}

func NewRedisBookCache(redisClient *redis.Client, cfg config.RedisConfig) BookCache {
	return &redisBookCache{
		redisClient: redisClient,
		keyPrefix:   "storyviewer:book:",
		ttl:         time.Duration(cfg.BookTTL) * time.Second,
	}
}

func (c *redisBookCache) Get(ctx context.Context, runID string) (*domain.Book, error) {
	val, err := c.redisClient.Get(ctx, c.keyPrefix+runID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached book %s: %w", runID, err)
	}

	var book domain.Book
	if err := json.Unmarshal(val, &book); err != nil {
		return nil, fmt.Errorf("failed to decode cached book %s: %w", runID, err)
	}
	return &book, nil
}

func (c *redisBookCache) Set(ctx context.Context, runID string, book *domain.Book) error {
	val, err := json.Marshal(book)
	if err != nil {
		return fmt.Errorf("failed to encode book %s: %w", runID, err)
	}
	if err := c.redisClient.Set(ctx, c.keyPrefix+runID, val, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache book %s: %w", runID, err)
	}
	return nil
}

type cachedRepository struct {
	repository.RunRepository
	cache BookCache
}

// NewCachedRepository serves books from cache when possible. Cache failures
// are logged and fall through to repo; they never fail a request.
func NewCachedRepository(repo repository.RunRepository, cache BookCache) repository.RunRepository {
	return &cachedRepository{
		RunRepository: repo,
		cache:         cache,
	}
}

func (r *cachedRepository) GetBook(ctx context.Context, runID string) (*domain.Book, error) {
	book, err := r.cache.Get(ctx, runID)
	if err != nil {
		log.Warnf("⚠️ Book cache read failed: %v", err)
	} else if book != nil {
		log.Debugf("Book %s served from cache", runID)
		return book, nil
	}

	book, err = r.RunRepository.GetBook(ctx, runID)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, runID, book); err != nil {
		log.Warnf("⚠️ Book cache write failed: %v", err)
	}
	return book, nil
}
