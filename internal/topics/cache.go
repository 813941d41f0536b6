package topics

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"narrative-assembly/internal/logger"
	"narrative-assembly/models"
)

const DefaultTTL = 5 * time.Minute

// Cache holds the last successful fetch for a limited time.
type Cache interface {
	Get(ctx context.Context) ([]models.TrendingTopic, bool)
	Set(ctx context.Context, topics []models.TrendingTopic)
}

// MemoryCache keeps topics in process with the time they were fetched.
type MemoryCache struct {
	ttl time.Duration
	now func() time.Time

	mu        sync.RWMutex
	topics    []models.TrendingTopic
	fetchedAt time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryCache{ttl: ttl, now: time.Now}
}

func (c *MemoryCache) Get(context.Context) ([]models.TrendingTopic, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.topics == nil || c.now().Sub(c.fetchedAt) >= c.ttl {
		return nil, false
	}
	return c.topics, true
}

func (c *MemoryCache) Set(_ context.Context, topics []models.TrendingTopic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.topics = topics
	c.fetchedAt = c.now()
}

// FetchedAt reports when the cached topics were stored. Zero if never.
func (c *MemoryCache) FetchedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetchedAt
}

// Reset forgets the cached topics.
func (c *MemoryCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.topics = nil
	c.fetchedAt = time.Time{}
}

// RedisCache shares topics between server replicas. Redis expires the key.
type RedisCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{client: client, key: "topics:trending", ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context) ([]models.TrendingTopic, bool) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn("Topic cache read failed", "error", err)
		}
		return nil, false
	}

	var topics []models.TrendingTopic
	if err := json.Unmarshal(data, &topics); err != nil {
		logger.Warn("Topic cache entry is corrupt", "error", err)
		return nil, false
	}
	return topics, true
}

func (c *RedisCache) Set(ctx context.Context, topics []models.TrendingTopic) {
	data, err := json.Marshal(topics)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
		logger.Warn("Topic cache write failed", "error", err)
	}
}
