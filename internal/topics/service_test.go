package topics

import (
	"context"
	"errors"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"narrative-assembly/models"
)

type stubFetcher struct {
	topics []models.TrendingTopic
	err    error
	calls  int
}

func (s *stubFetcher) Fetch(context.Context) ([]models.TrendingTopic, error) {
	s.calls++
	return s.topics, s.err
}

func TestServiceCachesSuccessfulFetch(t *testing.T) {
	fetcher := &stubFetcher{topics: []models.TrendingTopic{{Title: "t", ExtractedTopic: "brexit"}}}
	svc := NewService(fetcher, NewMemoryCache(time.Minute), nil)

	topics, cached := svc.Topics(context.Background())
	if cached || len(topics) != 1 {
		t.Fatalf("first call = %v, cached=%v", topics, cached)
	}
	topics, cached = svc.Topics(context.Background())
	if !cached || topics[0].ExtractedTopic != "brexit" {
		t.Fatalf("second call = %v, cached=%v", topics, cached)
	}
	if fetcher.calls != 1 {
		t.Errorf("fetcher called %d times", fetcher.calls)
	}
}

func TestServiceFallsBackOnError(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("feed down")}
	cache := NewMemoryCache(time.Minute)
	svc := NewService(fetcher, cache, nil)

	topics, cached := svc.Topics(context.Background())
	if cached {
		t.Error("fallback topics must not be reported as cached")
	}
	if !reflect.DeepEqual(topics, FallbackTopics) {
		t.Errorf("expected fallback topics, got %v", topics)
	}
	if _, ok := cache.Get(context.Background()); ok {
		t.Error("failed fetch must not populate the cache")
	}

	svc.Topics(context.Background())
	if fetcher.calls != 2 {
		t.Errorf("failures should be retried on the next call, calls=%d", fetcher.calls)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	now := time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)
	c := NewMemoryCache(5 * time.Minute)
	c.now = func() time.Time { return now }

	if _, ok := c.Get(context.Background()); ok {
		t.Fatal("empty cache should miss")
	}

	c.Set(context.Background(), []models.TrendingTopic{{ExtractedTopic: "nhs"}})
	if !c.FetchedAt().Equal(now) {
		t.Errorf("FetchedAt = %v", c.FetchedAt())
	}

	now = now.Add(4*time.Minute + 59*time.Second)
	if _, ok := c.Get(context.Background()); !ok {
		t.Error("entry should still be fresh")
	}

	now = now.Add(time.Second)
	if _, ok := c.Get(context.Background()); ok {
		t.Error("entry should expire at the TTL")
	}

	c.Set(context.Background(), []models.TrendingTopic{})
	c.Reset()
	if _, ok := c.Get(context.Background()); ok {
		t.Error("reset cache should miss")
	}
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	ctx := context.Background()
	c := NewRedisCache(client, time.Minute)
	c.key = "topics:test"
	defer client.Del(ctx, c.key)

	c.Set(ctx, []models.TrendingTopic{{ExtractedTopic: "Reform UK", Score: 10}})
	got, ok := c.Get(ctx)
	if !ok || len(got) != 1 || got[0].ExtractedTopic != "Reform UK" {
		t.Fatalf("Get = %v, %v", got, ok)
	}
}
