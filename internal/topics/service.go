package topics

import (
	"context"

	"narrative-assembly/internal/logger"
	"narrative-assembly/internal/telemetry"
	"narrative-assembly/models"
)

// Service serves trending topics from cache, the feed, or the curated fallback, in that order.
type Service struct {
	fetcher Fetcher
	cache   Cache
	metrics *telemetry.Metrics
}

func NewService(fetcher Fetcher, cache Cache, metrics *telemetry.Metrics) *Service {
	return &Service{fetcher: fetcher, cache: cache, metrics: metrics}
}

// Topics never fails. cached reports whether the topics came from the cache.
func (s *Service) Topics(ctx context.Context) (topics []models.TrendingTopic, cached bool) {
	if topics, ok := s.cache.Get(ctx); ok {
		return topics, true
	}

	topics, err := s.Refresh(ctx)
	if err != nil {
		return fallback(), false
	}
	return topics, false
}

// Refresh fetches the feed and caches the result. Failed fetches are not cached.
func (s *Service) Refresh(ctx context.Context) ([]models.TrendingTopic, error) {
	topics, err := s.fetcher.Fetch(ctx)
	if err != nil {
		logger.Warn("Trending topic fetch failed, serving fallback topics", "error", err)
		s.metrics.RecordTopicFetch(ctx, true)
		return nil, err
	}

	s.cache.Set(ctx, topics)
	s.metrics.RecordTopicFetch(ctx, false)
	return topics, nil
}
