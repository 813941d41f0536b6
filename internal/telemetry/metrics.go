package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"narrative-assembly/models"
)

// Metrics holds all application metrics. A nil *Metrics records nothing.
type Metrics struct {
	RequestCounter      metric.Int64Counter
	RequestDuration     metric.Float64Histogram
	Searches            metric.Int64Counter
	SearchDuration      metric.Float64Histogram
	ClipsReturned       metric.Int64Histogram
	KeywordsExpanded    metric.Int64Counter
	CircuitBreakerState metric.Int64Counter
	IndexBuildDuration  metric.Float64Histogram
	TopicFetches        metric.Int64Counter
}

// InitMetrics initializes all application metrics
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter("narrative-assembly")

	requestCounter, err := meter.Int64Counter(
		"http.requests.total",
		metric.WithDescription("Total HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	requestDuration, err := meter.Float64Histogram(
		"http.request.duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	searches, err := meter.Int64Counter(
		"search.requests.total",
		metric.WithDescription("Total clip searches"),
	)
	if err != nil {
		return nil, err
	}

	searchDuration, err := meter.Float64Histogram(
		"search.duration",
		metric.WithDescription("Expansion plus transcript search time in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	clipsReturned, err := meter.Int64Histogram(
		"search.clips.returned",
		metric.WithDescription("Clips returned per search"),
	)
	if err != nil {
		return nil, err
	}

	keywordsExpanded, err := meter.Int64Counter(
		"search.keywords.expanded",
		metric.WithDescription("Expanded keywords by category"),
	)
	if err != nil {
		return nil, err
	}

	circuitBreakerState, err := meter.Int64Counter(
		"circuit_breaker.state_changes",
		metric.WithDescription("Circuit breaker state changes"),
	)
	if err != nil {
		return nil, err
	}

	indexBuildDuration, err := meter.Float64Histogram(
		"cooccurrence.build.duration",
		metric.WithDescription("Co-occurrence index build duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	topicFetches, err := meter.Int64Counter(
		"topics.fetches.total",
		metric.WithDescription("Trending topic feed fetches"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		RequestCounter:      requestCounter,
		RequestDuration:     requestDuration,
		Searches:            searches,
		SearchDuration:      searchDuration,
		ClipsReturned:       clipsReturned,
		KeywordsExpanded:    keywordsExpanded,
		CircuitBreakerState: circuitBreakerState,
		IndexBuildDuration:  indexBuildDuration,
		TopicFetches:        topicFetches,
	}, nil
}

// RecordRequest records HTTP request metrics
func (m *Metrics) RecordRequest(method, path, status string, duration float64) {
	if m == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("http.path", path),
		attribute.String("http.status", status),
	}

	m.RequestCounter.Add(context.Background(), 1, metric.WithAttributes(attrs...))
	m.RequestDuration.Record(context.Background(), duration, metric.WithAttributes(attrs...))
}

// RecordSearch records one completed search and the categories its keywords came from.
func (m *Metrics) RecordSearch(ctx context.Context, keywords []models.ExpandedKeyword, clips int, duration float64) {
	if m == nil {
		return
	}
	m.Searches.Add(ctx, 1)
	m.SearchDuration.Record(ctx, duration)
	m.ClipsReturned.Record(ctx, int64(clips))

	counts := make(map[models.KeywordCategory]int64, len(models.Categories))
	for _, k := range keywords {
		counts[k.Category]++
	}
	for category, n := range counts {
		m.KeywordsExpanded.Add(ctx, n, metric.WithAttributes(attribute.String("keyword.category", string(category))))
	}
}

// RecordCircuitBreakerState records circuit breaker state changes
func (m *Metrics) RecordCircuitBreakerState(service, state string) {
	if m == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("service", service),
		attribute.String("state", state),
	}

	m.CircuitBreakerState.Add(context.Background(), 1, metric.WithAttributes(attrs...))
}

// RecordIndexBuild records a co-occurrence rebuild and how many terms it produced.
func (m *Metrics) RecordIndexBuild(ctx context.Context, duration float64, terms int, success bool) {
	if m == nil {
		return
	}
	m.IndexBuildDuration.Record(ctx, duration, metric.WithAttributes(
		attribute.Int("cooccurrence.terms", terms),
		attribute.Bool("cooccurrence.success", success),
	))
}

// RecordTopicFetch records a feed fetch; fallback is true when curated topics were served instead.
func (m *Metrics) RecordTopicFetch(ctx context.Context, fallback bool) {
	if m == nil {
		return
	}
	m.TopicFetches.Add(ctx, 1, metric.WithAttributes(attribute.Bool("topics.fallback", fallback)))
}
