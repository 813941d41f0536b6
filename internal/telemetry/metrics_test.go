package telemetry

import (
	"context"
	"testing"

	"narrative-assembly/models"
)

func TestInitMetricsWithDefaultProvider(t *testing.T) {
	m, err := InitMetrics()
	if err != nil {
		t.Fatalf("InitMetrics: %v", err)
	}

	ctx := context.Background()
	m.RecordRequest("POST", "/api/search", "200", 0.02)
	m.RecordSearch(ctx, []models.ExpandedKeyword{
		{Term: "nhs", Category: models.CategoryPrimary, Weight: 1},
		{Term: "hospitals", Category: models.CategorySynonym, Weight: 0.5},
	}, 3, 0.01)
	m.RecordCircuitBreakerState("MorphologyService", "open")
	m.RecordIndexBuild(ctx, 1.5, 420, true)
	m.RecordTopicFetch(ctx, false)
}

func TestNilMetricsRecordNothing(t *testing.T) {
	var m *Metrics
	m.RecordRequest("GET", "/health", "200", 0)
	m.RecordSearch(context.Background(), nil, 0, 0)
	m.RecordCircuitBreakerState("x", "closed")
	m.RecordIndexBuild(context.Background(), 0, 0, false)
	m.RecordTopicFetch(context.Background(), true)
}
