package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"narrative-assembly/internal/logger"
	"narrative-assembly/internal/searcher"
	"narrative-assembly/internal/telemetry"
	"narrative-assembly/models"
)

var ErrEmptyQuery = errors.New("query is required and must be a non-empty string")

// TranscriptSource returns the current corpus snapshot.
type TranscriptSource interface {
	Transcripts() []models.TranscriptFile
}

type KeywordExpander interface {
	Expand(ctx context.Context, query string) []models.ExpandedKeyword
}

// SearchService expands a query and assembles the best clips for it.
type SearchService struct {
	corpus   TranscriptSource
	expander KeywordExpander
	metrics  *telemetry.Metrics
}

func NewSearchService(corpus TranscriptSource, expander KeywordExpander, metrics *telemetry.Metrics) *SearchService {
	return &SearchService{corpus: corpus, expander: expander, metrics: metrics}
}

// Search runs one query. maxClips <= 0 returns the expanded keywords with no clips.
func (s *SearchService) Search(ctx context.Context, query string, maxClips int) (*models.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	tracer := otel.Tracer("search-service")
	ctx, span := tracer.Start(ctx, "search.assemble")
	defer span.End()

	span.SetAttributes(
		attribute.String("search.query", query),
		attribute.Int("search.max_clips", maxClips),
	)

	start := time.Now()

	keywords := s.expander.Expand(ctx, query)
	if keywords == nil {
		keywords = []models.ExpandedKeyword{}
	}

	transcripts := s.corpus.Transcripts()
	clips, err := searcher.Search(ctx, transcripts, keywords, maxClips)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	elapsed := time.Since(start)
	span.SetAttributes(
		attribute.Int("search.keywords", len(keywords)),
		attribute.Int("search.transcripts", len(transcripts)),
		attribute.Int("search.clips", len(clips)),
	)
	s.metrics.RecordSearch(ctx, keywords, len(clips), elapsed.Seconds())

	logger.Debug("Search completed",
		"query", query,
		"keywords", len(keywords),
		"clips", len(clips),
		"duration_ms", elapsed.Milliseconds(),
	)

	return &models.SearchResult{
		Query:            query,
		ExpandedKeywords: keywords,
		Clips:            clips,
		SearchTimeMs:     elapsed.Milliseconds(),
	}, nil
}

// Expand exposes the keyword expansion on its own.
func (s *SearchService) Expand(ctx context.Context, query string) ([]models.ExpandedKeyword, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	keywords := s.expander.Expand(ctx, query)
	if keywords == nil {
		keywords = []models.ExpandedKeyword{}
	}
	return keywords, nil
}

// MaxClipsOrDefault resolves an optional request value.
func MaxClipsOrDefault(requested *int, def int) int {
	if requested == nil {
		if def <= 0 {
			return searcher.DefaultMaxClips
		}
		return def
	}
	return *requested
}
