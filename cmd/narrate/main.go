package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"narrative-assembly/internal/config"
	"narrative-assembly/internal/cooccurrence"
	"narrative-assembly/internal/corpus"
	"narrative-assembly/internal/expander"
	"narrative-assembly/internal/logger"
	"narrative-assembly/internal/morphology"
	"narrative-assembly/internal/synonyms"
	"narrative-assembly/internal/topics"
	"narrative-assembly/internal/tui"
	"narrative-assembly/models"
	"narrative-assembly/services"
)

func main() {
	withTopics := flag.Bool("topics", true, "fetch trending topics for ctrl+t suggestions")
	maxClips := flag.Int("max-clips", 0, "clips per search (default DEFAULT_MAX_CLIPS)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	// The terminal belongs to the browser.
	logger.Discard()

	repo := corpus.NewFileRepository(cfg.TranscriptDir)
	store := corpus.NewStore(repo)
	snap, err := store.Reload(context.Background())
	if err != nil {
		log.Fatalf("failed to load transcripts from %s: %v", cfg.TranscriptDir, err)
	}

	index := cooccurrence.NewHolder(cfg.IndexPath)
	if _, err := index.Reload(); err != nil {
		log.Fatalf("failed to load co-occurrence index: %v", err)
	}

	dict, err := synonyms.LoadYAML(cfg.SynonymsPath)
	if err != nil {
		log.Fatalf("failed to load synonyms: %v", err)
	}

	var analyzer morphology.Analyzer = morphology.Noop{}
	if cfg.MorphologyURL != "" {
		analyzer = morphology.NewClient(morphology.Options{
			BaseURL: cfg.MorphologyURL,
			Timeout: cfg.MorphologyTimeout,
			RPM:     cfg.MorphologyRPM,
		})
	}

	search := services.NewSearchService(store, expander.New(dict, index, analyzer), nil)

	var trending []models.TrendingTopic
	if *withTopics {
		ctx, cancel := context.WithTimeout(context.Background(), 6*time.Second)
		svc := topics.NewService(topics.NewFeed(cfg.TopicsFeedURL, topics.NewExtractor(analyzer)), topics.NewMemoryCache(cfg.TopicsCacheTTL), nil)
		trending, _ = svc.Topics(ctx)
		cancel()
	}

	limit := *maxClips
	if limit <= 0 {
		limit = cfg.DefaultMaxClips
	}

	summary := fmt.Sprintf("%d transcripts, %d segments, %d indexed terms, %d synonym entries",
		len(snap.Transcripts), snap.SegmentCount(), index.Len(), dict.Len())

	m := tui.New(search, limit, trending, summary)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Fatal(err)
	}
}
