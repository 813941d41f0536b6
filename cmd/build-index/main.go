package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"narrative-assembly/internal/cooccurrence"
	"narrative-assembly/internal/corpus"
	"narrative-assembly/internal/logger"
)

func main() {
	window := flag.Int("window", cooccurrence.DefaultWindowSize, "co-occurrence window size in tokens")
	minCount := flag.Int("min-count", cooccurrence.DefaultMinCount, "minimum pair count")
	topN := flag.Int("top", cooccurrence.DefaultTopN, "partners kept per term")
	transcripts := flag.String("transcripts", "./data/transcripts", "directory containing manifest.json")
	output := flag.String("output", "./data/co-occurrence.json", "index file to write")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	logger.InitCLILogger(os.Stderr, *verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	repo := corpus.NewFileRepository(*transcripts)
	corpusFiles, err := repo.LoadAll(ctx)
	if errors.Is(err, corpus.ErrManifestNotFound) {
		fmt.Fprintf(os.Stderr, "No manifest found at %s. Run the normalizer first.\n", repo.ManifestPath())
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load transcripts: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d transcripts\n", len(corpusFiles))

	started := time.Now()
	index, err := cooccurrence.Build(ctx, corpusFiles, cooccurrence.Options{
		WindowSize: *window,
		MinCount:   *minCount,
		TopN:       *topN,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Build failed: %v\n", err)
		os.Exit(1)
	}

	if err := cooccurrence.SaveFile(*output, index); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write index: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d terms to %s in %s\n", len(index), *output, time.Since(started).Round(time.Millisecond))
}
