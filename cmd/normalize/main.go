package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"narrative-assembly/internal/captions"
	"narrative-assembly/internal/config"
	"narrative-assembly/internal/corpus"
	"narrative-assembly/internal/logger"
)

func main() {
	var input, output string
	flag.StringVar(&input, "input", "./data/raw", "directory of downloaded .vtt and .info.json files")
	flag.StringVar(&input, "i", "./data/raw", "shorthand for -input")
	flag.StringVar(&output, "output", "./data/transcripts", "directory to write transcript JSON and manifest.json")
	flag.StringVar(&output, "o", "./data/transcripts", "shorthand for -output")
	toMongo := flag.Bool("mongo", false, "also upsert transcripts into MongoDB (MONGO_URI, DB_NAME)")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	logger.InitCLILogger(os.Stderr, *verbose)

	if info, err := os.Stat(input); err != nil || !info.IsDir() {
		fmt.Fprintf(os.Stderr, "Input directory %s does not exist\n", input)
		os.Exit(1)
	}
	if err := os.MkdirAll(output, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	transcripts, err := captions.NormalizeDir(ctx, input, output, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Normalization failed: %v\n", err)
		os.Exit(1)
	}

	segments := 0
	for _, tr := range transcripts {
		segments += len(tr.Segments)
	}
	fmt.Printf("Normalized %d transcripts (%d segments) into %s\n", len(transcripts), segments, output)

	if !*toMongo {
		return
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	client, err := config.ConnectMongoDB(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer client.Disconnect(context.Background())

	n, err := corpus.NewMongoRepository(client.Database(cfg.DBName)).SaveAll(ctx, transcripts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Upserted %d transcripts into MongoDB\n", n)
}
