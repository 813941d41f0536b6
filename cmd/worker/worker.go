package main

import (
	"context"
	"log"

	"github.com/hibiken/asynq"

	"narrative-assembly/internal/config"
	"narrative-assembly/internal/corpus"
	"narrative-assembly/internal/logger"
	"narrative-assembly/internal/queue"
	"narrative-assembly/internal/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	if !cfg.RedisEnabled() {
		log.Fatal("REDIS_URL is required for the worker")
	}

	logger.InitLogger(cfg)

	metrics, err := telemetry.InitMetrics()
	if err != nil {
		log.Fatal("Failed to initialize metrics:", err)
	}

	var repo corpus.Repository
	if cfg.TranscriptSource == "mongo" {
		mongoClient, err := config.ConnectMongoDB(cfg)
		if err != nil {
			log.Fatal("Failed to connect to MongoDB:", err)
		}
		defer mongoClient.Disconnect(context.Background())
		repo = corpus.NewMongoRepository(mongoClient.Database(cfg.DBName))
	} else {
		repo = corpus.NewFileRepository(cfg.TranscriptDir)
	}

	redisOpt, err := config.RedisOptions(cfg)
	if err != nil {
		log.Fatal(err)
	}

	// Rebuilds hold the whole corpus in memory, so run one at a time.
	server := asynq.NewServer(
		queue.RedisConnOpt(redisOpt),
		asynq.Config{
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Error("Task failed", "type", task.Type(), "error", err)
			}),
		},
	)

	processor := queue.NewTaskProcessor(repo, cfg.IndexPath, metrics)

	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.TaskRebuildIndex, processor.RebuildIndex)

	logger.Info("Starting Asynq worker", "redis", redisOpt.Addr, "index_path", cfg.IndexPath, "source", cfg.TranscriptSource)

	if err := server.Run(mux); err != nil {
		log.Fatal("Failed to start worker:", err)
	}
}
