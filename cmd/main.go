package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/mongo"

	"narrative-assembly/internal/config"
	"narrative-assembly/internal/cooccurrence"
	"narrative-assembly/internal/corpus"
	"narrative-assembly/internal/expander"
	"narrative-assembly/internal/logger"
	"narrative-assembly/internal/morphology"
	"narrative-assembly/internal/queue"
	"narrative-assembly/internal/scheduler"
	"narrative-assembly/internal/synonyms"
	"narrative-assembly/internal/telemetry"
	"narrative-assembly/internal/topics"
	"narrative-assembly/middleware"
	"narrative-assembly/routes"
	"narrative-assembly/services"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.InitLogger(cfg)

	if cfg.OTelEnabled {
		environment := "development"
		if cfg.GinMode == "release" {
			environment = "production"
		}
		shutdown, err := telemetry.InitTracer("narrative-assembly", cfg.OTelEndpoint, environment)
		if err != nil {
			log.Fatal("Failed to initialize tracer:", err)
		}
		defer shutdown()
	}

	metrics, err := telemetry.InitMetrics()
	if err != nil {
		log.Fatal("Failed to initialize metrics:", err)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Transcript corpus
	var repo corpus.Repository
	if cfg.TranscriptSource == "mongo" {
		mongoClient, err := config.ConnectMongoDB(cfg)
		if err != nil {
			log.Fatal("Failed to connect to MongoDB:", err)
		}
		defer disconnectMongo(mongoClient)
		repo = corpus.NewMongoRepository(mongoClient.Database(cfg.DBName))
	} else {
		repo = corpus.NewFileRepository(cfg.TranscriptDir)
	}

	store := corpus.NewStore(repo)
	if _, err := store.Reload(ctx); err != nil {
		log.Fatal("Failed to load transcripts:", err)
	}

	index := cooccurrence.NewHolder(cfg.IndexPath)
	if _, err := index.Reload(); err != nil {
		log.Fatal("Failed to load co-occurrence index:", err)
	}
	if index.Len() == 0 {
		logger.Warn("Co-occurrence index is empty; co-occurring keywords disabled until a rebuild", "path", cfg.IndexPath)
	}

	dict, err := synonyms.LoadYAML(cfg.SynonymsPath)
	if err != nil {
		log.Fatal("Failed to load synonyms:", err)
	}

	var analyzer morphology.Analyzer = morphology.Noop{}
	if cfg.MorphologyURL != "" {
		analyzer = morphology.NewClient(morphology.Options{
			BaseURL: cfg.MorphologyURL,
			Timeout: cfg.MorphologyTimeout,
			RPM:     cfg.MorphologyRPM,
			OnStateChange: func(_, to gobreaker.State) {
				metrics.RecordCircuitBreakerState("morphology", to.String())
			},
		})
	}

	// Optional Redis: shared topic cache, rate limiting and background rebuilds
	var (
		rdb         *redis.Client
		queueClient *queue.Client
		topicCache  topics.Cache = topics.NewMemoryCache(cfg.TopicsCacheTTL)
	)
	if cfg.RedisEnabled() {
		rdb, err = config.NewRedisClient(cfg)
		if err != nil {
			log.Fatal("Failed to connect to Redis:", err)
		}
		defer rdb.Close()

		topicCache = topics.NewRedisCache(rdb, cfg.TopicsCacheTTL)
		queueClient = queue.NewClient(queue.RedisConnOpt(rdb.Options()))
		defer queueClient.Close()
	}

	searchService := services.NewSearchService(store, expander.New(dict, index, analyzer), metrics)
	topicService := topics.NewService(topics.NewFeed(cfg.TopicsFeedURL, topics.NewExtractor(analyzer)), topicCache, metrics)
	rebuildDefaults := queue.RebuildIndexPayload{WindowSize: cfg.CoocWindow, MinCount: cfg.CoocMinCount, TopN: cfg.CoocTopN}

	// Background jobs
	sched := scheduler.NewScheduler()
	if err := sched.ScheduleInterval(scheduler.TagTopicRefresh, cfg.TopicsRefreshInterval, func(ctx context.Context) error {
		_, err := topicService.Refresh(ctx)
		return err
	}); err != nil {
		log.Fatal("Failed to schedule topic refresh:", err)
	}
	if err := sched.ScheduleInterval(scheduler.TagIndexReload, 30*time.Second, func(context.Context) error {
		reloaded, err := index.Reload()
		if reloaded {
			logger.Info("Co-occurrence index reloaded", "terms", index.Len())
		}
		return err
	}); err != nil {
		log.Fatal("Failed to schedule index reload:", err)
	}
	sched.Start()
	defer sched.Stop()

	if cfg.WatchTranscripts && cfg.TranscriptSource == "file" {
		watcher := corpus.NewWatcher(cfg.TranscriptDir, store, 2*time.Second)
		watcher.OnReload = func(snap *corpus.Snapshot) {
			if queueClient == nil {
				return
			}
			payload := rebuildDefaults
			payload.Reason = "transcripts changed"
			if _, err := queueClient.EnqueueRebuild(ctx, payload); err != nil && !errors.Is(err, queue.ErrAlreadyQueued) {
				logger.Error("Failed to enqueue index rebuild", "error", err)
			}
		}
		go func() {
			if err := watcher.Run(ctx); err != nil {
				logger.Error("Transcript watcher stopped", "error", err)
			}
		}()
	}

	// Initialize Gin router
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.TracingMiddleware())
	router.Use(middleware.EnrichTrace())
	router.Use(middleware.MetricsMiddleware(metrics))
	router.Use(middleware.CORSMiddlewareWithOrigins(cfg.CORSOrigins))
	router.Use(middleware.RequestSizeLimit(cfg.MaxRequestSize))
	if rdb != nil {
		router.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitReqs, time.Duration(cfg.RateLimitWindow)*time.Second))
	}

	routes.SetupHealthRoutes(router, store, index)

	api := router.Group("/api")
	routes.SetupSearchRoutes(api, searchService, services.NewExportService(), cfg.DefaultMaxClips)
	routes.SetupTopicRoutes(api, topicService)
	var enqueuer queue.Enqueuer
	if queueClient != nil {
		enqueuer = queueClient
	}
	routes.SetupIndexRoutes(api, index, enqueuer, rebuildDefaults)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port, "transcripts", len(store.Transcripts()), "index_terms", index.Len())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")
	stop()

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Info("Server exited")
}

func disconnectMongo(client *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client.Disconnect(ctx)
}
