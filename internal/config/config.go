package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	GinMode     string
	CORSOrigins []string

	// Transcript corpus
	TranscriptSource string // "file" (default) or "mongo"
	TranscriptDir    string
	WatchTranscripts bool

	// Co-occurrence index and synonym overlay
	IndexPath    string
	SynonymsPath string

	// Index build parameters
	CoocWindow   int
	CoocMinCount int
	CoocTopN     int

	MongoURI string
	DBName   string

	// Redis Configuration
	RedisURL      string
	RedisPassword string
	RedisDB       int

	// Morphology service. Empty URL disables morphological expansion.
	MorphologyURL     string
	MorphologyTimeout time.Duration
	MorphologyRPM     int

	RateLimitReqs   int
	RateLimitWindow int
	MaxRequestSize  int64
	DefaultMaxClips int

	// Trending topics
	TopicsFeedURL         string
	TopicsCacheTTL        time.Duration
	TopicsRefreshInterval time.Duration

	// Tracing
	OTelEnabled  bool
	OTelEndpoint string
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("error loading .env file: %v", err)
		}
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", "debug"),
		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:8080"), ","),

		TranscriptSource: getEnv("TRANSCRIPT_SOURCE", "file"),
		TranscriptDir:    getEnv("TRANSCRIPT_DIR", "./data/transcripts"),
		WatchTranscripts: getEnvBool("WATCH_TRANSCRIPTS", false),

		IndexPath:    getEnv("INDEX_PATH", "./data/co-occurrence.json"),
		SynonymsPath: getEnv("SYNONYMS_PATH", ""),

		CoocWindow:   getEnvInt("COOC_WINDOW", 5),
		CoocMinCount: getEnvInt("COOC_MIN_COUNT", 2),
		CoocTopN:     getEnvInt("COOC_TOP_N", 10),

		MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017/narrative_assembly"),
		DBName:   getEnv("DB_NAME", "narrative_assembly"),

		// Redis Configuration
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		MorphologyURL:     getEnv("MORPHOLOGY_URL", ""),
		MorphologyTimeout: getEnvDuration("MORPHOLOGY_TIMEOUT", 3*time.Second),
		MorphologyRPM:     getEnvInt("MORPHOLOGY_RPM", 600),

		RateLimitReqs:   getEnvInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow: getEnvInt("RATE_LIMIT_WINDOW", 60),
		MaxRequestSize:  getEnvInt64("MAX_REQUEST_SIZE", 1<<20),
		DefaultMaxClips: getEnvInt("DEFAULT_MAX_CLIPS", 15),

		TopicsFeedURL:         getEnv("TOPICS_FEED_URL", "https://www.reddit.com/r/ukpolitics/hot.json?limit=15"),
		TopicsCacheTTL:        getEnvDuration("TOPICS_CACHE_TTL", 5*time.Minute),
		TopicsRefreshInterval: getEnvDuration("TOPICS_REFRESH_INTERVAL", 5*time.Minute),

		OTelEnabled:  getEnvBool("OTEL_ENABLED", false),
		OTelEndpoint: getEnv("OTEL_ENDPOINT", "localhost:4317"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks value ranges that would otherwise fail deep inside the pipeline.
func (c *Config) Validate() error {
	switch c.TranscriptSource {
	case "file", "mongo":
	default:
		return fmt.Errorf("TRANSCRIPT_SOURCE must be \"file\" or \"mongo\", got %q", c.TranscriptSource)
	}

	if c.TranscriptSource == "mongo" && c.MongoURI == "" {
		return fmt.Errorf("MONGO_URI is required when TRANSCRIPT_SOURCE=mongo")
	}

	if c.CoocWindow < 2 {
		return fmt.Errorf("COOC_WINDOW must be at least 2, got %d", c.CoocWindow)
	}

	if c.CoocMinCount < 1 {
		return fmt.Errorf("COOC_MIN_COUNT must be at least 1, got %d", c.CoocMinCount)
	}

	if c.CoocTopN < 1 {
		return fmt.Errorf("COOC_TOP_N must be at least 1, got %d", c.CoocTopN)
	}

	if c.DefaultMaxClips < 1 {
		return fmt.Errorf("DEFAULT_MAX_CLIPS must be at least 1, got %d", c.DefaultMaxClips)
	}

	if c.MorphologyRPM < 1 {
		return fmt.Errorf("MORPHOLOGY_RPM must be at least 1, got %d", c.MorphologyRPM)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
