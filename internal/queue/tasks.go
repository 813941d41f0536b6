package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"narrative-assembly/internal/cooccurrence"
	"narrative-assembly/internal/corpus"
	"narrative-assembly/internal/logger"
	"narrative-assembly/internal/telemetry"
)

const (
	TaskRebuildIndex = "cooccurrence:rebuild"

	rebuildTaskID = "cooccurrence-rebuild"
)

// ErrAlreadyQueued means a rebuild is already waiting or running.
var ErrAlreadyQueued = errors.New("index rebuild already queued")

type RebuildIndexPayload struct {
	WindowSize int    `json:"window_size"`
	MinCount   int    `json:"min_count"`
	TopN       int    `json:"top_n"`
	Reason     string `json:"reason,omitempty"`
}

func (p RebuildIndexPayload) options() cooccurrence.Options {
	return cooccurrence.Options{WindowSize: p.WindowSize, MinCount: p.MinCount, TopN: p.TopN}
}

// NewRebuildIndexTask creates a rebuild task. Only one can be pending at a time.
func NewRebuildIndexTask(p RebuildIndexPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskRebuildIndex,
		payload,
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Minute),
		asynq.Queue("default"),
		asynq.TaskID(rebuildTaskID),
		asynq.Retention(time.Minute),
	), nil
}

// Enqueuer schedules background index rebuilds.
type Enqueuer interface {
	EnqueueRebuild(ctx context.Context, p RebuildIndexPayload) (string, error)
}

// Client enqueues tasks through asynq.
type Client struct {
	client *asynq.Client
}

func NewClient(opt asynq.RedisConnOpt) *Client {
	return &Client{client: asynq.NewClient(opt)}
}

func (c *Client) EnqueueRebuild(ctx context.Context, p RebuildIndexPayload) (string, error) {
	task, err := NewRebuildIndexTask(p)
	if err != nil {
		return "", err
	}
	info, err := c.client.EnqueueContext(ctx, task)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) || errors.Is(err, asynq.ErrDuplicateTask) {
			return rebuildTaskID, ErrAlreadyQueued
		}
		return "", fmt.Errorf("failed to enqueue rebuild: %w", err)
	}
	return info.ID, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// TaskProcessor handles queued tasks.
type TaskProcessor struct {
	repo       corpus.Repository
	outputPath string
	metrics    *telemetry.Metrics
}

func NewTaskProcessor(repo corpus.Repository, outputPath string, metrics *telemetry.Metrics) *TaskProcessor {
	return &TaskProcessor{repo: repo, outputPath: outputPath, metrics: metrics}
}

// RebuildIndex loads the whole corpus, builds the index and replaces the index file.
func (p *TaskProcessor) RebuildIndex(ctx context.Context, t *asynq.Task) error {
	var payload RebuildIndexPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal failed: %w", asynq.SkipRetry)
	}

	logger.Info("Rebuilding co-occurrence index",
		"window", payload.WindowSize, "min_count", payload.MinCount, "top_n", payload.TopN, "reason", payload.Reason)

	start := time.Now()
	terms, err := p.rebuild(ctx, payload)
	p.metrics.RecordIndexBuild(ctx, time.Since(start).Seconds(), terms, err == nil)
	if err != nil {
		if errors.Is(err, corpus.ErrManifestNotFound) {
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		return err
	}

	logger.Info("Co-occurrence index rebuilt", "terms", terms, "output", p.outputPath,
		"duration_ms", time.Since(start).Milliseconds())
	return nil
}

func (p *TaskProcessor) rebuild(ctx context.Context, payload RebuildIndexPayload) (int, error) {
	transcripts, err := p.repo.LoadAll(ctx)
	if err != nil {
		return 0, err
	}

	index, err := cooccurrence.Build(ctx, transcripts, payload.options())
	if err != nil {
		return 0, err
	}

	if err := cooccurrence.SaveFile(p.outputPath, index); err != nil {
		return 0, err
	}
	return len(index), nil
}

// RedisConnOpt converts go-redis options into asynq's connection options.
func RedisConnOpt(opt *redis.Options) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Network:   opt.Network,
		Addr:      opt.Addr,
		Username:  opt.Username,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}
}
