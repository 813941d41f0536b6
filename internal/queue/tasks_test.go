package queue

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/hibiken/asynq"

	"narrative-assembly/internal/cooccurrence"
	"narrative-assembly/internal/corpus"
	"narrative-assembly/internal/fixtures"
	"narrative-assembly/models"
)

type stubRepo struct {
	transcripts []models.TranscriptFile
	err         error
}

func (s stubRepo) LoadAll(context.Context) ([]models.TranscriptFile, error) {
	return s.transcripts, s.err
}

func TestNewRebuildIndexTask(t *testing.T) {
	task, err := NewRebuildIndexTask(RebuildIndexPayload{WindowSize: 4, MinCount: 1, TopN: 5, Reason: "api"})
	if err != nil {
		t.Fatal(err)
	}
	if task.Type() != TaskRebuildIndex {
		t.Errorf("type = %s", task.Type())
	}
	var p RebuildIndexPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		t.Fatal(err)
	}
	if p.WindowSize != 4 || p.MinCount != 1 || p.TopN != 5 {
		t.Errorf("payload = %+v", p)
	}
}

func TestRebuildIndexWritesFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "co-occurrence.json")
	proc := NewTaskProcessor(stubRepo{transcripts: fixtures.Corpus()}, out, nil)

	task, _ := NewRebuildIndexTask(RebuildIndexPayload{MinCount: 1})
	if err := proc.RebuildIndex(context.Background(), task); err != nil {
		t.Fatalf("RebuildIndex: %v", err)
	}

	idx, err := cooccurrence.LoadFile(out)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if idx.Len() == 0 {
		t.Fatal("expected a non-empty index")
	}
	if len(idx.Lookup("immigration")) == 0 {
		t.Error("immigration should have partners")
	}
}

func TestRebuildIndexBadPayloadSkipsRetry(t *testing.T) {
	proc := NewTaskProcessor(stubRepo{}, filepath.Join(t.TempDir(), "x.json"), nil)
	err := proc.RebuildIndex(context.Background(), asynq.NewTask(TaskRebuildIndex, []byte("{")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
}

func TestRebuildIndexMissingManifestSkipsRetry(t *testing.T) {
	repo := corpus.NewFileRepository(t.TempDir())
	proc := NewTaskProcessor(repo, filepath.Join(t.TempDir(), "x.json"), nil)

	task, _ := NewRebuildIndexTask(RebuildIndexPayload{})
	err := proc.RebuildIndex(context.Background(), task)
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
}

func TestRebuildIndexRepositoryErrorRetries(t *testing.T) {
	proc := NewTaskProcessor(stubRepo{err: errors.New("mongo timeout")}, filepath.Join(t.TempDir(), "x.json"), nil)
	task, _ := NewRebuildIndexTask(RebuildIndexPayload{})
	err := proc.RebuildIndex(context.Background(), task)
	if err == nil || errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected retryable error, got %v", err)
	}
}
