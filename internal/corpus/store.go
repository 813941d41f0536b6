package corpus

import (
	"context"
	"sync/atomic"
	"time"

	"narrative-assembly/internal/logger"
	"narrative-assembly/models"
)

// Snapshot is an immutable view of the corpus at one load.
type Snapshot struct {
	Transcripts []models.TranscriptFile
	LoadedAt    time.Time
}

func (s *Snapshot) SegmentCount() int {
	n := 0
	for _, tr := range s.Transcripts {
		n += len(tr.Segments)
	}
	return n
}

// Store holds the current snapshot. Reload swaps it whole, so readers keep
// whatever snapshot they started with.
type Store struct {
	repo Repository
	snap atomic.Pointer[Snapshot]
}

func NewStore(repo Repository) *Store {
	s := &Store{repo: repo}
	s.snap.Store(&Snapshot{})
	return s
}

// NewStaticStore serves a fixed corpus and cannot be reloaded.
func NewStaticStore(transcripts []models.TranscriptFile) *Store {
	s := &Store{}
	s.snap.Store(&Snapshot{Transcripts: transcripts, LoadedAt: time.Now()})
	return s
}

func (s *Store) Snapshot() *Snapshot {
	return s.snap.Load()
}

func (s *Store) Transcripts() []models.TranscriptFile {
	return s.snap.Load().Transcripts
}

// Reload reads the whole corpus from the repository. On error the previous snapshot stays.
func (s *Store) Reload(ctx context.Context) (*Snapshot, error) {
	if s.repo == nil {
		return s.Snapshot(), nil
	}

	start := time.Now()
	transcripts, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{Transcripts: transcripts, LoadedAt: time.Now()}
	s.snap.Store(snap)

	logger.Info("Transcript corpus loaded",
		"videos", len(transcripts),
		"segments", snap.SegmentCount(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return snap, nil
}
