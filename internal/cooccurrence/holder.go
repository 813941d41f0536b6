package cooccurrence

import (
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"narrative-assembly/internal/logger"
	"narrative-assembly/models"
)

// Holder serves the index stored at a path and swaps in a new one when the
// file changes, so a rebuild in another process reaches running servers.
type Holder struct {
	path    string
	current atomic.Pointer[Index]

	mu      sync.Mutex
	modTime time.Time
}

// NewHolder starts with an empty index; call Reload to read the file.
func NewHolder(path string) *Holder {
	h := &Holder{path: path}
	h.current.Store(Empty())
	return h
}

func (h *Holder) Index() *Index {
	return h.current.Load()
}

// Len reports the number of terms in the current index.
func (h *Holder) Len() int {
	return h.current.Load().Len()
}

func (h *Holder) Lookup(term string) []models.CoOccurrenceEntry {
	return h.current.Load().Lookup(term)
}

// Reload reads the file if its modification time moved. It reports whether
// the index was replaced. A missing file keeps the current index.
func (h *Holder) Reload() (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	info, err := os.Stat(h.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if info.ModTime().Equal(h.modTime) {
		return false, nil
	}

	idx, err := LoadFile(h.path)
	if err != nil {
		return false, err
	}
	h.current.Store(idx)
	h.modTime = info.ModTime()

	logger.Info("Co-occurrence index loaded", "path", h.path, "terms", idx.Len())
	return true, nil
}

// Set replaces the index directly.
func (h *Holder) Set(idx *Index) {
	h.current.Store(idx)
}
