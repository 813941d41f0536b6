package cooccurrence

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"narrative-assembly/internal/fsutil"
	"narrative-assembly/models"
)

// Index is a read-only view over a built co-occurrence index.
// It is safe for concurrent use.
type Index struct {
	entries models.CoOccurrenceIndex
}

// NewIndex wraps built entries. Keys are normalised to lower case.
func NewIndex(entries models.CoOccurrenceIndex) *Index {
	idx := &Index{entries: make(models.CoOccurrenceIndex, len(entries))}
	for term, list := range entries {
		idx.entries[strings.ToLower(term)] = list
	}
	return idx
}

// Empty returns an index with no terms.
func Empty() *Index {
	return &Index{entries: models.CoOccurrenceIndex{}}
}

// Lookup returns the partners of term, best first. Unknown terms yield nil.
func (i *Index) Lookup(term string) []models.CoOccurrenceEntry {
	if i == nil {
		return nil
	}
	return i.entries[strings.ToLower(term)]
}

// Len reports the number of indexed terms.
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.entries)
}

// LoadFile reads an index previously written by SaveFile.
func LoadFile(path string) (*Index, error) {
	var entries models.CoOccurrenceIndex
	if err := fsutil.ReadJSON(path, &entries); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("load co-occurrence index: %w", err)
	}
	return NewIndex(entries), nil
}

// SaveFile writes entries as indented JSON, replacing any existing file atomically.
func SaveFile(path string, entries models.CoOccurrenceIndex) error {
	return fsutil.WriteJSON(path, entries)
}
