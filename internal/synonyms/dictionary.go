// Package synonyms holds the curated term-to-synonyms map used during keyword expansion.
package synonyms

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Dictionary maps a lowercase term or phrase to related phrases.
// It is never mutated after construction.
type Dictionary struct {
	entries map[string][]string
}

// New builds a dictionary from raw entries. Keys are lower-cased and trimmed.
func New(entries map[string][]string) *Dictionary {
	d := &Dictionary{entries: make(map[string][]string, len(entries))}
	for k, v := range entries {
		key := strings.ToLower(strings.TrimSpace(k))
		if key == "" {
			continue
		}
		d.entries[key] = append([]string(nil), v...)
	}
	return d
}

// Default returns the built-in UK politics dictionary.
func Default() *Dictionary {
	return New(ukPolitics)
}

// Lookup returns the synonyms for an exact key, case-insensitively. Unknown keys yield nil.
func (d *Dictionary) Lookup(term string) []string {
	if d == nil {
		return nil
	}
	return d.entries[strings.ToLower(term)]
}

// Len reports the number of keys.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// Merge returns a new dictionary where overlay keys replace base keys.
func (d *Dictionary) Merge(overlay map[string][]string) *Dictionary {
	merged := make(map[string][]string, d.Len()+len(overlay))
	if d != nil {
		for k, v := range d.entries {
			merged[k] = v
		}
	}
	for k, v := range overlay {
		merged[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return New(merged)
}

// LoadYAML reads an overlay file of the form `term: [synonym, ...]` and merges it over
// the built-in dictionary. An empty path or a missing file yields the defaults.
func LoadYAML(path string) (*Dictionary, error) {
	base := Default()
	if path == "" {
		return base, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return base, nil
		}
		return nil, fmt.Errorf("read synonyms %s: %w", path, err)
	}

	var overlay map[string][]string
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("parse synonyms %s: %w", path, err)
	}
	return base.Merge(overlay), nil
}
