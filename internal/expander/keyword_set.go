package expander

import (
	"strings"

	"narrative-assembly/models"
)

// keywordSet keeps keywords in insertion order and rejects any term already
// present, compared case-insensitively after trimming.
type keywordSet struct {
	seen  map[string]struct{}
	items []models.ExpandedKeyword
}

func newKeywordSet() *keywordSet {
	return &keywordSet{seen: make(map[string]struct{})}
}

func (s *keywordSet) add(term string, category models.KeywordCategory, source string) bool {
	key := strings.ToLower(strings.TrimSpace(term))
	if key == "" {
		return false
	}
	if _, dup := s.seen[key]; dup {
		return false
	}
	s.seen[key] = struct{}{}
	s.items = append(s.items, models.ExpandedKeyword{
		Term:     key,
		Category: category,
		Weight:   category.Weight(),
		Source:   source,
	})
	return true
}

func (s *keywordSet) list() []models.ExpandedKeyword {
	return s.items
}
