package models

// KeywordCategory records which expansion stage produced a keyword.
type KeywordCategory string

const (
	CategoryPrimary       KeywordCategory = "primary"
	CategoryMorphological KeywordCategory = "morphological"
	CategorySynonym       KeywordCategory = "synonym"
	CategoryCoOccurring   KeywordCategory = "co-occurring"
)

// Categories lists every category in expansion precedence order.
var Categories = []KeywordCategory{
	CategoryPrimary,
	CategoryMorphological,
	CategorySynonym,
	CategoryCoOccurring,
}

// Weight is the fixed search weight of a category. Unknown categories weigh nothing.
func (c KeywordCategory) Weight() float64 {
	switch c {
	case CategoryPrimary:
		return 1.0
	case CategoryMorphological:
		return 0.7
	case CategorySynonym:
		return 0.5
	case CategoryCoOccurring:
		return 0.3
	}
	return 0
}

// ExpandedKeyword is one search term derived from a query.
type ExpandedKeyword struct {
	Term     string          `json:"term"`
	Category KeywordCategory `json:"category"`
	Weight   float64         `json:"weight"`
	// Source is the phrase or word that produced this term.
	Source string `json:"source"`
}
