package models

// CoOccurrenceEntry is one associated term and its normalised PMI score in (0, 1].
type CoOccurrenceEntry struct {
	Term  string  `json:"term"`
	Score float64 `json:"score"`
}

// CoOccurrenceIndex maps a lowercase term to its partners, best first.
type CoOccurrenceIndex map[string][]CoOccurrenceEntry
