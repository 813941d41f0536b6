package models

// ClipMatch is a scored, padded excerpt of one transcript segment.
type ClipMatch struct {
	VideoID         string   `json:"videoId"`
	VideoTitle      string   `json:"videoTitle"`
	PublishedAt     string   `json:"publishedAt"`
	StartTime       float64  `json:"startTime"`
	EndTime         float64  `json:"endTime"`
	Text            string   `json:"text"`
	Score           float64  `json:"score"`
	MatchedKeywords []string `json:"matchedKeywords"`
}

// Overlaps reports whether two clips from the same video share any time.
func (c ClipMatch) Overlaps(other ClipMatch) bool {
	return c.VideoID == other.VideoID && c.StartTime < other.EndTime && c.EndTime > other.StartTime
}

type SearchResult struct {
	Query            string            `json:"query"`
	ExpandedKeywords []ExpandedKeyword `json:"expandedKeywords"`
	Clips            []ClipMatch       `json:"clips"`
	SearchTimeMs     int64             `json:"searchTimeMs"`
}

type SearchRequest struct {
	Query    string `json:"query"`
	MaxClips *int   `json:"maxClips,omitempty"`
}

type SearchResponse struct {
	Success bool         `json:"success"`
	Data    SearchResult `json:"data"`
}
