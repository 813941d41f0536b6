package models

// TranscriptSegment is one caption cue. Start and Dur are in seconds.
type TranscriptSegment struct {
	Start float64 `bson:"start" json:"start"`
	Dur   float64 `bson:"dur" json:"dur"`
	Text  string  `bson:"text" json:"text"`
}

// End returns the time the segment stops being spoken.
func (s TranscriptSegment) End() float64 {
	return s.Start + s.Dur
}

// TranscriptFile is the metadata and ordered captions for one video.
type TranscriptFile struct {
	VideoID         string              `bson:"video_id" json:"videoId"`
	Title           string              `bson:"title" json:"title"`
	PublishedAt     string              `bson:"published_at" json:"publishedAt"` // YYYY-MM-DD
	Channel         string              `bson:"channel" json:"channel"`
	DurationSeconds float64             `bson:"duration_seconds" json:"durationSeconds"`
	Segments        []TranscriptSegment `bson:"segments" json:"segments"`
}

// ManifestEntry summarises one video listed in a TranscriptManifest.
type ManifestEntry struct {
	VideoID      string `json:"videoId"`
	Title        string `json:"title"`
	PublishedAt  string `json:"publishedAt"`
	SegmentCount int    `json:"segmentCount"`
}

// TranscriptManifest lists every transcript available in a corpus directory.
type TranscriptManifest struct {
	GeneratedAt string          `json:"generatedAt"`
	TotalVideos int             `json:"totalVideos"`
	Videos      []ManifestEntry `json:"videos"`
}
