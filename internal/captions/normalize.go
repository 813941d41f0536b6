package captions

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"narrative-assembly/internal/corpus"
	"narrative-assembly/internal/fsutil"
	"narrative-assembly/internal/logger"
	"narrative-assembly/models"
)

var ErrNoCaptions = errors.New("no VTT files found")

// infoJSON is the subset of a downloader's <id>.info.json that we read.
type infoJSON struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	UploadDate string  `json:"upload_date"`
	Channel    string  `json:"channel"`
	Uploader   string  `json:"uploader"`
	Duration   float64 `json:"duration"`
}

// VideoIDFromPath returns "abc" for ".../abc.en.vtt".
func VideoIDFromPath(vttPath string) string {
	base := filepath.Base(vttPath)
	id, _, _ := strings.Cut(base, ".")
	return id
}

// LoadMetadata fills a transcript's metadata from an info.json file. Missing
// fields fall back to "Unknown" and today's date.
func LoadMetadata(path string, now time.Time) (models.TranscriptFile, error) {
	var info infoJSON
	if err := fsutil.ReadJSON(path, &info); err != nil {
		return models.TranscriptFile{}, err
	}

	tr := models.TranscriptFile{
		VideoID:         info.ID,
		Title:           info.Title,
		PublishedAt:     now.Format("2006-01-02"),
		Channel:         info.Channel,
		DurationSeconds: info.Duration,
	}
	if d := info.UploadDate; len(d) == 8 {
		tr.PublishedAt = d[:4] + "-" + d[4:6] + "-" + d[6:]
	}
	if tr.Title == "" {
		tr.Title = "Unknown"
	}
	if tr.Channel == "" {
		tr.Channel = info.Uploader
	}
	if tr.Channel == "" {
		tr.Channel = "Unknown"
	}
	return tr, nil
}

// Normalize reads one VTT file and its sibling <id>.info.json, if present.
func Normalize(vttPath string, now time.Time) (models.TranscriptFile, error) {
	f, err := os.Open(vttPath)
	if err != nil {
		return models.TranscriptFile{}, err
	}
	defer f.Close()

	segments, err := ParseVTT(f)
	if err != nil {
		return models.TranscriptFile{}, fmt.Errorf("parse %s: %w", vttPath, err)
	}

	id := VideoIDFromPath(vttPath)
	infoPath := filepath.Join(filepath.Dir(vttPath), id+".info.json")

	tr, err := LoadMetadata(infoPath, now)
	switch {
	case errors.Is(err, os.ErrNotExist):
		tr = models.TranscriptFile{
			VideoID:     id,
			Title:       "Unknown",
			PublishedAt: now.Format("2006-01-02"),
			Channel:     "Unknown",
		}
	case err != nil:
		return models.TranscriptFile{}, err
	}
	if tr.VideoID == "" {
		tr.VideoID = id
	}

	tr.Segments = Dedupe(segments)
	return tr, nil
}

// BuildManifest lists transcripts in the given order.
func BuildManifest(transcripts []models.TranscriptFile, now time.Time) models.TranscriptManifest {
	m := models.TranscriptManifest{
		GeneratedAt: now.UTC().Format(time.RFC3339),
		TotalVideos: len(transcripts),
		Videos:      make([]models.ManifestEntry, 0, len(transcripts)),
	}
	for _, tr := range transcripts {
		m.Videos = append(m.Videos, models.ManifestEntry{
			VideoID:      tr.VideoID,
			Title:        tr.Title,
			PublishedAt:  tr.PublishedAt,
			SegmentCount: len(tr.Segments),
		})
	}
	return m
}

// NormalizeDir converts every *.vtt in inputDir, in name order, writes
// <id>.json files and manifest.json into outputDir and returns the transcripts.
func NormalizeDir(ctx context.Context, inputDir, outputDir string, now time.Time) ([]models.TranscriptFile, error) {
	paths, err := filepath.Glob(filepath.Join(inputDir, "*.vtt"))
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoCaptions, inputDir)
	}
	sort.Strings(paths)

	transcripts := make([]models.TranscriptFile, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tr, err := Normalize(p, now)
		if err != nil {
			return nil, err
		}
		logger.Info("Normalized transcript", "video_id", tr.VideoID, "segments", len(tr.Segments))

		if err := fsutil.WriteJSON(filepath.Join(outputDir, tr.VideoID+".json"), tr); err != nil {
			return nil, err
		}
		transcripts = append(transcripts, tr)
	}

	manifest := BuildManifest(transcripts, now)
	if err := fsutil.WriteJSON(filepath.Join(outputDir, corpus.ManifestFile), manifest); err != nil {
		return nil, err
	}
	return transcripts, nil
}
