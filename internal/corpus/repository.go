// Package corpus loads the transcript corpus and keeps an in-memory snapshot
// of it for the search path.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"narrative-assembly/internal/fsutil"
	"narrative-assembly/internal/logger"
	"narrative-assembly/models"
)

const ManifestFile = "manifest.json"

var ErrManifestNotFound = errors.New("transcript manifest not found")

type Repository interface {
	LoadAll(ctx context.Context) ([]models.TranscriptFile, error)
}

// FileRepository reads manifest.json and one <videoId>.json per video from a directory.
type FileRepository struct {
	dir string
}

func NewFileRepository(dir string) *FileRepository {
	return &FileRepository{dir: dir}
}

func (r *FileRepository) Dir() string {
	return r.dir
}

func (r *FileRepository) ManifestPath() string {
	return filepath.Join(r.dir, ManifestFile)
}

func (r *FileRepository) LoadManifest() (models.TranscriptManifest, error) {
	var m models.TranscriptManifest
	if err := fsutil.ReadJSON(r.ManifestPath(), &m); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return m, fmt.Errorf("%w at %s", ErrManifestNotFound, r.ManifestPath())
		}
		return m, err
	}
	return m, nil
}

// LoadTranscript returns nil without error when the video has no file.
func (r *FileRepository) LoadTranscript(videoID string) (*models.TranscriptFile, error) {
	var tr models.TranscriptFile
	if err := fsutil.ReadJSON(filepath.Join(r.dir, videoID+".json"), &tr); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return &tr, nil
}

// LoadAll returns the transcripts listed in the manifest, in manifest order.
// Listed videos without a transcript file are skipped.
func (r *FileRepository) LoadAll(ctx context.Context) ([]models.TranscriptFile, error) {
	m, err := r.LoadManifest()
	if err != nil {
		return nil, err
	}

	transcripts := make([]models.TranscriptFile, 0, len(m.Videos))
	for _, v := range m.Videos {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tr, err := r.LoadTranscript(v.VideoID)
		if err != nil {
			return nil, err
		}
		if tr == nil {
			logger.Warn("Transcript listed in manifest is missing", "video_id", v.VideoID)
			continue
		}
		transcripts = append(transcripts, *tr)
	}
	return transcripts, nil
}
