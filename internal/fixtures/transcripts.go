// Package fixtures provides a small news transcript corpus for tests.
package fixtures

import "narrative-assembly/models"

func Immigration() models.TranscriptFile {
	return models.TranscriptFile{
		VideoID:         "test_vid_001",
		Title:           "UK immigration policy debate - BBC News",
		PublishedAt:     "2025-11-15",
		Channel:         "BBC News",
		DurationSeconds: 120,
		Segments: []models.TranscriptSegment{
			{Start: 0, Dur: 4.0, Text: "The government has announced sweeping changes to immigration policy"},
			{Start: 4.0, Dur: 3.5, Text: "aimed at reducing net migration figures which have reached record levels"},
			{Start: 7.5, Dur: 4.0, Text: "The Home Secretary outlined plans to tighten visa requirements"},
			{Start: 11.5, Dur: 3.8, Text: "particularly for workers coming from outside the European Union"},
			{Start: 15.3, Dur: 4.2, Text: "Critics say the measures could damage the economy"},
			{Start: 19.5, Dur: 3.5, Text: "with sectors like healthcare and agriculture relying on migrant workers"},
			{Start: 23.0, Dur: 4.0, Text: "The NHS has warned that restricting immigration could worsen staff shortages"},
			{Start: 27.0, Dur: 3.6, Text: "Hospitals across England are already struggling with record waiting times"},
		},
	}
}

func NHS() models.TranscriptFile {
	return models.TranscriptFile{
		VideoID:         "test_vid_002",
		Title:           "NHS waiting lists hit record high - BBC News",
		PublishedAt:     "2025-12-03",
		Channel:         "BBC News",
		DurationSeconds: 95,
		Segments: []models.TranscriptSegment{
			{Start: 0, Dur: 4.0, Text: "NHS waiting lists have reached an all time high"},
			{Start: 4.0, Dur: 3.8, Text: "with over seven million people waiting for treatment in England"},
			{Start: 7.8, Dur: 4.1, Text: "Doctors and nurses say the system is under unprecedented pressure"},
			{Start: 11.9, Dur: 3.5, Text: "Emergency departments report patients waiting hours to be seen"},
			{Start: 15.4, Dur: 4.0, Text: "The government has pledged additional funding for the health service"},
			{Start: 19.4, Dur: 3.7, Text: "but critics argue it is not enough to address the crisis"},
		},
	}
}

func Climate() models.TranscriptFile {
	return models.TranscriptFile{
		VideoID:         "test_vid_003",
		Title:           "Climate change and net zero targets - BBC News",
		PublishedAt:     "2025-11-28",
		Channel:         "BBC News",
		DurationSeconds: 80,
		Segments: []models.TranscriptSegment{
			{Start: 0, Dur: 4.2, Text: "The UK government faces growing pressure on climate targets"},
			{Start: 4.2, Dur: 3.9, Text: "Carbon emissions have fallen but not fast enough to meet net zero goals"},
			{Start: 8.1, Dur: 4.0, Text: "Renewable energy now provides a significant share of electricity"},
			{Start: 12.1, Dur: 3.6, Text: "Wind and solar power have seen massive investment"},
			{Start: 15.7, Dur: 4.1, Text: "But the transition away from fossil fuels faces economic challenges"},
		},
	}
}

// Corpus returns the three fixture videos in manifest order.
func Corpus() []models.TranscriptFile {
	return []models.TranscriptFile{Immigration(), NHS(), Climate()}
}

// Manifest describes Corpus.
func Manifest() models.TranscriptManifest {
	m := models.TranscriptManifest{GeneratedAt: "2026-02-15T00:00:00Z"}
	for _, tr := range Corpus() {
		m.Videos = append(m.Videos, models.ManifestEntry{
			VideoID:      tr.VideoID,
			Title:        tr.Title,
			PublishedAt:  tr.PublishedAt,
			SegmentCount: len(tr.Segments),
		})
	}
	m.TotalVideos = len(m.Videos)
	return m
}

// Single wraps one segment in a transcript.
func Single(videoID, text string, start, dur float64) models.TranscriptFile {
	return models.TranscriptFile{
		VideoID:     videoID,
		Title:       videoID,
		PublishedAt: "2025-12-10",
		Channel:     "BBC News",
		Segments:    []models.TranscriptSegment{{Start: start, Dur: dur, Text: text}},
	}
}
