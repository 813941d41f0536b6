package captions

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"narrative-assembly/internal/corpus"
	"narrative-assembly/internal/fsutil"
	"narrative-assembly/models"
)

const sampleVTT = `WEBVTT
Kind: captions
Language: en

00:00:01.000 --> 00:00:03.500 align:start position:0%
the<00:00:01.400><c> government</c><00:00:01.900><c> announced</c>

00:00:03.500 --> 00:00:03.510
 

00:00:03.510 --> 00:00:06.000
the government announced

00:00:06.000 --> 00:00:08.250
government

00:00:08.250 --> 00:00:11.000
<v Speaker>new rules on
immigration &amp; borders</v>

00:00:12.000 --> 00:00:12.000
zero length cue
`

func TestParseVTT(t *testing.T) {
	segs, err := ParseVTT(strings.NewReader(sampleVTT))
	if err != nil {
		t.Fatalf("ParseVTT: %v", err)
	}

	want := []models.TranscriptSegment{
		{Start: 1, Dur: 2.5, Text: "the government announced"},
		{Start: 3.51, Dur: 2.49, Text: "the government announced"},
		{Start: 6, Dur: 2.25, Text: "government"},
		{Start: 8.25, Dur: 2.75, Text: "new rules on immigration & borders"},
	}
	if len(segs) != len(want) {
		t.Fatalf("got %d segments, want %d: %+v", len(segs), len(want), segs)
	}
	for i := range want {
		if segs[i] != want[i] {
			t.Errorf("segment %d = %+v, want %+v", i, segs[i], want[i])
		}
	}
}

func TestDedupe(t *testing.T) {
	segs, err := ParseVTT(strings.NewReader(sampleVTT))
	if err != nil {
		t.Fatalf("ParseVTT: %v", err)
	}

	got := Dedupe(segs)
	if len(got) != 2 {
		t.Fatalf("got %d segments, want 2: %+v", len(got), got)
	}
	// repeated text extends the first cue to the end of the repeat
	if got[0].Start != 1 || got[0].Dur != 5 {
		t.Errorf("merged cue = %+v, want start 1 dur 5", got[0])
	}
	if got[1].Text != "new rules on immigration & borders" {
		t.Errorf("second cue = %q", got[1].Text)
	}
}

func TestDedupeEmpty(t *testing.T) {
	if got := Dedupe(nil); len(got) != 0 {
		t.Errorf("Dedupe(nil) = %v", got)
	}
}

func TestParseTimestamp(t *testing.T) {
	cases := map[string]float64{
		"00:00:01.500": 1.5,
		"1:02:03.250":  3723.25,
		"02:03.000":    123,
		"4.5":          4.5,
	}
	for in, want := range cases {
		got, err := ParseTimestamp(in)
		if err != nil {
			t.Errorf("ParseTimestamp(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := ParseTimestamp("aa:bb"); err == nil {
		t.Error("expected error for malformed timestamp")
	}
}

func TestVideoIDFromPath(t *testing.T) {
	if got := VideoIDFromPath("/tmp/abc123.en.vtt"); got != "abc123" {
		t.Errorf("got %q", got)
	}
}

func TestNormalizeDir(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

	if err := os.WriteFile(filepath.Join(in, "vid1.en.vtt"), []byte(sampleVTT), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(in, "vid2.en.vtt"), []byte(sampleVTT), 0o644); err != nil {
		t.Fatal(err)
	}
	info := map[string]any{
		"id":          "vid1",
		"title":       "PMQs",
		"upload_date": "20240611",
		"uploader":    "Parliament",
		"duration":    3600,
	}
	if err := fsutil.WriteJSON(filepath.Join(in, "vid1.info.json"), info); err != nil {
		t.Fatal(err)
	}

	transcripts, err := NormalizeDir(context.Background(), in, out, now)
	if err != nil {
		t.Fatalf("NormalizeDir: %v", err)
	}
	if len(transcripts) != 2 {
		t.Fatalf("got %d transcripts", len(transcripts))
	}

	first := transcripts[0]
	if first.VideoID != "vid1" || first.Title != "PMQs" || first.PublishedAt != "2024-06-11" ||
		first.Channel != "Parliament" || first.DurationSeconds != 3600 {
		t.Errorf("metadata = %+v", first)
	}

	second := transcripts[1]
	if second.VideoID != "vid2" || second.Title != "Unknown" || second.Channel != "Unknown" || second.PublishedAt != "2025-03-14" {
		t.Errorf("fallback metadata = %+v", second)
	}

	repo := corpus.NewFileRepository(out)
	manifest, err := repo.LoadManifest()
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if manifest.TotalVideos != 2 || manifest.GeneratedAt != "2025-03-14T09:30:00Z" {
		t.Errorf("manifest = %+v", manifest)
	}
	if manifest.Videos[0].SegmentCount != 2 {
		t.Errorf("segment count = %d", manifest.Videos[0].SegmentCount)
	}

	loaded, err := repo.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(loaded) != 2 || len(loaded[0].Segments) != 2 {
		t.Errorf("round trip through corpus failed: %+v", loaded)
	}
}

func TestNormalizeDirWithoutCaptions(t *testing.T) {
	_, err := NormalizeDir(context.Background(), t.TempDir(), t.TempDir(), time.Now())
	if !errors.Is(err, ErrNoCaptions) {
		t.Errorf("err = %v, want ErrNoCaptions", err)
	}
}
