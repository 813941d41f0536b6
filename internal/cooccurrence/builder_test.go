package cooccurrence

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"narrative-assembly/models"
)

func transcript(id string, texts ...string) models.TranscriptFile {
	tr := models.TranscriptFile{VideoID: id, Title: id}
	for i, text := range texts {
		tr.Segments = append(tr.Segments, models.TranscriptSegment{Start: float64(i * 4), Dur: 4, Text: text})
	}
	return tr
}

func build(t *testing.T, transcripts []models.TranscriptFile, opts Options) models.CoOccurrenceIndex {
	t.Helper()
	idx, err := Build(context.Background(), transcripts, opts)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return idx
}

func TestScoreMatchesWorkedExample(t *testing.T) {
	// 10 co-occurrences, frequencies 20 and 15, 1000 tokens in total
	got, ok := Score(10, 1000, 20, 15)
	if !ok {
		t.Fatal("expected pair to be kept")
	}
	if got != 0.88 {
		t.Errorf("Score = %v, want 0.88", got)
	}
}

func TestScoreDropsWeakPairs(t *testing.T) {
	if s, ok := Score(1, 10, 10, 10); ok {
		t.Errorf("expected weak pair to be dropped, got %v", s)
	}
}

func TestScoreClampsToOne(t *testing.T) {
	got, ok := Score(1000, 1_000_000, 1, 1)
	if !ok || got != 1 {
		t.Errorf("Score = %v, %v; want 1, true", got, ok)
	}
}

func TestBuildScoresAndTieOrder(t *testing.T) {
	corpus := []models.TranscriptFile{
		transcript("v1", "immigration borders", "immigration borders", "economy growth"),
	}
	idx := build(t, corpus, Options{WindowSize: 5, MinCount: 2, TopN: 10})

	want := models.CoOccurrenceIndex{
		"immigration": {{Term: "borders", Score: 0.57}, {Term: "economy", Score: 0.57}},
		"borders":     {{Term: "immigration", Score: 0.57}, {Term: "economy", Score: 0.57}, {Term: "growth", Score: 0.57}},
		"economy":     {{Term: "immigration", Score: 0.57}, {Term: "borders", Score: 0.57}},
		"growth":      {{Term: "borders", Score: 0.57}},
	}
	if !reflect.DeepEqual(idx, want) {
		t.Errorf("Build() =\n%v\nwant\n%v", idx, want)
	}
}

func TestBuildTopN(t *testing.T) {
	corpus := []models.TranscriptFile{
		transcript("v1", "immigration borders", "immigration borders", "economy growth"),
	}
	idx := build(t, corpus, Options{WindowSize: 5, MinCount: 2, TopN: 1})

	if got := idx["immigration"]; len(got) != 1 || got[0].Term != "borders" {
		t.Errorf("immigration = %v, want only borders", got)
	}
}

func TestBuildWindowCrossesSegmentsNotVideos(t *testing.T) {
	sameVideo := build(t, []models.TranscriptFile{
		transcript("v1", "immigration", "borders"),
	}, Options{MinCount: 1})
	if got := sameVideo["immigration"]; len(got) != 1 || got[0].Term != "borders" || got[0].Score != 0.38 {
		t.Errorf("segment boundary pair = %v, want borders at 0.38", got)
	}

	separate := build(t, []models.TranscriptFile{
		transcript("v1", "immigration"),
		transcript("v2", "borders"),
	}, Options{MinCount: 1})
	if len(separate) != 0 {
		t.Errorf("windows must not span videos, got %v", separate)
	}
}

func TestBuildMinCount(t *testing.T) {
	corpus := []models.TranscriptFile{transcript("v1", "immigration borders")}
	if idx := build(t, corpus, Options{MinCount: 2}); len(idx) != 0 {
		t.Errorf("single co-occurrence should not pass minCount 2, got %v", idx)
	}
}

func TestBuildWindowSize(t *testing.T) {
	// with a window of 2 only adjacent tokens pair up
	corpus := []models.TranscriptFile{transcript("v1", "alpha bravo charlie")}
	idx := build(t, corpus, Options{WindowSize: 2, MinCount: 1})

	for _, e := range idx["alpha"] {
		if e.Term == "charlie" {
			t.Fatalf("alpha and charlie are two apart and must not pair: %v", idx["alpha"])
		}
	}
	if len(idx["bravo"]) != 2 {
		t.Errorf("bravo should pair with both neighbours, got %v", idx["bravo"])
	}
}

func TestBuildParallelMatchesSequential(t *testing.T) {
	words := []string{"immigration", "borders", "economy", "growth", "housing", "rent", "police", "crime"}
	var corpus []models.TranscriptFile
	for v := 0; v < 23; v++ {
		var segs []string
		for s := 0; s < 6; s++ {
			segs = append(segs, fmt.Sprintf("%s %s %s",
				words[(v+s)%len(words)], words[(v*3+s)%len(words)], words[(s*5+1)%len(words)]))
		}
		corpus = append(corpus, transcript(fmt.Sprintf("v%02d", v), segs...))
	}

	sequential := build(t, corpus, Options{Workers: 1})
	for _, workers := range []int{2, 3, 8, 64} {
		parallel := build(t, corpus, Options{Workers: workers})
		if !reflect.DeepEqual(sequential, parallel) {
			t.Fatalf("workers=%d produced a different index", workers)
		}
	}
}

func TestBuildEntriesSortedAndBounded(t *testing.T) {
	corpus := []models.TranscriptFile{
		transcript("v1", "immigration borders asylum", "immigration borders visa", "immigration asylum"),
		transcript("v2", "borders asylum economy", "economy immigration growth"),
	}
	idx := build(t, corpus, Options{MinCount: 1, TopN: 3})

	for term, list := range idx {
		if len(list) == 0 || len(list) > 3 {
			t.Errorf("%s has %d entries", term, len(list))
		}
		for i, e := range list {
			if e.Score <= minScore || e.Score > 1 {
				t.Errorf("%s -> %s score %v out of range", term, e.Term, e.Score)
			}
			if i > 0 && list[i-1].Score < e.Score {
				t.Errorf("%s entries not sorted: %v", term, list)
			}
		}
	}
}

func TestBuildCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	corpus := []models.TranscriptFile{transcript("v1", "a"), transcript("v2", "b")}
	if _, err := Build(ctx, corpus, Options{Workers: 2}); err == nil {
		t.Fatal("expected context error")
	}
}

func TestBuildEmptyCorpus(t *testing.T) {
	if idx := build(t, nil, Options{}); len(idx) != 0 {
		t.Errorf("expected empty index, got %v", idx)
	}
}
