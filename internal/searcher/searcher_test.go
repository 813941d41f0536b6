package searcher

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"narrative-assembly/internal/fixtures"
	"narrative-assembly/models"
)

func kw(term string, category models.KeywordCategory) models.ExpandedKeyword {
	return models.ExpandedKeyword{Term: term, Category: category, Weight: category.Weight(), Source: term}
}

func primary(terms ...string) []models.ExpandedKeyword {
	var out []models.ExpandedKeyword
	for _, t := range terms {
		out = append(out, kw(t, models.CategoryPrimary))
	}
	return out
}

func search(t *testing.T, transcripts []models.TranscriptFile, keywords []models.ExpandedKeyword, maxClips int) []models.ClipMatch {
	t.Helper()
	clips, err := Search(context.Background(), transcripts, keywords, maxClips)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	return clips
}

func TestSearchEndToEndExample(t *testing.T) {
	tr := fixtures.Single("v1", "NHS waiting lists have reached an all time high", 0, 5)
	clips := search(t, []models.TranscriptFile{tr}, primary("nhs"), DefaultMaxClips)

	want := []models.ClipMatch{{
		VideoID:         "v1",
		VideoTitle:      "v1",
		PublishedAt:     "2025-12-10",
		StartTime:       0,
		EndTime:         7,
		Text:            "NHS waiting lists have reached an all time high",
		Score:           1.0,
		MatchedKeywords: []string{"nhs"},
	}}
	if !reflect.DeepEqual(clips, want) {
		t.Errorf("Search = %+v\nwant %+v", clips, want)
	}
}

func TestSearchPadding(t *testing.T) {
	tr := fixtures.Single("v1", "immigration figures", 10, 3)
	clips := search(t, []models.TranscriptFile{tr}, primary("immigration"), 5)
	if len(clips) != 1 || clips[0].StartTime != 8 || clips[0].EndTime != 15 {
		t.Fatalf("clip = %+v, want 8..15", clips)
	}
}

func TestSearchFindsKeyword(t *testing.T) {
	clips := search(t, fixtures.Corpus(), primary("immigration"), DefaultMaxClips)
	if len(clips) == 0 {
		t.Fatal("expected matches")
	}
	for _, c := range clips {
		if !strings.Contains(strings.ToLower(c.Text), "immigration") {
			t.Errorf("clip text %q does not mention immigration", c.Text)
		}
	}
}

func TestSearchScoreIsSumOfWeights(t *testing.T) {
	keywords := []models.ExpandedKeyword{
		kw("immigration", models.CategoryPrimary),
		kw("nhs", models.CategorySynonym),
		kw("staff", models.CategoryCoOccurring),
	}
	clips := search(t, []models.TranscriptFile{fixtures.Immigration()}, keywords, DefaultMaxClips)
	if len(clips) == 0 {
		t.Fatal("expected matches")
	}
	top := clips[0]
	if top.Score != 1.0+0.5+0.3 {
		t.Errorf("top score = %v, want 1.8", top.Score)
	}
	if !reflect.DeepEqual(top.MatchedKeywords, []string{"immigration", "nhs", "staff"}) {
		t.Errorf("matched = %v", top.MatchedKeywords)
	}
	for _, c := range clips {
		if c.Score <= 0 {
			t.Errorf("clip with non-positive score: %+v", c)
		}
	}
}

func TestSearchNoMatch(t *testing.T) {
	clips := search(t, fixtures.Corpus(), primary("cryptocurrency"), DefaultMaxClips)
	if clips == nil || len(clips) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", clips)
	}
}

func TestSearchEmptyInputs(t *testing.T) {
	if got := search(t, nil, primary("nhs"), 10); len(got) != 0 {
		t.Errorf("no transcripts: %v", got)
	}
	if got := search(t, fixtures.Corpus(), nil, 10); len(got) != 0 {
		t.Errorf("no keywords: %v", got)
	}
	if got := search(t, fixtures.Corpus(), primary(""), 10); len(got) != 0 {
		t.Errorf("empty term must not match: %v", got)
	}
}

func TestSearchMaxClips(t *testing.T) {
	keywords := primary("the")
	for _, n := range []int{3, 1} {
		if got := search(t, fixtures.Corpus(), keywords, n); len(got) > n {
			t.Errorf("maxClips=%d returned %d", n, len(got))
		}
	}
	for _, n := range []int{0, -1} {
		if got := search(t, fixtures.Corpus(), keywords, n); len(got) != 0 {
			t.Errorf("maxClips=%d returned %d clips, want 0", n, len(got))
		}
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	upper := search(t, fixtures.Corpus(), primary("NHS"), DefaultMaxClips)
	lower := search(t, fixtures.Corpus(), primary("nhs"), DefaultMaxClips)
	if len(upper) == 0 || len(upper) != len(lower) {
		t.Errorf("upper=%d lower=%d", len(upper), len(lower))
	}
}

func TestSearchSortedDescending(t *testing.T) {
	keywords := []models.ExpandedKeyword{
		kw("government", models.CategoryPrimary),
		kw("pressure", models.CategorySynonym),
		kw("record", models.CategoryCoOccurring),
		kw("waiting", models.CategoryMorphological),
	}
	clips := search(t, fixtures.Corpus(), keywords, 50)
	for i := 1; i < len(clips); i++ {
		if clips[i-1].Score < clips[i].Score {
			t.Fatalf("clips not sorted at %d: %v then %v", i, clips[i-1].Score, clips[i].Score)
		}
	}
}

func TestSearchTiesKeepCorpusOrder(t *testing.T) {
	corpus := []models.TranscriptFile{
		fixtures.Single("b", "energy policy", 0, 3),
		fixtures.Single("a", "energy prices", 0, 3),
	}
	clips := search(t, corpus, primary("energy"), 10)
	if len(clips) != 2 || clips[0].VideoID != "b" || clips[1].VideoID != "a" {
		t.Errorf("tie order = %v", clips)
	}
}

func TestSearchNoOverlapsWithinVideo(t *testing.T) {
	keywords := []models.ExpandedKeyword{
		kw("immigration", models.CategoryPrimary),
		kw("migration", models.CategoryMorphological),
		kw("workers", models.CategorySynonym),
	}
	clips := search(t, []models.TranscriptFile{fixtures.Immigration()}, keywords, 50)
	if len(clips) == 0 {
		t.Fatal("expected matches")
	}
	for i := range clips {
		for j := i + 1; j < len(clips); j++ {
			if clips[i].Overlaps(clips[j]) {
				t.Errorf("clips overlap: %+v and %+v", clips[i], clips[j])
			}
		}
	}
}

func TestSearchOverlapKeepsHigherScore(t *testing.T) {
	tr := models.TranscriptFile{
		VideoID: "v1",
		Segments: []models.TranscriptSegment{
			{Start: 0, Dur: 4, Text: "housing"},
			{Start: 4, Dur: 4, Text: "housing and rent"},
		},
	}
	keywords := []models.ExpandedKeyword{kw("housing", models.CategoryPrimary), kw("rent", models.CategorySynonym)}
	clips := search(t, []models.TranscriptFile{tr}, keywords, 10)
	if len(clips) != 1 || clips[0].Text != "housing and rent" {
		t.Errorf("expected only the higher scoring clip, got %+v", clips)
	}
}

func TestSearchOverlapAcrossVideosAllowed(t *testing.T) {
	corpus := []models.TranscriptFile{
		fixtures.Single("v1", "tariffs", 10, 4),
		fixtures.Single("v2", "tariffs", 10, 4),
	}
	if clips := search(t, corpus, primary("tariffs"), 10); len(clips) != 2 {
		t.Errorf("same times in different videos should both be kept, got %d", len(clips))
	}
}

func TestSearchWholeWord(t *testing.T) {
	coalition := fixtures.Single("c", "The coalition government has agreed on new policies", 0, 5)
	if clips := search(t, []models.TranscriptFile{coalition}, primary("coal"), 10); len(clips) != 0 {
		t.Errorf("coal must not match coalition: %v", clips)
	}

	mixed := models.TranscriptFile{
		VideoID: "m",
		Segments: []models.TranscriptSegment{
			{Start: 0, Dur: 5, Text: "The coal mining industry faces new regulations"},
			{Start: 5, Dur: 5, Text: "Meanwhile the coalition has debated energy policy"},
		},
	}
	clips := search(t, []models.TranscriptFile{mixed}, primary("coal"), 10)
	if len(clips) != 1 || !strings.Contains(clips[0].Text, "coal mining") {
		t.Errorf("expected only the coal mining segment, got %v", clips)
	}
}

func TestSearchPossessive(t *testing.T) {
	tr := fixtures.Single("p", "The government's new policy has been announced", 0, 5)
	if clips := search(t, []models.TranscriptFile{tr}, primary("government"), 10); len(clips) != 1 {
		t.Errorf("government should match government's, got %v", clips)
	}
}

func TestSearchRegexMetacharacters(t *testing.T) {
	tr := fixtures.Single("ae", "Queues at A&E grew again", 0, 5)
	if clips := search(t, []models.TranscriptFile{tr}, primary("a&e", "(co2"), 10); len(clips) != 1 {
		t.Errorf("expected literal match for a&e, got %v", clips)
	}
}

func TestSearchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Search(ctx, fixtures.Corpus(), primary("nhs"), 10); err == nil {
		t.Fatal("expected context error")
	}
}
