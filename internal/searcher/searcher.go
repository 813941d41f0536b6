// Package searcher scores transcript segments against expanded keywords and
// turns the best of them into padded, non-overlapping clips.
package searcher

import (
	"context"
	"regexp"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"narrative-assembly/models"
)

const (
	DefaultMaxClips = 15

	// ClipPadding is the lead-in and trail added around a matched segment, in seconds.
	ClipPadding = 2.0
)

type matcher struct {
	term   string
	weight float64
	re     *regexp.Regexp
}

// compile builds a case-insensitive whole-word matcher per keyword. Empty terms never match.
func compile(keywords []models.ExpandedKeyword) []matcher {
	ms := make([]matcher, 0, len(keywords))
	for _, kw := range keywords {
		if kw.Term == "" {
			continue
		}
		ms = append(ms, matcher{
			term:   kw.Term,
			weight: kw.Weight,
			re:     regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(kw.Term) + `\b`),
		})
	}
	return ms
}

// Search returns at most maxClips clips ordered by score. Ties keep corpus
// order and a clip overlapping a better one from the same video is dropped.
// The only error is ctx's.
func Search(ctx context.Context, transcripts []models.TranscriptFile, keywords []models.ExpandedKeyword, maxClips int) ([]models.ClipMatch, error) {
	if maxClips <= 0 {
		return []models.ClipMatch{}, nil
	}
	matchers := compile(keywords)
	if len(matchers) == 0 || len(transcripts) == 0 {
		return []models.ClipMatch{}, nil
	}

	perVideo := make([][]models.ClipMatch, len(transcripts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range transcripts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			perVideo[i] = scoreTranscript(&transcripts[i], matchers)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var candidates []models.ClipMatch
	for _, clips := range perVideo {
		candidates = append(candidates, clips...)
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].Score > candidates[b].Score
	})

	result := dedupe(candidates, maxClips)
	return result, nil
}

func scoreTranscript(tr *models.TranscriptFile, matchers []matcher) []models.ClipMatch {
	var clips []models.ClipMatch
	for _, seg := range tr.Segments {
		score := 0.0
		var matched []string
		for _, m := range matchers {
			if m.re.MatchString(seg.Text) {
				score += m.weight
				matched = append(matched, m.term)
			}
		}
		if score <= 0 {
			continue
		}
		clips = append(clips, models.ClipMatch{
			VideoID:         tr.VideoID,
			VideoTitle:      tr.Title,
			PublishedAt:     tr.PublishedAt,
			StartTime:       max(0, seg.Start-ClipPadding),
			EndTime:         seg.End() + ClipPadding,
			Text:            seg.Text,
			Score:           score,
			MatchedKeywords: matched,
		})
	}
	return clips
}

// dedupe walks sorted clips and keeps each one that does not overlap an
// already kept clip from the same video, stopping once limit are kept.
func dedupe(sorted []models.ClipMatch, limit int) []models.ClipMatch {
	kept := make([]models.ClipMatch, 0, min(limit, len(sorted)))
	for _, c := range sorted {
		if len(kept) == limit {
			break
		}
		overlaps := false
		for _, k := range kept {
			if k.Overlaps(c) {
				overlaps = true
				break
			}
		}
		if !overlaps {
			kept = append(kept, c)
		}
	}
	return kept
}
