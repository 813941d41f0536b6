// Package cooccurrence builds and serves the corpus-wide index of statistically
// associated terms used to widen keyword searches.
package cooccurrence

import (
	"context"
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"narrative-assembly/models"
)

const (
	DefaultWindowSize = 5
	DefaultMinCount   = 2
	DefaultTopN       = 10

	// scores at or below this are noise
	minScore = 0.1
)

// Options controls an index build. Non-positive values fall back to the defaults.
type Options struct {
	WindowSize int
	MinCount   int
	TopN       int
	// Workers bounds the counting goroutines. Defaults to GOMAXPROCS.
	Workers int
}

func (o Options) withDefaults() Options {
	if o.WindowSize <= 0 {
		o.WindowSize = DefaultWindowSize
	}
	if o.MinCount <= 0 {
		o.MinCount = DefaultMinCount
	}
	if o.TopN <= 0 {
		o.TopN = DefaultTopN
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	return o
}

// partners counts co-occurrences for one term, remembering the order in which
// each partner was first seen so score ties resolve deterministically.
type partners struct {
	pos    map[string]int
	terms  []string
	counts []int
}

func newPartners() *partners {
	return &partners{pos: make(map[string]int)}
}

func (p *partners) add(term string, n int) {
	if i, ok := p.pos[term]; ok {
		p.counts[i] += n
		return
	}
	p.pos[term] = len(p.terms)
	p.terms = append(p.terms, term)
	p.counts = append(p.counts, n)
}

type tally struct {
	freq  map[string]int
	pairs map[string]*partners
}

func newTally() *tally {
	return &tally{
		freq:  make(map[string]int),
		pairs: make(map[string]*partners),
	}
}

func (t *tally) partnersOf(term string) *partners {
	p, ok := t.pairs[term]
	if !ok {
		p = newPartners()
		t.pairs[term] = p
	}
	return p
}

// countTranscript slides the window over one video's token stream. Windows
// cross segment boundaries but never leave the video.
func (t *tally) countTranscript(tr models.TranscriptFile, window int) {
	var tokens []string
	for _, seg := range tr.Segments {
		tokens = append(tokens, Tokenize(seg.Text)...)
	}

	for i, term := range tokens {
		t.freq[term]++

		end := min(i+window, len(tokens))
		for j := i + 1; j < end; j++ {
			other := tokens[j]
			if other == term {
				continue
			}
			t.partnersOf(term).add(other, 1)
			t.partnersOf(other).add(term, 1)
		}
	}
}

// merge folds a later partition into t. Partners new to t are appended, so
// merging partitions in corpus order reproduces a sequential count exactly.
func (t *tally) merge(later *tally) {
	for term, n := range later.freq {
		t.freq[term] += n
	}
	for term, lp := range later.pairs {
		p := t.partnersOf(term)
		for i, other := range lp.terms {
			p.add(other, lp.counts[i])
		}
	}
}

// Build computes the co-occurrence index for a corpus. Transcripts are counted
// in contiguous partitions in parallel, then merged in order before scoring.
func Build(ctx context.Context, transcripts []models.TranscriptFile, opts Options) (models.CoOccurrenceIndex, error) {
	opts = opts.withDefaults()

	t, err := count(ctx, transcripts, opts)
	if err != nil {
		return nil, err
	}
	return t.score(opts), nil
}

func count(ctx context.Context, transcripts []models.TranscriptFile, opts Options) (*tally, error) {
	workers := min(opts.Workers, len(transcripts))
	if workers <= 1 {
		t := newTally()
		for _, tr := range transcripts {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			t.countTranscript(tr, opts.WindowSize)
		}
		return t, nil
	}

	parts := make([]*tally, workers)
	size := (len(transcripts) + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		lo := w * size
		hi := min(lo+size, len(transcripts))
		if lo >= hi {
			parts[w] = newTally()
			continue
		}
		g.Go(func() error {
			t := newTally()
			for _, tr := range transcripts[lo:hi] {
				if err := gctx.Err(); err != nil {
					return err
				}
				t.countTranscript(tr, opts.WindowSize)
			}
			parts[w] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := parts[0]
	for _, p := range parts[1:] {
		merged.merge(p)
	}
	return merged, nil
}

func (t *tally) score(opts Options) models.CoOccurrenceIndex {
	total := 0
	for _, n := range t.freq {
		total += n
	}

	index := make(models.CoOccurrenceIndex)
	for term, p := range t.pairs {
		termFreq := t.freq[term]

		var scored []models.CoOccurrenceEntry
		for i, other := range p.terms {
			c := p.counts[i]
			if c < opts.MinCount {
				continue
			}
			s, ok := Score(c, total, termFreq, t.freq[other])
			if !ok {
				continue
			}
			scored = append(scored, models.CoOccurrenceEntry{Term: other, Score: s})
		}

		sort.SliceStable(scored, func(a, b int) bool {
			return scored[a].Score > scored[b].Score
		})
		if len(scored) > opts.TopN {
			scored = scored[:opts.TopN]
		}
		if len(scored) > 0 {
			index[term] = scored
		}
	}
	return index
}

// Score maps a pair count to a normalised PMI in [0, 1], rounded to two
// decimals. ok is false when the pair is too weakly associated to keep.
func Score(count, totalTokens, termFreq, otherFreq int) (score float64, ok bool) {
	if termFreq <= 0 {
		termFreq = 1
	}
	if otherFreq <= 0 {
		otherFreq = 1
	}
	pmi := math.Log2(float64(count) * float64(totalTokens) / (float64(termFreq) * float64(otherFreq)))
	s := math.Max(0, math.Min(1, (pmi+2)/8))
	if s <= minScore {
		return 0, false
	}
	return math.Round(s*100) / 100, true
}
