// Package expander widens a search query into weighted keywords drawn from the
// query itself, its inflections, curated synonyms and corpus co-occurrence.
package expander

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"narrative-assembly/internal/logger"
	"narrative-assembly/internal/morphology"
	"narrative-assembly/models"
)

// minWordLen is the length a query word must exceed to be expanded on its own.
const minWordLen = 2

// maxInflectCalls bounds concurrent calls to the morphology service per query.
const maxInflectCalls = 4

type SynonymSource interface {
	Lookup(term string) []string
}

type CoOccurrenceSource interface {
	Lookup(term string) []models.CoOccurrenceEntry
}

type Expander struct {
	synonyms SynonymSource
	cooc     CoOccurrenceSource
	morph    morphology.Inflector
}

// New builds an Expander. Any source may be nil, in which case its category is skipped.
func New(synonyms SynonymSource, cooc CoOccurrenceSource, morph morphology.Inflector) *Expander {
	return &Expander{synonyms: synonyms, cooc: cooc, morph: morph}
}

// Expand returns the keywords for query in precedence order: primary,
// morphological, synonym, co-occurring. A term keeps the first category that
// produced it. Blank queries yield nil.
func (e *Expander) Expand(ctx context.Context, query string) []models.ExpandedKeyword {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var words []string
	for _, w := range strings.Fields(q) {
		if len(w) > minWordLen {
			words = append(words, w)
		}
	}

	set := newKeywordSet()

	set.add(q, models.CategoryPrimary, q)
	for _, w := range words {
		set.add(w, models.CategoryPrimary, q)
	}

	phrases := append([]string{q}, words...)

	for i, forms := range e.inflect(ctx, phrases) {
		for _, f := range forms {
			set.add(f, models.CategoryMorphological, phrases[i])
		}
	}

	if e.synonyms != nil {
		for _, p := range phrases {
			for _, syn := range e.synonyms.Lookup(p) {
				set.add(syn, models.CategorySynonym, p)
			}
		}
	}

	if e.cooc != nil {
		for _, p := range phrases {
			for _, entry := range e.cooc.Lookup(p) {
				set.add(entry.Term, models.CategoryCoOccurring, p)
			}
		}
	}

	return set.list()
}

// inflect asks the morphology service about every phrase concurrently and
// returns the forms indexed like phrases. A failed phrase contributes nothing.
func (e *Expander) inflect(ctx context.Context, phrases []string) [][]string {
	out := make([][]string, len(phrases))
	if e.morph == nil {
		return out
	}

	var g errgroup.Group
	g.SetLimit(maxInflectCalls)
	for i, p := range phrases {
		g.Go(func() error {
			forms, err := e.morph.Inflect(ctx, p)
			if err != nil {
				logger.Warn("Morphological expansion skipped", "phrase", p, "error", err)
				return nil
			}
			out[i] = forms.List()
			return nil
		})
	}
	g.Wait()
	return out
}
