package topics

import (
	"context"
	"regexp"
	"strings"

	"narrative-assembly/internal/logger"
	"narrative-assembly/internal/morphology"
)

const (
	maxTopicLen    = 30
	minNounLen     = 3
	maxNounLen     = 25
	minFallbackLen = 4
	fallbackWords  = 3
)

var (
	leadingArticle = regexp.MustCompile(`(?i)^(the|a|an|this|that|some)\s+`)
	punctuation    = regexp.MustCompile(`[^\w\s]`)
)

// Extractor reduces a headline to a short search phrase.
type Extractor struct {
	entities morphology.EntityExtractor
}

// NewExtractor uses ents for named entities and noun phrases. With a nil
// extractor only the word heuristic is used.
func NewExtractor(ents morphology.EntityExtractor) *Extractor {
	return &Extractor{entities: ents}
}

// Extract prefers the first named entity, then one or two short noun
// phrases, then the first few longer words. The result is at most 30 characters
// and empty only for an empty title.
func (x *Extractor) Extract(ctx context.Context, title string) string {
	var ents morphology.Entities
	if x != nil && x.entities != nil {
		var err error
		ents, err = x.entities.Entities(ctx, title)
		if err != nil {
			logger.Debug("Entity extraction failed, using word heuristic", "title", title, "error", err)
		}
	}
	return extractFrom(title, ents)
}

func extractFrom(title string, ents morphology.Entities) string {
	if named := ents.Named(); len(named) > 0 {
		if e := strings.TrimSpace(named[0]); e != "" && len(e) <= maxTopicLen {
			return e
		}
	}

	var nouns []string
	for _, n := range ents.Nouns {
		n = strings.TrimSpace(leadingArticle.ReplaceAllString(n, ""))
		if len(n) >= minNounLen && len(n) <= maxNounLen {
			nouns = append(nouns, n)
		}
	}
	if len(nouns) >= 2 && len(nouns[0])+len(nouns[1])+1 <= maxTopicLen {
		return nouns[0] + " " + nouns[1]
	}
	if len(nouns) > 0 {
		return nouns[0]
	}

	return fallbackWordsFrom(title)
}

func fallbackWordsFrom(title string) string {
	var picked []string
	length := 0
	for _, w := range strings.Fields(punctuation.ReplaceAllString(title, "")) {
		if len(w) < minFallbackLen {
			continue
		}
		if len(picked) == fallbackWords {
			break
		}
		next := length + len(w)
		if len(picked) > 0 {
			next++
		}
		if next > maxTopicLen {
			break
		}
		picked = append(picked, w)
		length = next
	}
	if len(picked) > 0 {
		return strings.Join(picked, " ")
	}

	t := strings.TrimSpace(title)
	if len(t) > maxTopicLen {
		t = strings.TrimSpace(t[:maxTopicLen])
	}
	return t
}
