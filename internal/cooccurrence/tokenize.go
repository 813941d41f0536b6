package cooccurrence

import (
	"regexp"
	"strings"
)

var nonWordChars = regexp.MustCompile(`[^a-z\s'-]`)

var stopWords = makeSet(
	"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for",
	"of", "with", "by", "from", "is", "are", "was", "were", "be", "been",
	"being", "have", "has", "had", "do", "does", "did", "will", "would",
	"could", "should", "may", "might", "shall", "can", "need", "must",
	"it", "its", "this", "that", "these", "those", "i", "you", "he", "she",
	"we", "they", "me", "him", "her", "us", "them", "my", "your", "his",
	"our", "their", "what", "which", "who", "whom", "where", "when", "how",
	"not", "no", "nor", "so", "if", "then", "than", "too", "very", "just",
	"about", "up", "out", "also", "as", "into", "all", "some", "more",
	"other", "there", "here", "over", "such", "only", "own", "same",
	"both", "each", "well", "back", "after", "before", "between", "under",
	"again", "once", "during", "while", "because", "through", "against",
	"says", "said", "say", "going", "get", "got", "go", "one", "two",
	"new", "now", "way", "even", "still", "already", "much", "many",
	"make", "made", "think", "know", "see", "come",
	"take", "want", "look", "like", "really", "right", "yeah", "yes",
)

func makeSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// IsStopWord reports whether w is excluded from the index.
func IsStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}

// Tokenize lower-cases text, keeps only letters, apostrophes and hyphens,
// and drops stop words and tokens of two characters or fewer.
func Tokenize(text string) []string {
	cleaned := nonWordChars.ReplaceAllString(strings.ToLower(text), " ")
	fields := strings.Fields(cleaned)

	tokens := fields[:0]
	for _, f := range fields {
		if len(f) <= 2 || IsStopWord(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}
