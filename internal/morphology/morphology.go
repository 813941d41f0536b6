// Package morphology talks to the external NLP service that inflects words and
// pulls named entities out of headlines. Every call is best-effort.
package morphology

import (
	"context"
	"errors"
)

// ErrUnavailable is returned while the circuit breaker refuses calls.
var ErrUnavailable = errors.New("morphology service unavailable")

type NounForms struct {
	Plural   string `json:"plural"`
	Singular string `json:"singular"`
}

type VerbForms struct {
	Past    string `json:"past"`
	Present string `json:"present"`
	Gerund  string `json:"gerund"`
}

// Forms are the inflections of a phrase. Nouns is nil when the phrase has no
// noun, Verbs is nil when it has no verb.
type Forms struct {
	Nouns *NounForms `json:"nouns"`
	Verbs *VerbForms `json:"verbs"`
}

// List returns the non-empty forms as plural, singular, past, present, gerund.
func (f Forms) List() []string {
	var out []string
	add := func(s string) {
		if s != "" {
			out = append(out, s)
		}
	}
	if f.Nouns != nil {
		add(f.Nouns.Plural)
		add(f.Nouns.Singular)
	}
	if f.Verbs != nil {
		add(f.Verbs.Past)
		add(f.Verbs.Present)
		add(f.Verbs.Gerund)
	}
	return out
}

// Entities are the named things and nouns found in a piece of text, in order of appearance.
type Entities struct {
	People        []string `json:"people"`
	Organizations []string `json:"organizations"`
	Places        []string `json:"places"`
	Nouns         []string `json:"nouns"`
}

// Named returns people, then organisations, then places.
func (e Entities) Named() []string {
	out := make([]string, 0, len(e.People)+len(e.Organizations)+len(e.Places))
	out = append(out, e.People...)
	out = append(out, e.Organizations...)
	return append(out, e.Places...)
}

type Inflector interface {
	Inflect(ctx context.Context, phrase string) (Forms, error)
}

type EntityExtractor interface {
	Entities(ctx context.Context, text string) (Entities, error)
}

// Analyzer is the full service surface.
type Analyzer interface {
	Inflector
	EntityExtractor
}

// Noop is used when no service is configured. It finds nothing and never fails.
type Noop struct{}

func (Noop) Inflect(context.Context, string) (Forms, error) { return Forms{}, nil }

func (Noop) Entities(context.Context, string) (Entities, error) { return Entities{}, nil }
