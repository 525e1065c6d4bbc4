// Package entity resolves organization names in resolutions: mentions of
// registered entities, unregistered candidates from a recognizer, and the
// registered entity each candidate most likely refers to.
package entity

import (
	"strings"

	"github.com/TobiSchelling/resextract/internal/corpus"
	"github.com/TobiSchelling/resextract/internal/embedding"
	"github.com/TobiSchelling/resextract/internal/reference"
	"github.com/TobiSchelling/resextract/internal/textnorm"
)

var candidatePunct = strings.NewReplacer(
	",", "", ";", "", ":", "", ".", "", "(", "", ")", "",
	"0", "", "1", "", "2", "", "3", "", "4", "", "5", "", "6", "", "7", "", "8", "", "9", "",
)

const ofThe = " of the "

// Organizations are the organization names attached to a resolution or a
// paragraph.
type Organizations struct {
	Known    []string
	Original []string
	Inferred []corpus.InferredOrganization
}

// Resolver runs entity resolution over resolution text. Safe for concurrent
// use when its Recognizer is.
type Resolver struct {
	reg     *reference.Registry
	rec     Recognizer
	norm    *textnorm.Normalizer
	vectors *embedding.Cached
	checks  []check
}

// New creates a Resolver.
func New(reg *reference.Registry, rec Recognizer, norm *textnorm.Normalizer) *Resolver {
	return &Resolver{
		reg:     reg,
		rec:     rec,
		norm:    norm,
		vectors: reg.Vectors(),
		checks:  defaultChecks(),
	}
}

// Resolve finds the organizations of one resolution from its clean text.
func (r *Resolver) Resolve(clean string) Organizations {
	known := r.Known(clean)
	original := r.Filter(r.Candidates(clean))
	return Organizations{
		Known:    known,
		Original: original,
		Inferred: r.Infer(original, known),
	}
}

// Known returns the registered entities occurring in text, in registry
// order.
func (r *Resolver) Known(text string) []string {
	var out []string
	for _, e := range r.reg.Entities {
		if strings.Contains(text, e.Name) {
			out = append(out, e.Name)
		}
	}
	return out
}

// Candidates returns the cleaned organization spans the recognizer finds,
// deduplicated in order of appearance.
func (r *Resolver) Candidates(text string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, span := range r.rec.Recognize(text) {
		if span.Label != LabelOrganization || strings.ContainsAny(span.Text, "_/.") {
			continue
		}
		name := candidatePunct.Replace(span.Text)
		if strings.HasPrefix(strings.ToLower(name), "the ") {
			name = name[len("the "):]
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// Filter keeps the candidates that look like unregistered organizations.
// A candidate of the form "X of the Y" is reduced to its unregistered part
// when the other part is registered.
func (r *Resolver) Filter(candidates []string) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(name string) {
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}

	for _, org := range candidates {
		if !r.passes(org) {
			continue
		}
		if !strings.Contains(org, ofThe) {
			add(org)
			continue
		}
		parts := strings.Split(org, ofThe)
		head, tail := parts[0], parts[1]
		headKnown, tailKnown := r.reg.IsKnownEntity(head), r.reg.IsKnownEntity(tail)
		switch {
		case !headKnown && wordCount(head) > 1 && tailKnown:
			add(head)
		case headKnown && !tailKnown && wordCount(tail) > 1:
			add(tail)
		case !headKnown && !tailKnown:
			add(org)
		}
	}
	return out
}

func (r *Resolver) passes(org string) bool {
	words := strings.Fields(org)
	lower := strings.Fields(strings.ToLower(org))
	for _, c := range r.checks {
		if !c.ok(r, org, words, lower) {
			return false
		}
	}
	return true
}

// Infer pairs each candidate with the known entity sharing the most
// capitalized tokens, breaking ties by embedding similarity. Candidates
// sharing no capitalized token are paired with themselves. Nothing is
// inferred for a resolution without known entities.
func (r *Resolver) Infer(candidates, known []string) []corpus.InferredOrganization {
	if len(known) == 0 {
		return nil
	}

	type target struct {
		name   string
		tokens map[string]struct{}
		vector embedding.Vector
	}
	targets := make([]target, len(known))
	for i, name := range known {
		tokens := make(map[string]struct{})
		for _, w := range r.norm.Words(name) {
			tokens[w] = struct{}{}
		}
		e, _ := r.reg.Entity(name)
		targets[i] = target{name: name, tokens: tokens, vector: e.Vector}
	}

	var out []corpus.InferredOrganization
	for _, cand := range candidates {
		words := r.norm.Words(cand)
		vec, _ := r.vectors.Sum(r.norm.Words(strings.ToLower(cand)))

		bestCount, best, bestSim := 0, -1, 0.0
		for i, t := range targets {
			count := 0
			for _, w := range words {
				if _, ok := t.tokens[w]; ok && textnorm.StartsUppercase(w) {
					count++
				}
			}
			if count == 0 {
				continue
			}
			sim := embedding.Cosine(vec, t.vector)
			if count > bestCount || (count == bestCount && sim > bestSim) {
				bestCount, best, bestSim = count, i, sim
			}
		}

		if best < 0 {
			out = append(out, corpus.InferredOrganization{
				Candidate:  cand,
				Match:      cand,
				Similarity: 1,
				SelfPaired: true,
			})
			continue
		}
		out = append(out, corpus.InferredOrganization{
			Candidate:  cand,
			Match:      targets[best].name,
			Similarity: bestSim,
		})
	}
	return out
}

// Within restricts resolution-level organizations to those mentioned in one
// paragraph's clean text. Known entities match case-insensitively; original
// and inferred candidates match exactly.
func (o Organizations) Within(clean string) Organizations {
	lower := strings.ToLower(clean)
	var out Organizations
	for _, name := range o.Known {
		if strings.Contains(lower, strings.ToLower(name)) {
			out.Known = append(out.Known, name)
		}
	}
	for _, name := range o.Original {
		if strings.Contains(clean, name) {
			out.Original = append(out.Original, name)
		}
	}
	for _, inf := range o.Inferred {
		if strings.Contains(clean, inf.Candidate) {
			out.Inferred = append(out.Inferred, inf)
		}
	}
	return out
}

// Countries returns the countries mentioned in clean text, compared
// case-insensitively, in list order.
func Countries(clean string, countries []string) []string {
	lower := strings.ToLower(clean)
	var out []string
	for _, c := range countries {
		if strings.Contains(lower, strings.ToLower(c)) {
			out = append(out, c)
		}
	}
	return out
}

func wordCount(s string) int { return len(strings.Fields(s)) }
