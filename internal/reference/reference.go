// Package reference builds the immutable lookup tables the annotators share:
// the controlled vocabulary, verb lists, taxonomy statements and the
// known-entity registry with their aggregate embeddings.
package reference

import (
	"errors"
	"fmt"
	"strings"

	"github.com/TobiSchelling/resextract/internal/embedding"
	"github.com/TobiSchelling/resextract/internal/textnorm"
)

// Kind distinguishes the two statement levels of the taxonomy.
type Kind string

const (
	KindTarget    Kind = "Targets"
	KindIndicator Kind = "Indicators"
)

var (
	// ErrNoStatements is returned when the taxonomy has neither targets nor
	// indicators.
	ErrNoStatements = errors.New("taxonomy has no statements")
	// ErrUnknownKind is returned for a taxonomy row that is neither a target
	// nor an indicator.
	ErrUnknownKind = errors.New("unknown taxonomy statement type")
)

// TaxonomyRow is one line of the taxonomy table.
type TaxonomyRow struct {
	Content  string
	Type     string
	Category string
}

// Statement is a taxonomy target or indicator prepared for matching.
type Statement struct {
	Text     string
	Kind     Kind
	Category string
	Alpha    string
	Words    []string
	Vector   embedding.Vector
}

// KnownEntity is a registered organization name with its aggregate vector.
type KnownEntity struct {
	Name   string
	Vector embedding.Vector
}

// Sources are the raw inputs the registry is built from.
type Sources struct {
	Vocabulary         []string
	Taxonomy           []TaxonomyRow
	Countries          []string
	Agencies           []string
	KnownOrganizations []string
	CorporateNames     []string
}

// Registry holds the read-only reference data. Safe for concurrent use once
// built.
type Registry struct {
	Vocabulary []string
	Targets    []Statement
	Indicators []Statement
	Entities   []KnownEntity
	Countries  []string

	allowKeywords []string
	denyKeywords  []string

	introductory    map[string]struct{}
	operative       map[string]struct{}
	pluralOperative map[string]struct{}
	stopwords       map[string]struct{}
	entityIndex     map[string]int
	entityLower     []string

	vectors *embedding.Cached
}

// Build validates the sources and precomputes statement and entity vectors.
// A nil lookup yields a registry without vectors.
func Build(src Sources, lookup embedding.Lookup, norm *textnorm.Normalizer) (*Registry, error) {
	if lookup == nil {
		lookup = embedding.NewStore(0)
	}
	r := &Registry{
		Vocabulary:      uniqueLower(src.Vocabulary),
		introductory:    toSet(introductoryVerbs),
		operative:       toSet(operativeVerbs),
		pluralOperative: make(map[string]struct{}),
		stopwords:       toSet(englishStopwords),
		allowKeywords:   lowerAll(organizationKeywords),
		denyKeywords:    lowerAll(nonOrganizationKeywords),
		vectors:         embedding.NewCached(lookup, 0),
	}
	for _, v := range operativeVerbs {
		if strings.HasSuffix(v, "s") {
			r.pluralOperative[v] = struct{}{}
		}
	}

	if err := r.loadTaxonomy(src.Taxonomy, norm); err != nil {
		return nil, err
	}

	r.Countries = NormalizeCountries(src.Countries)
	names := EntityNames(src.Agencies, src.KnownOrganizations, src.CorporateNames, r.Countries)
	r.entityIndex = make(map[string]int, len(names))
	for _, name := range names {
		v, _ := r.vectors.Sum(norm.Words(strings.ToLower(name)))
		r.entityIndex[name] = len(r.Entities)
		r.Entities = append(r.Entities, KnownEntity{Name: name, Vector: v})
		r.entityLower = append(r.entityLower, strings.ToLower(name))
	}
	return r, nil
}

func (r *Registry) loadTaxonomy(rows []TaxonomyRow, norm *textnorm.Normalizer) error {
	seen := make(map[string]struct{})
	for i, row := range rows {
		text := strings.TrimSpace(row.Content)
		if text == "" {
			continue
		}
		kind := Kind(strings.TrimSpace(row.Type))
		if kind != KindTarget && kind != KindIndicator {
			return fmt.Errorf("taxonomy row %d: %w: %q", i+1, ErrUnknownKind, row.Type)
		}
		key := string(kind) + "\x00" + text
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		alpha, words := norm.Alpha(text)
		v, _ := r.vectors.Sum(words)
		s := Statement{
			Text:     text,
			Kind:     kind,
			Category: strings.TrimSpace(row.Category),
			Alpha:    alpha,
			Words:    words,
			Vector:   v,
		}
		if kind == KindTarget {
			r.Targets = append(r.Targets, s)
		} else {
			r.Indicators = append(r.Indicators, s)
		}
	}
	if len(r.Targets) == 0 && len(r.Indicators) == 0 {
		return ErrNoStatements
	}
	return nil
}

// Vectors returns the memoized embedding lookup shared by the annotators.
func (r *Registry) Vectors() *embedding.Cached { return r.vectors }

// IsIntroductoryVerb reports whether w opens an introductory paragraph.
func (r *Registry) IsIntroductoryVerb(w string) bool {
	_, ok := r.introductory[w]
	return ok
}

// IsOperativeVerb reports whether w opens an operative paragraph.
func (r *Registry) IsOperativeVerb(w string) bool {
	_, ok := r.operative[w]
	return ok
}

// IsLeadVerb reports whether w is any paragraph-opening verb.
func (r *Registry) IsLeadVerb(w string) bool {
	return r.IsIntroductoryVerb(w) || r.IsOperativeVerb(w)
}

// IsPluralOperativeVerb reports whether w is a third-person operative verb
// such as "decides".
func (r *Registry) IsPluralOperativeVerb(w string) bool {
	_, ok := r.pluralOperative[w]
	return ok
}

// IsStopword reports whether w is an English stopword.
func (r *Registry) IsStopword(w string) bool {
	_, ok := r.stopwords[w]
	return ok
}

// IsKnownEntity reports whether name is a registered entity (exact match).
func (r *Registry) IsKnownEntity(name string) bool {
	_, ok := r.entityIndex[name]
	return ok
}

// Entity returns the registered entity with the given name.
func (r *Registry) Entity(name string) (KnownEntity, bool) {
	i, ok := r.entityIndex[name]
	if !ok {
		return KnownEntity{}, false
	}
	return r.Entities[i], true
}

// WithinKnownEntity reports whether s occurs, case-insensitively, inside
// any registered entity name.
func (r *Registry) WithinKnownEntity(s string) bool {
	s = strings.ToLower(s)
	for _, name := range r.entityLower {
		if strings.Contains(name, s) {
			return true
		}
	}
	return false
}

// HasOrganizationKeyword reports whether s contains a keyword that marks an
// organization.
func (r *Registry) HasOrganizationKeyword(s string) bool {
	return containsAny(strings.ToLower(s), r.allowKeywords)
}

// HasNonOrganizationKeyword reports whether s contains a keyword that marks
// something other than an organization.
func (r *Registry) HasNonOrganizationKeyword(s string) bool {
	return containsAny(strings.ToLower(s), r.denyKeywords)
}

// Statements returns the statements of the given kind.
func (r *Registry) Statements(kind Kind) []Statement {
	if kind == KindTarget {
		return r.Targets
	}
	return r.Indicators
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func lowerAll(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ToLower(w)
	}
	return out
}

func uniqueLower(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	var out []string
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
