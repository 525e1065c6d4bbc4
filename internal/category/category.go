// Package category tags paragraphs with a development-goal category using an
// ordered table of keyword rules.
package category

import "strings"

// Text is the paragraph view rules are evaluated against.
type Text struct {
	Tokens map[string]struct{}
	// Lower is the lowercased stripped content, used for phrase matches.
	Lower string
}

// NewText builds a Text from lowercase tokens and the stripped content.
func NewText(tokens []string, stripped string) Text {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return Text{Tokens: set, Lower: strings.ToLower(stripped)}
}

// Predicate decides whether a rule applies.
type Predicate func(Text) bool

// AnyToken matches when any word is one of the paragraph tokens.
func AnyToken(words ...string) Predicate {
	return func(t Text) bool {
		for _, w := range words {
			if _, ok := t.Tokens[w]; ok {
				return true
			}
		}
		return false
	}
}

// AnyPhrase matches when any phrase occurs in the lowercased content.
func AnyPhrase(phrases ...string) Predicate {
	return func(t Text) bool {
		for _, p := range phrases {
			if strings.Contains(t.Lower, p) {
				return true
			}
		}
		return false
	}
}

// AnyOf matches when any predicate matches.
func AnyOf(ps ...Predicate) Predicate {
	return func(t Text) bool {
		for _, p := range ps {
			if p(t) {
				return true
			}
		}
		return false
	}
}

// AllOf matches when every predicate matches.
func AllOf(ps ...Predicate) Predicate {
	return func(t Text) bool {
		for _, p := range ps {
			if !p(t) {
				return false
			}
		}
		return true
	}
}

// Not negates p.
func Not(p Predicate) Predicate {
	return func(t Text) bool { return !p(t) }
}

// Rule assigns Category when Match holds.
type Rule struct {
	Category string
	Match    Predicate
}

// DefaultRules returns the keyword cascade, one rule per goal, in priority
// order.
func DefaultRules() []Rule {
	return []Rule{
		{"No Poverty", AnyToken("poverty", "poor")},
		{"Zero Hunger", AnyPhrase("hunger", "hungry", "malnutrition", "food crisis", "sufficient food",
			"food producers", "food production", "food reserves", "food price", "food insecurity",
			"food security", "undernutrition")},
		{"Good Health and Well-Being", AnyToken("health", "well-being", "mortality", "disease")},
		{"Quality Education", AnyToken("education", "educational")},
		{"Gender Equality", AnyPhrase("gender equality")},
		{"Clean Water and Sanitation", AnyToken("water", "sanitation", "wastewater")},
		{"Affordable and Clean Energy", AnyToken("energy", "renewable")},
		{"Decent Work and Economic Growth", AnyOf(
			AnyToken("labour-intensive", "employment"),
			AnyPhrase("child labour", "labour rights", "decent work", "economic growth", "economic productivity"),
		)},
		{"Industry, Innovation and Infrastructure", AnyToken("industry", "innovation", "infrastructure")},
		{"Reduced Inequalities", AllOf(
			AnyToken("inequalities", "inequality"),
			Not(AnyPhrase("gender equality")),
		)},
		{"Sustainable Cities and Communities", AnyPhrase("sustainable cities")},
		{"Responsible Consumption and Production", AnyPhrase("consumption and production")},
		{"Climate Action", AnyPhrase("climate change", "climate-related", "natural disaster",
			"national disaster", "local disaster")},
		{"Life Below Water", AnyOf(
			AnyToken("marine", "fisheries", "coastal"),
			AnyPhrase("oceans and seas"),
		)},
		{"Life on Land", AnyToken("biodiversity", "land", "inland", "species")},
		{"Peace, Justice and Strong Institutions", AllOf(
			AnyToken("institutions"),
			AnyToken("peace", "justice", "strong"),
		)},
		{"Partnerships for the Goals", AnyToken("partner", "partners", "partnership", "partnerships")},
	}
}

// Tagger applies rules in order; the first matching rule decides.
type Tagger struct {
	rules []Rule
}

// NewTagger creates a Tagger. A nil rule set uses DefaultRules.
func NewTagger(rules []Rule) *Tagger {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Tagger{rules: rules}
}

// Tag returns the category of the first matching rule.
func (g *Tagger) Tag(t Text) (string, bool) {
	for _, r := range g.rules {
		if r.Match(t) {
			return r.Category, true
		}
	}
	return "", false
}
