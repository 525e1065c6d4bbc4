// Package taxonomy scores paragraphs against the target and indicator
// statements of the development-goal taxonomy.
package taxonomy

import (
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/TobiSchelling/resextract/internal/embedding"
	"github.com/TobiSchelling/resextract/internal/reference"
)

// maxBlocks is how many of the longest matching blocks are compared.
const maxBlocks = 3

// Thresholds are the minimum similarities for a closest statement to be
// reported.
type Thresholds struct {
	Target    float64
	Indicator float64
}

// DefaultThresholds returns the standard cut-offs.
func DefaultThresholds() Thresholds {
	return Thresholds{Target: 0.9, Indicator: 0.9}
}

type statement struct {
	*reference.Statement
	chars []string
}

// Matcher finds the closest taxonomy statement for a paragraph. Safe for
// concurrent use.
type Matcher struct {
	targets    []statement
	indicators []statement
	vectors    *embedding.Cached
	thresholds Thresholds
}

// New creates a Matcher over the registry's statements.
func New(reg *reference.Registry, th Thresholds) *Matcher {
	return &Matcher{
		targets:    prepare(reg.Targets),
		indicators: prepare(reg.Indicators),
		vectors:    reg.Vectors(),
		thresholds: th,
	}
}

func prepare(list []reference.Statement) []statement {
	out := make([]statement, len(list))
	for i := range list {
		out[i] = statement{Statement: &list[i], chars: strings.Split(list[i].Alpha, "")}
	}
	return out
}

// Match is the outcome for one paragraph. Both scores are always set;
// at most one of Target and Indicator is.
type Match struct {
	TargetScore    float64
	IndicatorScore float64
	Target         *reference.Statement
	Indicator      *reference.Statement
}

// Category returns the category of the chosen statement, if any.
func (m Match) Category() string {
	switch {
	case m.Target != nil:
		return m.Target.Category
	case m.Indicator != nil:
		return m.Indicator.Category
	}
	return ""
}

// Match scores the paragraph alpha form against every statement. A target
// wins when it clears its threshold and scores at least as high as the best
// indicator; otherwise an indicator wins on the same terms.
func (m *Matcher) Match(alpha string, words []string) Match {
	p := paragraph{chars: strings.Split(alpha, ""), words: toSet(words)}

	bestT, maxT := m.best(p, m.targets)
	bestI, maxI := m.best(p, m.indicators)

	res := Match{TargetScore: maxT, IndicatorScore: maxI}
	switch {
	case bestT != nil && maxT >= m.thresholds.Target && maxT >= maxI:
		res.Target = bestT
	case bestI != nil && maxI >= m.thresholds.Indicator && maxI >= maxT:
		res.Indicator = bestI
	}
	return res
}

type paragraph struct {
	chars []string
	words map[string]struct{}
}

func (m *Matcher) best(p paragraph, list []statement) (*reference.Statement, float64) {
	var best *reference.Statement
	var top float64
	for _, s := range list {
		score := m.similarity(p, s)
		if best == nil || score > top {
			best, top = s.Statement, score
		}
	}
	return best, top
}

// similarity compares the longest shared character blocks with the
// statement: semantically when the shared words have vectors, otherwise
// by the share of statement words covered.
func (m *Matcher) similarity(p paragraph, s statement) float64 {
	if len(s.Words) == 0 {
		return 0
	}
	blocks := CommonSubstrings(p.chars, s.chars)
	if len(blocks) > maxBlocks {
		blocks = blocks[:maxBlocks]
	}

	var shared []string
	for _, w := range strings.Fields(strings.Join(blocks, " ")) {
		if _, ok := p.words[w]; ok {
			shared = append(shared, w)
		}
	}

	known := embedding.Known(m.vectors, shared)
	if len(known) > 0 && s.Vector != nil {
		// Paragraph-side phrases rarely repeat; summing them bypasses the memo.
		v, _ := embedding.Sum(m.vectors, known)
		return embedding.Cosine(v, s.Vector)
	}
	return float64(len(shared)) / float64(len(s.Words))
}

// CommonSubstrings returns the matching blocks between two character
// sequences, longest first. Blocks of equal length keep their position
// order.
func CommonSubstrings(a, b []string) []string {
	matches := difflib.NewMatcher(a, b).GetMatchingBlocks()
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Size > matches[j].Size })

	out := make([]string, 0, len(matches))
	for _, mb := range matches {
		out = append(out, strings.Join(a[mb.A:mb.A+mb.Size], ""))
	}
	return out
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
