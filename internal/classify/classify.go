// Package classify assigns paragraph types, lead verbs and controlled
// vocabulary terms.
package classify

import (
	"sort"
	"strings"

	"github.com/TobiSchelling/resextract/internal/corpus"
	"github.com/TobiSchelling/resextract/internal/reference"
	"github.com/TobiSchelling/resextract/internal/textnorm"
)

// Options tune the classifier.
type Options struct {
	LeadVerbWindow int
	MinTokens      int
	LookBack       int
}

// DefaultOptions returns the standard classifier settings.
func DefaultOptions() Options {
	return Options{LeadVerbWindow: 10, MinTokens: 10, LookBack: 4}
}

// Result is the stateless classification of one paragraph.
type Result struct {
	Eligible bool
	LeadVerb string
	Type     string
	// Continuation is set for eligible paragraphs that start in lowercase
	// and inherit their type from the paragraphs before them.
	Continuation bool
	KeyTerms     []string
}

// Classifier classifies single paragraphs against the registry.
type Classifier struct {
	reg  *reference.Registry
	opts Options
}

// New creates a Classifier. Zero option fields take their defaults.
func New(reg *reference.Registry, opts Options) *Classifier {
	def := DefaultOptions()
	if opts.LeadVerbWindow <= 0 {
		opts.LeadVerbWindow = def.LeadVerbWindow
	}
	if opts.MinTokens <= 0 {
		opts.MinTokens = def.MinTokens
	}
	if opts.LookBack <= 0 {
		opts.LookBack = def.LookBack
	}
	return &Classifier{reg: reg, opts: opts}
}

// Options returns the effective options.
func (c *Classifier) Options() Options { return c.opts }

// Eligible reports whether a row of the given type and forms is classified.
func (c *Classifier) Eligible(rowType string, f textnorm.Forms) bool {
	return rowType == corpus.TypeParagraph && len(f.Tokens) >= c.opts.MinTokens
}

// Classify computes everything that does not depend on neighbouring rows.
func (c *Classifier) Classify(rowType string, f textnorm.Forms) Result {
	if !c.Eligible(rowType, f) {
		return Result{}
	}
	res := Result{Eligible: true, KeyTerms: KeyTerms(c.reg.Vocabulary, f.Padded)}

	if textnorm.StartsLowercase(f.Stripped) {
		res.Continuation = true
		return res
	}

	window := f.Tokens
	if len(window) > c.opts.LeadVerbWindow {
		window = window[:c.opts.LeadVerbWindow]
	}
	for _, tok := range window {
		if c.reg.IsLeadVerb(tok) {
			res.LeadVerb = tok
			break
		}
	}
	switch {
	case res.LeadVerb == "":
	case c.reg.IsIntroductoryVerb(res.LeadVerb):
		res.Type = corpus.Introductory
	case c.reg.IsOperativeVerb(res.LeadVerb):
		res.Type = corpus.Operative
	}
	return res
}

// Inherit fills in the type of continuation paragraphs from the most recent
// non-empty type among the lookBack rows before them. paras must be one
// document in index order; continuation is index-aligned with paras.
func Inherit(paras []*corpus.Paragraph, continuation []bool, lookBack int) {
	for i, p := range paras {
		if !continuation[i] || p.Failure != nil {
			continue
		}
		for j := i - 1; j >= 0 && j >= i-lookBack; j-- {
			if t := paras[j].ParagraphType; t != "" {
				p.ParagraphType = t
				break
			}
		}
	}
}

// KeyTerms returns the vocabulary terms found as whole-token sequences in
// padded. Longer terms claim text first; each accepted term is removed
// from the working text so nested shorter terms are not reported again.
func KeyTerms(vocabulary []string, padded string) []string {
	var matches []string
	for _, term := range vocabulary {
		if strings.Contains(padded, " "+term+" ") {
			matches = append(matches, term)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if len(matches[i]) != len(matches[j]) {
			return len(matches[i]) > len(matches[j])
		}
		return matches[i] < matches[j]
	})

	working := padded
	var terms []string
	for _, term := range matches {
		if strings.Contains(working, term) {
			terms = append(terms, term)
			working = strings.ReplaceAll(working, term, "")
		}
	}
	return terms
}
