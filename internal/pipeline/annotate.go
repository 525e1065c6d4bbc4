package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/TobiSchelling/resextract/internal/aggregate"
	"github.com/TobiSchelling/resextract/internal/category"
	"github.com/TobiSchelling/resextract/internal/citation"
	"github.com/TobiSchelling/resextract/internal/classify"
	"github.com/TobiSchelling/resextract/internal/corpus"
	"github.com/TobiSchelling/resextract/internal/entity"
	"github.com/TobiSchelling/resextract/internal/reference"
	"github.com/TobiSchelling/resextract/internal/taxonomy"
	"github.com/TobiSchelling/resextract/internal/textnorm"
)

// Stage names recorded on failures.
const (
	StageClassify  = "classify"
	StageCitations = "citations"
	StageTaxonomy  = "taxonomy"
	StageCategory  = "category"
	StageEntities  = "entities"
	StageProject   = "project"
	StageHeader    = "header"
)

// Annotation is the output of one annotation pass.
type Annotation struct {
	Paragraphs    []*corpus.Paragraph
	Resolutions   []*corpus.Resolution
	Organizations []corpus.OrganizationCount
}

// Failures returns every paragraph and resolution failure, resolutions
// first, each in output order.
func (a *Annotation) Failures() []corpus.Failure {
	var out []corpus.Failure
	for _, r := range a.Resolutions {
		if r.Failure != nil {
			out = append(out, *r.Failure)
		}
	}
	for _, p := range a.Paragraphs {
		if p.Failure != nil {
			out = append(out, *p.Failure)
		}
	}
	return out
}

// AnnotatorOptions configure an Annotator.
type AnnotatorOptions struct {
	Classifier    classify.Options
	Thresholds    taxonomy.Thresholds
	Workers       int
	ProgressEvery int
}

// Annotator runs the paragraph and resolution stages over a corpus.
type Annotator struct {
	reg        *reference.Registry
	norm       *textnorm.Normalizer
	classifier *classify.Classifier
	matcher    *taxonomy.Matcher
	tagger     *category.Tagger
	resolver   *entity.Resolver
	opts       AnnotatorOptions
	log        *zap.SugaredLogger
}

// NewAnnotator wires the annotators around a registry and a recognizer.
func NewAnnotator(reg *reference.Registry, rec entity.Recognizer, opts AnnotatorOptions, log *zap.SugaredLogger) *Annotator {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	norm := textnorm.New()
	classifier := classify.New(reg, opts.Classifier)
	opts.Classifier = classifier.Options()
	return &Annotator{
		reg:        reg,
		norm:       norm,
		classifier: classifier,
		matcher:    taxonomy.New(reg, opts.Thresholds),
		tagger:     category.NewTagger(nil),
		resolver:   entity.New(reg, rec, norm),
		opts:       opts,
		log:        log,
	}
}

// rowState is the per-row scratch kept between stages.
type rowState struct {
	continuation bool
	clean        string
}

// Annotate runs every stage over rows. Paragraphs come back in input order
// and resolutions in order of first appearance. A failing row or resolution
// is recorded and the rest of the batch continues; only cancellation or a
// pool error aborts.
func (a *Annotator) Annotate(ctx context.Context, rows []corpus.Row) (*Annotation, error) {
	pool, err := ants.NewPool(a.opts.Workers, ants.WithPanicHandler(func(v any) {
		a.log.Errorw("worker panic", "panic", v)
	}))
	if err != nil {
		return nil, fmt.Errorf("creating worker pool: %w", err)
	}
	defer pool.Release()

	paras := make([]*corpus.Paragraph, len(rows))
	state := make([]rowState, len(rows))

	progress := a.progress("paragraphs", len(rows))
	err = forEach(ctx, pool, len(rows), func(i int) {
		paras[i] = corpus.NewParagraph(rows[i])
		a.annotateRow(paras[i], &state[i])
		progress()
	})
	if err != nil {
		return nil, err
	}

	docs := documents(rows)
	for _, doc := range docs {
		docParas := make([]*corpus.Paragraph, len(doc))
		cont := make([]bool, len(doc))
		for j, i := range doc {
			docParas[j], cont[j] = paras[i], state[i].continuation
		}
		classify.Inherit(docParas, cont, a.opts.Classifier.LookBack)
	}

	resolutions := make([]*corpus.Resolution, len(docs))
	orgs := make([]entity.Organizations, len(docs))
	progress = a.progress("resolutions", len(docs))
	err = forEach(ctx, pool, len(docs), func(d int) {
		res := &corpus.Resolution{SourceFile: rows[docs[d][0]].SourceFile}
		resolutions[d] = res
		a.resolveDocument(res, &orgs[d], docs[d], paras, state, rows)
		progress()
	})
	if err != nil {
		return nil, err
	}

	owner := make([]int, len(rows))
	for d, doc := range docs {
		for _, i := range doc {
			owner[i] = d
		}
	}
	err = forEach(ctx, pool, len(rows), func(i int) {
		guard(paras[i].Fail, StageProject, func() {
			a.project(paras[i], orgs[owner[i]], state[i].clean)
		})
	})
	if err != nil {
		return nil, err
	}

	for i, p := range paras {
		if p.Failure != nil {
			p.Failure.Line = rows[i].Line
		}
	}

	return &Annotation{
		Paragraphs:    paras,
		Resolutions:   resolutions,
		Organizations: aggregate.CountOrganizations(resolutions),
	}, nil
}

// annotateRow runs the stateless per-row stages.
func (a *Annotator) annotateRow(p *corpus.Paragraph, st *rowState) {
	var forms textnorm.Forms
	ok := guard(p.Fail, StageClassify, func() {
		forms = a.norm.Normalize(p.Content)
		st.clean = textnorm.Clean(p.Content)
		res := a.classifier.Classify(p.Type, forms)
		p.LeadVerb, p.ParagraphType, p.KeyTerms = res.LeadVerb, res.Type, res.KeyTerms
		st.continuation = res.Continuation
	})
	if !ok {
		return
	}

	guard(p.Fail, StageCitations, func() {
		res := citation.Extract(p.Content)
		p.ReferencedResolutions = res.Phrases
		for _, c := range res.Citations {
			p.SetCitationDate(c.Resolution, c.Date)
		}
	})

	if a.classifier.Eligible(p.Type, forms) {
		guard(p.Fail, StageCategory, func() {
			if cat, ok := a.tagger.Tag(category.NewText(forms.Tokens, forms.Stripped)); ok {
				p.AddCategory(cat)
			}
		})
	}

	if p.Type == corpus.TypeParagraph {
		guard(p.Fail, StageTaxonomy, func() {
			m := a.matcher.Match(a.norm.Alpha(p.Content))
			p.ClosestTargetScore, p.ClosestIndicatorScore = m.TargetScore, m.IndicatorScore
			if m.Target != nil {
				p.ClosestTarget = m.Target.Text
			}
			if m.Indicator != nil {
				p.ClosestIndicator = m.Indicator.Text
			}
			p.AddCategory(m.Category())
		})
	}
}

// resolveDocument builds the header and Phase A organizations of one
// document. doc holds row positions in index order.
func (a *Annotator) resolveDocument(res *corpus.Resolution, orgs *entity.Organizations, doc []int, paras []*corpus.Paragraph, state []rowState, rows []corpus.Row) {
	guard(res.Fail, StageHeader, func() {
		docRows := make([]corpus.Row, len(doc))
		for j, i := range doc {
			docRows[j] = rows[i]
		}
		aggregate.Header(res, docRows)
	})

	guard(res.Fail, StageEntities, func() {
		var parts []string
		for _, i := range doc {
			if paras[i].Failure == nil && paras[i].Type == corpus.TypeParagraph {
				parts = append(parts, state[i].clean)
			}
		}
		*orgs = a.resolver.Resolve(strings.Join(parts, " "))
		res.OrganizationsKnown = orgs.Known
		res.OrganizationsOriginal = orgs.Original
		res.OrganizationsInferred = orgs.Inferred
	})
}

// project attaches the resolution organizations and the countries a
// paragraph mentions.
func (a *Annotator) project(p *corpus.Paragraph, orgs entity.Organizations, clean string) {
	within := orgs.Within(clean)
	p.OrganizationsKnown = within.Known
	p.OrganizationsOriginal = within.Original
	p.OrganizationsInferred = within.Inferred
	p.Countries = entity.Countries(clean, a.reg.Countries)
}

// progress returns a callback that logs every ProgressEvery completions.
func (a *Annotator) progress(what string, total int) func() {
	every := int64(a.opts.ProgressEvery)
	var done atomic.Int64
	return func() {
		n := done.Add(1)
		if every > 0 && n%every == 0 {
			a.log.Infow("annotation progress", "stage", what, "done", n, "total", total)
		}
	}
}

// guard runs fn and records a panic as a failure of the given stage.
// It reports whether fn completed.
func guard(fail func(string, error), stage string, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			fail(stage, fmt.Errorf("panic: %v", r))
			ok = false
		}
	}()
	fn()
	return true
}

// forEach runs fn(i) for i in [0, n) on the pool and waits for all of them.
func forEach(ctx context.Context, pool *ants.Pool, n int, fn func(i int)) error {
	var wg sync.WaitGroup
	var submitErr error
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			submitErr = err
			break
		}
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			fn(i)
		}); err != nil {
			wg.Done()
			submitErr = fmt.Errorf("submitting job: %w", err)
			break
		}
	}
	wg.Wait()
	if submitErr != nil {
		return submitErr
	}
	return ctx.Err()
}

// documents groups row positions by source file in order of first
// appearance, each group sorted by Index.
func documents(rows []corpus.Row) [][]int {
	positions := make([]int, len(rows))
	for i := range positions {
		positions[i] = i
	}
	docs := corpus.Documents(positions, func(i int) string { return rows[i].SourceFile })
	for _, doc := range docs {
		sort.SliceStable(doc, func(a, b int) bool { return rows[doc[a]].Index < rows[doc[b]].Index })
	}
	return docs
}
