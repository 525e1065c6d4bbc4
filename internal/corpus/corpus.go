// Package corpus holds the domain records that flow through the extraction
// pipeline: input rows, annotated paragraphs, resolution summaries and the
// failures recorded against them.
package corpus

import "fmt"

// Row types found in the paragraph table.
const (
	TypeParagraph  = "Paragraph"
	TypeSession    = "Session"
	TypeAgendaItem = "AgendaItem"
)

// Paragraph types assigned by the classifier.
const (
	Introductory = "introductory"
	Operative    = "operative"
)

// DateNA marks a citation whose adoption date could not be parsed.
const DateNA = "NA"

// Row is one record of the paragraph input table.
type Row struct {
	SourceFile string
	Index      int
	Content    string
	Type       string
	Line       int
}

// Citation pairs a referenced resolution identifier with its date
// (d/mm/yyyy) or DateNA.
type Citation struct {
	Resolution string `json:"resolution"`
	Date       string `json:"date"`
}

// InferredOrganization maps an unrecognized organization mention to the
// known entity it most likely refers to.
type InferredOrganization struct {
	Candidate  string  `json:"candidate"`
	Match      string  `json:"match"`
	Similarity float64 `json:"similarity"`
	SelfPaired bool    `json:"self_paired,omitempty"`
}

// OrganizationCount is the number of resolutions mentioning an organization.
type OrganizationCount struct {
	Name  string
	Count int
}

// Failure records a stage that failed for a row or resolution.
type Failure struct {
	SourceFile string
	Index      int // -1 for resolution-level failures
	Line       int
	Stage      string
	Message    string
}

func (f Failure) Error() string {
	if f.Index < 0 {
		return fmt.Sprintf("%s: %s: %s", f.SourceFile, f.Stage, f.Message)
	}
	return fmt.Sprintf("%s#%d: %s: %s", f.SourceFile, f.Index, f.Stage, f.Message)
}

// Paragraph is an input row together with everything derived from it.
type Paragraph struct {
	SourceFile string
	Index      int
	Content    string
	Type       string

	LeadVerb      string
	ParagraphType string
	KeyTerms      []string

	ReferencedResolutions     []string
	ReferencedResolutionDates []Citation

	ThematicCategories []string

	ClosestTarget         string
	ClosestTargetScore    float64
	ClosestIndicator      string
	ClosestIndicatorScore float64

	Countries             []string
	OrganizationsKnown    []string
	OrganizationsOriginal []string
	OrganizationsInferred []InferredOrganization

	Failure *Failure
}

// NewParagraph creates an unannotated paragraph for an input row.
func NewParagraph(r Row) *Paragraph {
	return &Paragraph{
		SourceFile: r.SourceFile,
		Index:      r.Index,
		Content:    r.Content,
		Type:       r.Type,
	}
}

// AddCategory appends category unless it is already present.
func (p *Paragraph) AddCategory(category string) {
	if category == "" {
		return
	}
	for _, c := range p.ThematicCategories {
		if c == category {
			return
		}
	}
	p.ThematicCategories = append(p.ThematicCategories, category)
}

// SetCitationDate records the date for a resolution identifier. A later date
// for the same identifier replaces the earlier one in place.
func (p *Paragraph) SetCitationDate(resolution, date string) {
	for i := range p.ReferencedResolutionDates {
		if p.ReferencedResolutionDates[i].Resolution == resolution {
			p.ReferencedResolutionDates[i].Date = date
			return
		}
	}
	p.ReferencedResolutionDates = append(p.ReferencedResolutionDates, Citation{Resolution: resolution, Date: date})
}

// Fail marks the paragraph as failed in the given stage. The first failure
// is kept.
func (p *Paragraph) Fail(stage string, err error) {
	if p.Failure != nil {
		return
	}
	p.Failure = &Failure{SourceFile: p.SourceFile, Index: p.Index, Stage: stage, Message: err.Error()}
}

// Resolution summarizes one source document.
type Resolution struct {
	SourceFile string

	Session       string
	AgendaItem    string
	Number        string
	Title         string
	AdoptionDate  string
	AdoptionDay   string
	AdoptionMonth string
	AdoptionYear  string

	OrganizationsKnown    []string
	OrganizationsOriginal []string
	OrganizationsInferred []InferredOrganization

	Failure *Failure
}

// Fail marks the resolution as failed in the given stage.
func (r *Resolution) Fail(stage string, err error) {
	if r.Failure != nil {
		return
	}
	r.Failure = &Failure{SourceFile: r.SourceFile, Index: -1, Stage: stage, Message: err.Error()}
}

// Documents groups rows by SourceFile, preserving first-appearance order of
// documents. Rows inside a document are returned in input order.
func Documents[T any](items []T, source func(T) string) [][]T {
	var order []string
	groups := make(map[string][]T)
	for _, it := range items {
		key := source(it)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], it)
	}
	out := make([][]T, 0, len(order))
	for _, key := range order {
		out = append(out, groups[key])
	}
	return out
}
