// Package report composes a markdown summary of a stored run and renders
// it as HTML.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/TobiSchelling/resextract/internal/database"
)

const (
	topOrganizations = 15
	maxFailures      = 25
)

var md = goldmark.New(goldmark.WithExtensions(extension.Table))

var page = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// Report is the summary of one run.
type Report struct {
	Run      *database.Run
	Markdown string
}

// Composer assembles reports from the run store.
type Composer struct {
	db *database.DB
}

// NewComposer creates a new report composer.
func NewComposer(db *database.DB) *Composer {
	return &Composer{db: db}
}

// Compose builds the report for a run. A zero runID selects the last
// completed run; nil is returned when there is none.
func (c *Composer) Compose(runID int64) (*Report, error) {
	var run *database.Run
	var err error
	if runID == 0 {
		run, err = c.db.GetLastRun()
	} else {
		run, err = c.db.GetRun(runID)
	}
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, nil
	}

	orgs, err := c.db.TopOrganizations(run.ID, topOrganizations)
	if err != nil {
		return nil, err
	}
	cats, err := c.db.CategoryCounts(run.ID)
	if err != nil {
		return nil, err
	}
	failures, err := c.db.GetFailures(run.ID)
	if err != nil {
		return nil, err
	}

	var sections []string
	sections = append(sections, fmt.Sprintf("# Extraction run #%d\n\n%s", run.ID, summaryTable(run)))

	if len(cats) > 0 {
		lines := []string{"| Category | Paragraphs |", "|---|---:|"}
		for _, cc := range cats {
			lines = append(lines, fmt.Sprintf("| %s | %d |", escapeCell(cc.Category), cc.Count))
		}
		sections = append(sections, "## Thematic categories\n\n"+strings.Join(lines, "\n"))
	}

	if len(orgs) > 0 {
		lines := []string{"| Organization | Resolutions |", "|---|---:|"}
		for _, o := range orgs {
			lines = append(lines, fmt.Sprintf("| %s | %d |", escapeCell(o.Name), o.Count))
		}
		sections = append(sections, "## Most cited organizations\n\n"+strings.Join(lines, "\n"))
	}

	if len(failures) > 0 {
		var lines []string
		for i, f := range failures {
			if i == maxFailures {
				lines = append(lines, fmt.Sprintf("- … and %d more", len(failures)-maxFailures))
				break
			}
			where := f.SourceFile
			switch {
			case f.Index >= 0:
				where = fmt.Sprintf("%s #%d", f.SourceFile, f.Index)
			case f.Line > 0:
				where = fmt.Sprintf("%s line %d", f.SourceFile, f.Line)
			}
			lines = append(lines, fmt.Sprintf("- `%s` %s: %s", f.Stage, where, f.Message))
		}
		sections = append(sections, "## Failures\n\n"+strings.Join(lines, "\n"))
	}

	return &Report{Run: run, Markdown: strings.Join(sections, "\n\n")}, nil
}

func summaryTable(run *database.Run) string {
	started, finished := "", ""
	if run.StartedAt != nil {
		started = *run.StartedAt
	}
	if run.FinishedAt != nil {
		finished = *run.FinishedAt
	}
	rows := [][2]string{
		{"Input", run.InputPath},
		{"Status", run.Status},
		{"Started", started},
		{"Finished", finished},
		{"Paragraphs", fmt.Sprint(run.ParagraphCount)},
		{"Resolutions", fmt.Sprint(run.ResolutionCount)},
		{"Failures", fmt.Sprint(run.FailureCount)},
	}
	lines := []string{"| | |", "|---|---|"}
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("| %s | %s |", r[0], escapeCell(r[1])))
	}
	return strings.Join(lines, "\n")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// RenderHTML converts the report markdown into a standalone HTML page.
func (r *Report) RenderHTML() (string, error) {
	var body bytes.Buffer
	if err := md.Convert([]byte(r.Markdown), &body); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	var out bytes.Buffer
	err := page.Execute(&out, struct {
		Title string
		Body  template.HTML
	}{
		Title: fmt.Sprintf("Extraction run #%d", r.Run.ID),
		Body:  template.HTML(body.String()),
	})
	if err != nil {
		return "", fmt.Errorf("rendering page: %w", err)
	}
	return out.String(), nil
}
