// Package output writes the annotated tables as XLSX workbooks and CSV
// files. List-valued cells are JSON arrays.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/TobiSchelling/resextract/internal/corpus"
)

// Formats.
const (
	XLSX = "xlsx"
	CSV  = "csv"
)

const sheet = "Sheet1"

// Table is a named header plus rows of cell values.
type Table struct {
	Name   string
	Header []string
	Rows   [][]any
}

// Paragraphs builds the per-paragraph table.
func Paragraphs(paras []*corpus.Paragraph) Table {
	t := Table{
		Name: "paragraphs",
		Header: []string{
			"SourceFile", "Index", "Content", "Type",
			"LeadVerb", "ParagraphType", "KeyTerms",
			"ReferencedResolutions", "ReferencedResolutionDates",
			"ThematicCategories",
			"ClosestTarget", "ClosestTargetScore", "ClosestIndicator", "ClosestIndicatorScore",
			"Country", "OrganizationNamesKnown", "OrganizationNamesOriginal", "OrganizationNamesInferred",
			"Failure",
		},
	}
	for _, p := range paras {
		failure := ""
		if p.Failure != nil {
			failure = p.Failure.Stage + ": " + p.Failure.Message
		}
		t.Rows = append(t.Rows, []any{
			p.SourceFile, p.Index, p.Content, p.Type,
			p.LeadVerb, p.ParagraphType, list(p.KeyTerms),
			list(p.ReferencedResolutions), list(p.ReferencedResolutionDates),
			list(p.ThematicCategories),
			p.ClosestTarget, p.ClosestTargetScore, p.ClosestIndicator, p.ClosestIndicatorScore,
			list(p.Countries), list(p.OrganizationsKnown), list(p.OrganizationsOriginal), list(p.OrganizationsInferred),
			failure,
		})
	}
	return t
}

// Resolutions builds the per-resolution table.
func Resolutions(res []*corpus.Resolution) Table {
	t := Table{
		Name: "resolutions",
		Header: []string{
			"SourceFile", "Session", "AgendaItem", "Number", "Title",
			"AdoptionDate", "AdoptionDay", "AdoptionMonth", "AdoptionYear",
			"OrganizationNamesKnown", "OrganizationNamesOriginal", "OrganizationNamesInferred",
		},
	}
	for _, r := range res {
		t.Rows = append(t.Rows, []any{
			r.SourceFile, r.Session, r.AgendaItem, r.Number, r.Title,
			r.AdoptionDate, r.AdoptionDay, r.AdoptionMonth, r.AdoptionYear,
			list(r.OrganizationsKnown), list(r.OrganizationsOriginal), list(r.OrganizationsInferred),
		})
	}
	return t
}

// Organizations builds the organization frequency table.
func Organizations(counts []corpus.OrganizationCount) Table {
	t := Table{Name: "organizations", Header: []string{"Organization", "Count"}}
	for _, c := range counts {
		t.Rows = append(t.Rows, []any{c.Name, c.Count})
	}
	return t
}

// list encodes a slice as a JSON array; nil encodes as [].
func list[T any](items []T) string {
	if len(items) == 0 {
		return "[]"
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// Write writes t into dir once per format and returns the written paths.
func Write(dir string, t Table, formats []string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}
	var paths []string
	for _, format := range formats {
		path := filepath.Join(dir, t.Name+"."+format)
		var err error
		switch format {
		case XLSX:
			err = writeXLSX(path, t)
		case CSV:
			err = writeCSV(path, t)
		default:
			err = fmt.Errorf("unknown format %q", format)
		}
		if err != nil {
			return paths, fmt.Errorf("writing %s: %w", t.Name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeXLSX(path string, t Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}
	header := make([]any, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}
	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func writeCSV(path string, t Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Header); err != nil {
		return err
	}
	record := make([]string, len(t.Header))
	for _, row := range t.Rows {
		for i, v := range row {
			record[i] = cellString(v)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func cellString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
