package ingest

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/TobiSchelling/resextract/internal/reference"
)

// ReadColumn returns the non-blank values of the named header column on the
// first sheet of an XLSX workbook.
func ReadColumn(path, column string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: workbook has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w %q", path, ErrMissingColumn, column)
	}

	col := -1
	for i, h := range rows[0] {
		if strings.TrimSpace(h) == column {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("%s: %w %q", path, ErrMissingColumn, column)
	}

	var out []string
	for _, row := range rows[1:] {
		if col >= len(row) || strings.TrimSpace(row[col]) == "" {
			continue
		}
		out = append(out, row[col])
	}
	return out, nil
}

// Paths locates the reference inputs.
type Paths struct {
	Vocabulary         string
	Taxonomy           string
	Countries          string
	Agencies           string
	KnownOrganizations string
	CorporateNames     string
	Encoding           string
}

// LoadSources reads every reference input into registry sources. The
// vocabulary, taxonomy and country list are required; the organization
// lists are skipped when their path is empty.
func LoadSources(p Paths) (reference.Sources, error) {
	var src reference.Sources
	var err error

	if src.Vocabulary, err = readTermsFile(p.Vocabulary, p.Encoding); err != nil {
		return src, err
	}
	if src.Taxonomy, err = readTaxonomyFile(p.Taxonomy, p.Encoding); err != nil {
		return src, err
	}
	if src.Countries, err = ReadColumn(p.Countries, "Country"); err != nil {
		return src, fmt.Errorf("loading countries: %w", err)
	}

	optional := []struct {
		path, column string
		dst          *[]string
	}{
		{p.Agencies, "Title", &src.Agencies},
		{p.KnownOrganizations, "Entity", &src.KnownOrganizations},
		{p.CorporateNames, "Name", &src.CorporateNames},
	}
	for _, o := range optional {
		if o.path == "" {
			continue
		}
		if *o.dst, err = ReadColumn(o.path, o.column); err != nil {
			return src, fmt.Errorf("loading entities: %w", err)
		}
	}
	return src, nil
}
