// Package ingest loads the paragraph table and the reference inputs from
// CSV and XLSX files.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/TobiSchelling/resextract/internal/corpus"
	"github.com/TobiSchelling/resextract/internal/reference"
)

// Encodings accepted for CSV inputs.
const (
	UTF8        = "utf-8"
	Windows1252 = "windows-1252"
)

// ErrMissingColumn is returned when a required header column is absent.
var ErrMissingColumn = errors.New("missing column")

// RowError is an input row that could not be read.
type RowError struct {
	File    string
	Line    int
	Message string
}

func (e RowError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
}

// table is a CSV file addressed by header names.
type table struct {
	name    string
	columns map[string]int
	r       *csv.Reader
}

func openTable(name string, r io.Reader, encoding string, required ...string) (*table, error) {
	switch strings.ToLower(encoding) {
	case "", UTF8:
	case Windows1252, "cp1252":
		r = charmap.Windows1252.NewDecoder().Reader(r)
	default:
		return nil, fmt.Errorf("unsupported encoding %q", encoding)
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", name, err)
	}
	columns := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := columns[h]; !dup {
			columns[h] = i
		}
	}
	for _, c := range required {
		if _, ok := columns[c]; !ok {
			return nil, fmt.Errorf("%s: %w %q", name, ErrMissingColumn, c)
		}
	}
	return &table{name: name, columns: columns, r: cr}, nil
}

// next returns the next record and the line it starts on, or io.EOF.
func (t *table) next() ([]string, int, error) {
	rec, err := t.r.Read()
	if err != nil {
		return nil, 0, err
	}
	line, _ := t.r.FieldPos(0)
	return rec, line, nil
}

// field returns the named column of rec and whether the record has it.
func (t *table) field(rec []string, column string) (string, bool) {
	i, ok := t.columns[column]
	if !ok || i >= len(rec) {
		return "", false
	}
	return rec[i], true
}

// ReadParagraphs reads the paragraph table. Rows with an empty SourceFile,
// a non-integer Index or missing columns are returned as RowErrors and
// skipped.
func ReadParagraphs(name string, r io.Reader, encoding string) ([]corpus.Row, []RowError, error) {
	t, err := openTable(name, r, encoding, "SourceFile", "Index", "Content", "Type")
	if err != nil {
		return nil, nil, err
	}

	var rows []corpus.Row
	var rowErrs []RowError
	for {
		rec, line, err := t.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				rowErrs = append(rowErrs, RowError{File: name, Line: perr.Line, Message: perr.Err.Error()})
				continue
			}
			return nil, nil, fmt.Errorf("reading %s: %w", name, err)
		}

		source, okS := t.field(rec, "SourceFile")
		index, okI := t.field(rec, "Index")
		content, okC := t.field(rec, "Content")
		typ, okT := t.field(rec, "Type")
		switch {
		case !okS || !okI || !okC || !okT:
			rowErrs = append(rowErrs, RowError{File: name, Line: line, Message: "missing columns"})
			continue
		case strings.TrimSpace(source) == "":
			rowErrs = append(rowErrs, RowError{File: name, Line: line, Message: "empty SourceFile"})
			continue
		}
		idx, err := strconv.Atoi(strings.TrimSpace(index))
		if err != nil {
			rowErrs = append(rowErrs, RowError{File: name, Line: line, Message: fmt.Sprintf("invalid Index %q", index)})
			continue
		}

		rows = append(rows, corpus.Row{
			SourceFile: strings.TrimSpace(source),
			Index:      idx,
			Content:    content,
			Type:       strings.TrimSpace(typ),
			Line:       line,
		})
	}
	return rows, rowErrs, nil
}

// ReadTerms reads the Term column of the vocabulary table, skipping blanks.
func ReadTerms(name string, r io.Reader, encoding string) ([]string, error) {
	t, err := openTable(name, r, encoding, "Term")
	if err != nil {
		return nil, err
	}
	var terms []string
	for {
		rec, _, err := t.next()
		if errors.Is(err, io.EOF) {
			return terms, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		if term, ok := t.field(rec, "Term"); ok && strings.TrimSpace(term) != "" {
			terms = append(terms, strings.TrimSpace(term))
		}
	}
}

// ReadTaxonomy reads the Content, Type and SDG columns of the taxonomy
// table.
func ReadTaxonomy(name string, r io.Reader, encoding string) ([]reference.TaxonomyRow, error) {
	t, err := openTable(name, r, encoding, "Content", "Type", "SDG")
	if err != nil {
		return nil, err
	}
	var rows []reference.TaxonomyRow
	for {
		rec, line, err := t.next()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		content, okC := t.field(rec, "Content")
		typ, okT := t.field(rec, "Type")
		sdg, okS := t.field(rec, "SDG")
		if !okC || !okT || !okS {
			return nil, fmt.Errorf("%s:%d: missing columns", name, line)
		}
		if strings.TrimSpace(content) == "" {
			continue
		}
		rows = append(rows, reference.TaxonomyRow{
			Content:  content,
			Type:     strings.TrimSpace(typ),
			Category: strings.TrimSpace(sdg),
		})
	}
}

// ReadParagraphsFile opens path and reads it with ReadParagraphs.
func ReadParagraphsFile(path, encoding string) ([]corpus.Row, []RowError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening paragraphs: %w", err)
	}
	defer f.Close()
	return ReadParagraphs(path, f, encoding)
}

func readTermsFile(path, encoding string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening vocabulary: %w", err)
	}
	defer f.Close()
	return ReadTerms(path, f, encoding)
}

func readTaxonomyFile(path, encoding string) ([]reference.TaxonomyRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening taxonomy: %w", err)
	}
	defer f.Close()
	return ReadTaxonomy(path, f, encoding)
}
