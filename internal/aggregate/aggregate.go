// Package aggregate derives resolution header fields and corpus-wide
// organization counts.
package aggregate

import (
	"regexp"
	"sort"

	"github.com/TobiSchelling/resextract/internal/corpus"
)

var (
	numberTitle = regexp.MustCompile(`^(\d+/\d+)\s?\.\s?(.*)`)
	adoptedOn   = regexp.MustCompile(`^(.*)on (\d{1,2}\s\w+\s\d{4})$`)
	dateParts   = regexp.MustCompile(`^(\d{1,2})\s(\w+)\s(\d{4})`)
)

// Header fills the header fields of res from the rows of its document,
// which must be sorted by Index. Each row contributes to at most one field.
func Header(res *corpus.Resolution, rows []corpus.Row) {
	for _, row := range rows {
		switch {
		case res.Session == "" && row.Type == corpus.TypeSession:
			res.Session = row.Content
		case res.AgendaItem == "" && row.Type == corpus.TypeAgendaItem:
			res.AgendaItem = row.Content
		case res.Number == "" && res.Title == "" && numberTitle.MatchString(row.Content):
			m := numberTitle.FindStringSubmatch(row.Content)
			res.Number, res.Title = m[1], m[2]
		case res.AdoptionDate == "" && adoptedOn.MatchString(row.Content):
			res.AdoptionDate = adoptedOn.FindStringSubmatch(row.Content)[2]
		}
	}
	if m := dateParts.FindStringSubmatch(res.AdoptionDate); m != nil {
		res.AdoptionDay, res.AdoptionMonth, res.AdoptionYear = m[1], m[2], m[3]
	}
}

// SortRows orders rows by Index, keeping input order for equal indexes.
func SortRows(rows []corpus.Row) {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Index < rows[j].Index })
}

// CountOrganizations counts the original organization candidates across
// resolutions. The result is sorted by count descending, then by name.
func CountOrganizations(resolutions []*corpus.Resolution) []corpus.OrganizationCount {
	counts := make(map[string]int)
	for _, r := range resolutions {
		for _, name := range r.OrganizationsOriginal {
			counts[name]++
		}
	}
	out := make([]corpus.OrganizationCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, corpus.OrganizationCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}
