package aggregate

import (
	"testing"

	"github.com/TobiSchelling/resextract/internal/corpus"
)

func TestHeader(t *testing.T) {
	rows := []corpus.Row{
		{Index: 3, Type: corpus.TypeParagraph, Content: "Adopted on 25 September 2015"},
		{Index: 0, Type: corpus.TypeSession, Content: "Seventieth session"},
		{Index: 1, Type: corpus.TypeAgendaItem, Content: "Agenda items 15 and 116"},
		{Index: 2, Type: corpus.TypeParagraph, Content: "70/1. Transforming our world: the 2030 Agenda for Sustainable Development"},
		{Index: 4, Type: corpus.TypeSession, Content: "Second session row"},
		{Index: 5, Type: corpus.TypeParagraph, Content: "71/2. Another title"},
	}
	SortRows(rows)

	res := &corpus.Resolution{SourceFile: "A_RES_70_1"}
	Header(res, rows)

	if res.Session != "Seventieth session" {
		t.Errorf("expected session 'Seventieth session', got %q", res.Session)
	}
	if res.AgendaItem != "Agenda items 15 and 116" {
		t.Errorf("expected agenda item, got %q", res.AgendaItem)
	}
	if res.Number != "70/1" {
		t.Errorf("expected number '70/1', got %q", res.Number)
	}
	if res.Title != "Transforming our world: the 2030 Agenda for Sustainable Development" {
		t.Errorf("unexpected title %q", res.Title)
	}
	if res.AdoptionDate != "25 September 2015" {
		t.Errorf("expected adoption date '25 September 2015', got %q", res.AdoptionDate)
	}
	if res.AdoptionDay != "25" || res.AdoptionMonth != "September" || res.AdoptionYear != "2015" {
		t.Errorf("unexpected date parts %q %q %q", res.AdoptionDay, res.AdoptionMonth, res.AdoptionYear)
	}
}

func TestHeaderNumberWithoutSpace(t *testing.T) {
	res := &corpus.Resolution{}
	Header(res, []corpus.Row{{Type: corpus.TypeParagraph, Content: "68/262 .Territorial integrity of Ukraine"}})
	if res.Number != "68/262" || res.Title != "Territorial integrity of Ukraine" {
		t.Errorf("unexpected number/title %q / %q", res.Number, res.Title)
	}
}

func TestHeaderMissingFields(t *testing.T) {
	res := &corpus.Resolution{}
	Header(res, []corpus.Row{{Type: corpus.TypeParagraph, Content: "Decides to remain seized of the matter."}})
	if res.Session != "" || res.Number != "" || res.AdoptionDate != "" || res.AdoptionYear != "" {
		t.Errorf("expected empty header, got %+v", res)
	}
}

func TestCountOrganizations(t *testing.T) {
	counts := CountOrganizations([]*corpus.Resolution{
		{OrganizationsOriginal: []string{"Global Fund", "Peacebuilding Commission"}},
		{OrganizationsOriginal: []string{"Peacebuilding Commission", "African Union"}},
		{OrganizationsOriginal: []string{"Global Fund"}},
	})
	if len(counts) != 3 {
		t.Fatalf("expected 3 counts, got %d", len(counts))
	}
	want := []corpus.OrganizationCount{
		{Name: "Global Fund", Count: 2},
		{Name: "Peacebuilding Commission", Count: 2},
		{Name: "African Union", Count: 1},
	}
	for i, w := range want {
		if counts[i] != w {
			t.Errorf("position %d: expected %+v, got %+v", i, w, counts[i])
		}
	}
}
