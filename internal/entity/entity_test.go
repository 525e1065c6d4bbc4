package entity

import (
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TobiSchelling/resextract/internal/corpus"
	"github.com/TobiSchelling/resextract/internal/embedding"
	"github.com/TobiSchelling/resextract/internal/reference"
	"github.com/TobiSchelling/resextract/internal/textnorm"
)

const (
	undp = "United Nations Development Programme"
	who  = "World Health Organization"
)

func testRegistry(t *testing.T) *reference.Registry {
	t.Helper()
	lookup := embedding.NewStore(2)
	lookup.Add("development", embedding.Vector{0, 1})
	lookup.Add("programme", embedding.Vector{0, 1})
	lookup.Add("world", embedding.Vector{1, 0})
	lookup.Add("health", embedding.Vector{1, 0})
	lookup.Add("organization", embedding.Vector{1, 0})
	lookup.Add("council", embedding.Vector{1, 0})

	reg, err := reference.Build(reference.Sources{
		Taxonomy:           []reference.TaxonomyRow{{Content: "End poverty", Type: "Targets", Category: "No Poverty"}},
		Countries:          []string{"France", "Niger", "Nigeria"},
		KnownOrganizations: []string{undp, who},
	}, lookup, textnorm.New())
	require.NoError(t, err)
	return reg
}

func stub(spans ...Span) Recognizer {
	return RecognizerFunc(func(string) []Span { return spans })
}

func TestCandidatesCleanAndDeduplicate(t *testing.T) {
	r := New(testRegistry(t), stub(
		Span{Text: "the Global Fund 2", Label: LabelOrganization},
		Span{Text: "France", Label: LabelPlace},
		Span{Text: "A/RES/70/1", Label: LabelOrganization},
		Span{Text: "Global Fund", Label: LabelOrganization},
		Span{Text: "The Peacebuilding Commission", Label: LabelOrganization},
	), textnorm.New())

	assert.Equal(t, []string{"Global Fund", "Peacebuilding Commission"}, r.Candidates("ignored"))
}

func TestFilter(t *testing.T) {
	r := New(testRegistry(t), stub(), textnorm.New())

	got := r.Filter([]string{
		"Global Fund",
		"Decides Committee",
		"Health Organization",
		"Sustainable Development Goals",
		"Committee on Goals",
		"Friends of",
		"Recalling Council",
		"UNICEF",
		who,
		"Special Envoy of the World Health Organization",
		"World Health Organization of the Regional Bureau",
		"Board of the Trust",
		"Global Fund",
	})
	assert.Equal(t, []string{
		"Global Fund",
		"Committee on Goals",
		"Special Envoy",
		"Regional Bureau",
		"Board of the Trust",
	}, got)
}

func TestInfer(t *testing.T) {
	r := New(testRegistry(t), stub(), textnorm.New())

	got := r.Infer(
		[]string{"Development Programme Office", "Regional Health Bureau", "Peacebuilding Commission", "World Development Council"},
		[]string{undp, who},
	)
	require.Len(t, got, 4)

	assert.Equal(t, undp, got[0].Match)
	assert.InDelta(t, 1.0, got[0].Similarity, 1e-6)

	assert.Equal(t, who, got[1].Match)
	assert.InDelta(t, 1.0, got[1].Similarity, 1e-6)

	assert.Equal(t, corpus.InferredOrganization{
		Candidate:  "Peacebuilding Commission",
		Match:      "Peacebuilding Commission",
		Similarity: 1,
		SelfPaired: true,
	}, got[2])

	assert.Equal(t, who, got[3].Match, "tie on shared tokens goes to the closer vector")
	assert.InDelta(t, 2/math.Sqrt(5), got[3].Similarity, 1e-6)
}

func TestInferWithoutKnownEntities(t *testing.T) {
	r := New(testRegistry(t), stub(), textnorm.New())
	assert.Nil(t, r.Infer([]string{"Global Fund"}, nil))
}

func TestResolveAndProject(t *testing.T) {
	r := New(testRegistry(t), stub(
		Span{Text: "Global Fund", Label: LabelOrganization},
		Span{Text: "Special Envoy of the World Health Organization", Label: LabelOrganization},
	), textnorm.New())

	clean := "Welcomes the work of the United Nations Development Programme and the Global Fund with the Special Envoy of the World Health Organization."
	orgs := r.Resolve(clean)

	assert.Equal(t, []string{undp, who}, orgs.Known)
	assert.Equal(t, []string{"Global Fund", "Special Envoy"}, orgs.Original)
	require.Len(t, orgs.Inferred, 2)
	assert.True(t, orgs.Inferred[0].SelfPaired)

	para := orgs.Within("Notes that the global fund and the Global Fund support the world health organization")
	assert.Equal(t, []string{who}, para.Known)
	assert.Equal(t, []string{"Global Fund"}, para.Original)
	require.Len(t, para.Inferred, 1)
	assert.Equal(t, "Global Fund", para.Inferred[0].Candidate)
}

func TestCountries(t *testing.T) {
	got := Countries("Welcomes france and the Niger", []string{"France", "Niger", "Nigeria"})
	assert.Equal(t, []string{"France", "Niger"}, got)
}

func TestProseRecognizer(t *testing.T) {
	rec := NewProseRecognizer([]string{"France"})
	assert.Empty(t, rec.Recognize(""))

	spans := rec.Recognize("We thank the World Health Organization for its work.")
	var texts []string
	for _, s := range spans {
		texts = append(texts, s.Text)
	}
	assert.Contains(t, strings.Join(texts, "|"), "World Health Organization")
}

func spanTexts(spans []Span) []string {
	var texts []string
	for _, s := range spans {
		texts = append(texts, s.Text)
	}
	return texts
}

func TestProseRecognizerJoinsOfThe(t *testing.T) {
	rec := NewProseRecognizer(nil)
	spans := rec.Recognize("Welcomes the work of the Office of the United Nations High Commissioner for Refugees and the Peacebuilding Support Office.")

	texts := spanTexts(spans)
	assert.Contains(t, texts, "Office of the United Nations High Commissioner for Refugees")
	assert.NotContains(t, texts, "Office")
}

func TestResolveSplitsRecognizedOfThe(t *testing.T) {
	r := New(testRegistry(t), NewProseRecognizer([]string{"France", "Niger", "Nigeria"}), textnorm.New())

	orgs := r.Resolve("Welcomes the work of the Peacebuilding Support Office of the World Health Organization.")
	assert.Equal(t, []string{who}, orgs.Known)
	assert.Contains(t, orgs.Original, "Peacebuilding Support Office")
	for _, name := range orgs.Original {
		assert.NotContains(t, name, ofThe)
	}
}

func TestProseRecognizerConcurrent(t *testing.T) {
	rec := NewProseRecognizer(nil)
	var wg sync.WaitGroup
	results := make([][]string, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = spanTexts(rec.Recognize("We thank the World Health Organization for its work."))
		}()
	}
	wg.Wait()
	for _, got := range results {
		assert.Equal(t, results[0], got)
	}
}
