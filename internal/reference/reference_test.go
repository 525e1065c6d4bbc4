package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TobiSchelling/resextract/internal/embedding"
	"github.com/TobiSchelling/resextract/internal/textnorm"
)

func testLookup() *embedding.Store {
	s := embedding.NewStore(2)
	s.Add("poverty", embedding.Vector{1, 0})
	s.Add("end", embedding.Vector{0, 1})
	s.Add("health", embedding.Vector{1, 1})
	s.Add("world", embedding.Vector{0.5, 0.5})
	s.Add("organization", embedding.Vector{0, 1})
	return s
}

func testSources() Sources {
	return Sources{
		Vocabulary: []string{"Poverty", "poverty", " Sustainable Development ", ""},
		Taxonomy: []TaxonomyRow{
			{Content: "End poverty in all its forms everywhere", Type: "Targets", Category: "No Poverty"},
			{Content: "Proportion of population below the poverty line", Type: "Indicators", Category: "No Poverty"},
			{Content: "Ensure healthy lives and promote health", Type: "Targets", Category: "Good Health and Well-Being"},
			{Content: "End poverty in all its forms everywhere", Type: "Targets", Category: "No Poverty"},
		},
		Countries:          []string{" Trinidad & Tobago", "France"},
		Agencies:           []string{"World Health Organization."},
		KnownOrganizations: []string{"World Health Organization", "France"},
		CorporateNames:     []string{"UN Development Programme (UNDP)", "UNICEF", "France"},
	}
}

func TestBuildRegistry(t *testing.T) {
	r, err := Build(testSources(), testLookup(), textnorm.New())
	require.NoError(t, err)

	assert.Equal(t, []string{"poverty", "sustainable development"}, r.Vocabulary)
	require.Len(t, r.Targets, 2)
	require.Len(t, r.Indicators, 1)

	target := r.Targets[0]
	assert.Equal(t, "end poverty in all its forms everywhere", target.Alpha)
	assert.Equal(t, embedding.Vector{1, 1}, target.Vector)
	assert.Equal(t, "No Poverty", target.Category)

	assert.Equal(t, []string{"Trinidad and Tobago", "France"}, r.Countries)

	entity, ok := r.Entity("World Health Organization")
	require.True(t, ok)
	assert.Equal(t, embedding.Vector{1.5, 2.5}, entity.Vector)

	undp, ok := r.Entity("United Nations Development Programme")
	require.True(t, ok)
	assert.Nil(t, undp.Vector)
}

func TestBuildRejectsUnknownKind(t *testing.T) {
	src := testSources()
	src.Taxonomy = append(src.Taxonomy, TaxonomyRow{Content: "x", Type: "Goals"})
	_, err := Build(src, nil, textnorm.New())
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestBuildRequiresStatements(t *testing.T) {
	_, err := Build(Sources{}, nil, textnorm.New())
	assert.ErrorIs(t, err, ErrNoStatements)
}

func TestEntityNames(t *testing.T) {
	names := EntityNames(
		[]string{"World Health Organization.", "France"},
		[]string{"World Health Organization", `Office of "Legal" Affairs`},
		[]string{"UN Development Programme (UNDP)", "UNICEF", "France", "UN-Habitat"},
		[]string{"France"},
	)

	assert.Equal(t, "World Health Organization", names[0])
	assert.Equal(t, "Office of Legal Affairs", names[1])
	assert.Equal(t, "United Nations Development Programme", names[2])
	assert.Equal(t, "UNICEF", names[3])
	assert.Equal(t, "United Nations-Habitat", names[4])
	assert.NotContains(t, names, "France")
	assert.Contains(t, names, "Special Political and Decolonization Committee (Fourth Committee)")
	assert.Len(t, names, 5+len(AdditionalOrganizations))
}

func TestVerbAndKeywordPredicates(t *testing.T) {
	r, err := Build(testSources(), nil, textnorm.New())
	require.NoError(t, err)

	assert.True(t, r.IsIntroductoryVerb("recalling"))
	assert.True(t, r.IsOperativeVerb("decides"))
	assert.True(t, r.IsLeadVerb("decide"))
	assert.True(t, r.IsPluralOperativeVerb("decides"))
	assert.False(t, r.IsPluralOperativeVerb("decide"))
	assert.False(t, r.IsLeadVerb("banana"))

	assert.True(t, r.IsStopword("the"))
	assert.True(t, r.HasOrganizationKeyword("Regional Office for Africa"))
	assert.True(t, r.HasNonOrganizationKeyword("Global Impact Review"))
	assert.False(t, r.HasNonOrganizationKeyword("Global Health Fund"))

	assert.True(t, r.IsKnownEntity("UNICEF"))
	assert.True(t, r.WithinKnownEntity("health organization"))
	assert.False(t, r.WithinKnownEntity("health council"))
}

func TestCategoryKeywords(t *testing.T) {
	r, err := Build(testSources(), nil, textnorm.New())
	require.NoError(t, err)

	profiles := r.CategoryKeywords(2)
	require.Len(t, profiles, 2)
	assert.Equal(t, "No Poverty", profiles[0].Category)
	assert.Equal(t, []WordCount{{Word: "poverty", Count: 2}, {Word: "end", Count: 1}}, profiles[0].Words)
	assert.Equal(t, "Good Health and Well-Being", profiles[1].Category)
}
