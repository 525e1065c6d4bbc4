package output

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/TobiSchelling/resextract/internal/corpus"
)

func sampleParagraphs() []*corpus.Paragraph {
	p := &corpus.Paragraph{
		SourceFile:            "A_RES_70_1",
		Index:                 4,
		Content:               "Recalling its resolution 69/313",
		Type:                  corpus.TypeParagraph,
		LeadVerb:              "recalling",
		ParagraphType:         corpus.Introductory,
		ReferencedResolutions: []string{"resolution 69/313"},
		ClosestTargetScore:    0.5,
	}
	p.SetCitationDate("69/313", corpus.DateNA)
	failed := &corpus.Paragraph{SourceFile: "A_RES_70_1", Index: 5, Type: corpus.TypeParagraph}
	failed.Fail("classify", assert.AnError)
	return []*corpus.Paragraph{p, failed}
}

func TestParagraphsTable(t *testing.T) {
	tbl := Paragraphs(sampleParagraphs())
	require.Len(t, tbl.Rows, 2)
	row := tbl.Rows[0]
	require.Len(t, row, len(tbl.Header))

	col := func(name string) any {
		for i, h := range tbl.Header {
			if h == name {
				return row[i]
			}
		}
		t.Fatalf("no column %q", name)
		return nil
	}
	assert.Equal(t, "[]", col("KeyTerms"))
	assert.Equal(t, `["resolution 69/313"]`, col("ReferencedResolutions"))
	assert.Equal(t, `[{"resolution":"69/313","date":"NA"}]`, col("ReferencedResolutionDates"))
	assert.Equal(t, "", col("Failure"))
	assert.Contains(t, tbl.Rows[1][len(tbl.Header)-1], "classify: ")
}

func TestWriteCSVAndXLSX(t *testing.T) {
	dir := t.TempDir()
	tbl := Organizations([]corpus.OrganizationCount{{Name: "Global Fund", Count: 2}, {Name: "African Union", Count: 1}})

	paths, err := Write(dir, tbl, []string{XLSX, CSV})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "organizations.xlsx"),
		filepath.Join(dir, "organizations.csv"),
	}, paths)

	f, err := os.Open(paths[1])
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Organization", "Count"}, {"Global Fund", "2"}, {"African Union", "1"}}, records)

	wb, err := excelize.OpenFile(paths[0])
	require.NoError(t, err)
	defer wb.Close()
	rows, err := wb.GetRows(sheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Organization", "Count"}, {"Global Fund", "2"}, {"African Union", "1"}}, rows)
}

func TestWriteUnknownFormat(t *testing.T) {
	_, err := Write(t.TempDir(), Resolutions(nil), []string{"parquet"})
	assert.Error(t, err)
}
