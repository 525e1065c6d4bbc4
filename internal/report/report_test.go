package report

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/TobiSchelling/resextract/internal/corpus"
	"github.com/TobiSchelling/resextract/internal/database"
)

func openTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"), nil)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seedRun(t *testing.T, db *database.DB) int64 {
	t.Helper()
	runID, _ := db.InsertRun("paragraphs.csv")
	db.SaveParagraphs(runID, []*corpus.Paragraph{
		{SourceFile: "A", Index: 1, ThematicCategories: []string{"No Poverty"}},
	})
	db.SaveOrganizationCounts(runID, []corpus.OrganizationCount{{Name: "Global | Fund", Count: 2}})
	db.SaveFailures(runID, []corpus.Failure{
		{SourceFile: "paragraphs.csv", Index: -1, Line: 9, Stage: "ingest", Message: "invalid Index"},
		{SourceFile: "A", Index: 3, Stage: "taxonomy", Message: "panic: boom"},
	})
	db.FinishRun(runID, database.StatusCompleted, database.RunCounts{Paragraphs: 1, Resolutions: 1, Failures: 2})
	return runID
}

func TestComposeLastRun(t *testing.T) {
	db := openTestDB(t)
	runID := seedRun(t, db)

	r, err := NewComposer(db).Compose(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r == nil {
		t.Fatal("expected report")
	}
	if r.Run.ID != runID {
		t.Errorf("expected run %d, got %d", runID, r.Run.ID)
	}

	for _, want := range []string{
		"# Extraction run #",
		"| Paragraphs | 1 |",
		"| No Poverty | 1 |",
		`| Global \| Fund | 2 |`,
		"- `ingest` paragraphs.csv line 9: invalid Index",
		"- `taxonomy` A #3: panic: boom",
	} {
		if !strings.Contains(r.Markdown, want) {
			t.Errorf("expected %q in report:\n%s", want, r.Markdown)
		}
	}
}

func TestComposeWithoutRuns(t *testing.T) {
	db := openTestDB(t)
	r, err := NewComposer(db).Compose(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r != nil {
		t.Errorf("expected no report, got %+v", r)
	}
}

func TestRenderHTML(t *testing.T) {
	db := openTestDB(t)
	runID := seedRun(t, db)

	r, err := NewComposer(db).Compose(runID)
	if err != nil || r == nil {
		t.Fatalf("compose: %v", err)
	}
	html, err := r.RenderHTML()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, "<h1>Extraction run #") {
		t.Errorf("expected rendered heading, got:\n%s", html)
	}
	if !strings.Contains(html, "<title>Extraction run #") {
		t.Error("expected page title")
	}
	if !strings.Contains(html, "<table>") {
		t.Error("expected rendered tables")
	}
	if !strings.Contains(html, "<code>ingest</code>") {
		t.Error("expected inline code for failure stage")
	}
}
