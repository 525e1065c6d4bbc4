package database

import (
	"path/filepath"
	"testing"

	"github.com/TobiSchelling/resextract/internal/corpus"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"), nil)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestInsertRun(t *testing.T) {
	db := openTestDB(t)
	id, err := db.InsertRun("paragraphs.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == 0 {
		t.Error("expected non-zero run ID")
	}

	run, err := db.GetRun(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if run == nil {
		t.Fatal("expected run")
	}
	if run.Status != StatusRunning {
		t.Errorf("expected status %q, got %q", StatusRunning, run.Status)
	}
	if run.FinishedAt != nil {
		t.Error("expected no finished_at on a running run")
	}
}

func TestGetLastRunIgnoresUnfinished(t *testing.T) {
	db := openTestDB(t)

	last, err := db.GetLastRun()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if last != nil {
		t.Errorf("expected no last run, got %+v", last)
	}

	first, _ := db.InsertRun("a.csv")
	db.FinishRun(first, StatusCompleted, RunCounts{Paragraphs: 10, Resolutions: 2, Failures: 1})
	db.InsertRun("b.csv")

	last, _ = db.GetLastRun()
	if last == nil || last.ID != first {
		t.Fatalf("expected last run %d, got %+v", first, last)
	}
	if last.ParagraphCount != 10 || last.ResolutionCount != 2 || last.FailureCount != 1 {
		t.Errorf("unexpected counts %+v", last)
	}
	if last.FinishedAt == nil {
		t.Error("expected finished_at to be set")
	}
}

func TestRunResultsLifecycle(t *testing.T) {
	db := openTestDB(t)
	runID, _ := db.InsertRun("paragraphs.csv")

	cited := &corpus.Paragraph{
		SourceFile:            "A_RES_70_1",
		Index:                 4,
		Type:                  corpus.TypeParagraph,
		ParagraphType:         corpus.Introductory,
		ReferencedResolutions: []string{"resolution 69/313"},
		ThematicCategories:    []string{"No Poverty", "Climate Action"},
	}
	plain := &corpus.Paragraph{
		SourceFile:         "A_RES_70_1",
		Index:              5,
		Type:               corpus.TypeParagraph,
		ThematicCategories: []string{"Climate Action"},
	}
	if err := db.SaveParagraphs(runID, []*corpus.Paragraph{cited, plain}); err != nil {
		t.Fatalf("SaveParagraphs: %v", err)
	}
	if err := db.SaveResolutions(runID, []*corpus.Resolution{{SourceFile: "A_RES_70_1", Number: "70/1"}}); err != nil {
		t.Fatalf("SaveResolutions: %v", err)
	}
	counts := []corpus.OrganizationCount{
		{Name: "African Union", Count: 1},
		{Name: "Global Fund", Count: 3},
		{Name: "Peacebuilding Commission", Count: 3},
	}
	if err := db.SaveOrganizationCounts(runID, counts); err != nil {
		t.Fatalf("SaveOrganizationCounts: %v", err)
	}
	failures := []corpus.Failure{
		{SourceFile: "paragraphs.csv", Index: -1, Line: 7, Stage: "ingest", Message: "invalid Index"},
		{SourceFile: "A_RES_70_1", Index: 6, Stage: "classify", Message: "boom"},
	}
	if err := db.SaveFailures(runID, failures); err != nil {
		t.Fatalf("SaveFailures: %v", err)
	}
	db.FinishRun(runID, StatusCompleted, RunCounts{Paragraphs: 2, Resolutions: 1, Failures: 2})

	top, err := db.TopOrganizations(runID, 2)
	if err != nil {
		t.Fatalf("TopOrganizations: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("expected 2 organizations, got %d", len(top))
	}
	if top[0].Name != "Global Fund" || top[1].Name != "Peacebuilding Commission" {
		t.Errorf("unexpected order: %+v", top)
	}

	got, err := db.GetFailures(runID)
	if err != nil {
		t.Fatalf("GetFailures: %v", err)
	}
	if len(got) != 2 || got[0] != failures[0] || got[1] != failures[1] {
		t.Errorf("expected failures %+v, got %+v", failures, got)
	}

	cats, err := db.CategoryCounts(runID)
	if err != nil {
		t.Fatalf("CategoryCounts: %v", err)
	}
	if len(cats) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(cats))
	}
	if cats[0].Category != "Climate Action" || cats[0].Count != 2 {
		t.Errorf("expected Climate Action x2 first, got %+v", cats[0])
	}

	stats, err := db.GetStats()
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.LastRunID != runID {
		t.Errorf("expected last run %d, got %d", runID, stats.LastRunID)
	}
	if stats.Paragraphs != 2 {
		t.Errorf("expected 2 paragraphs, got %d", stats.Paragraphs)
	}
	if stats.ClassifiedParas != 1 {
		t.Errorf("expected 1 classified paragraph, got %d", stats.ClassifiedParas)
	}
	if stats.ParagraphsCiting != 1 {
		t.Errorf("expected 1 citing paragraph, got %d", stats.ParagraphsCiting)
	}
	if stats.Resolutions != 1 || stats.Organizations != 3 || stats.Failures != 2 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestGetStatsEmpty(t *testing.T) {
	db := openTestDB(t)
	stats, err := db.GetStats()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Runs != 0 || stats.LastRunID != 0 {
		t.Errorf("expected empty stats, got %+v", stats)
	}
}

func TestEncodeList(t *testing.T) {
	if got := encodeList[string](nil); got != "[]" {
		t.Errorf("expected '[]', got %q", got)
	}
	if got := encodeList([]string{"a", "b"}); got != `["a","b"]` {
		t.Errorf(`expected '["a","b"]', got %q`, got)
	}
}
