package database

import "database/sql"

// Migration represents a single schema migration step.
type Migration struct {
	Version     int
	Description string
	Up          func(tx *sql.Tx) error
}

// migrations is the ordered list of all schema migrations.
// Append new migrations to the end with incrementing Version numbers.
var migrations = []Migration{
	{
		Version:     1,
		Description: "initial schema",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    input_path TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'running' CHECK(status IN ('running', 'completed', 'failed')),
    paragraph_count INTEGER DEFAULT 0,
    resolution_count INTEGER DEFAULT 0,
    failure_count INTEGER DEFAULT 0,
    started_at TEXT DEFAULT (datetime('now')),
    finished_at TEXT
);

CREATE TABLE IF NOT EXISTS paragraphs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    source_file TEXT NOT NULL,
    idx INTEGER NOT NULL,
    content TEXT,
    type TEXT,
    lead_verb TEXT,
    paragraph_type TEXT,
    key_terms TEXT,
    referenced_resolutions TEXT,
    referenced_resolution_dates TEXT,
    thematic_categories TEXT,
    closest_target TEXT,
    closest_target_score REAL DEFAULT 0,
    closest_indicator TEXT,
    closest_indicator_score REAL DEFAULT 0,
    countries TEXT,
    organizations_known TEXT,
    organizations_original TEXT,
    organizations_inferred TEXT
);

CREATE TABLE IF NOT EXISTS resolutions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    source_file TEXT NOT NULL,
    session TEXT,
    agenda_item TEXT,
    number TEXT,
    title TEXT,
    adoption_date TEXT,
    adoption_day TEXT,
    adoption_month TEXT,
    adoption_year TEXT,
    organizations_known TEXT,
    organizations_original TEXT,
    organizations_inferred TEXT,
    UNIQUE (run_id, source_file)
);

CREATE TABLE IF NOT EXISTS organization_counts (
    run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    count INTEGER NOT NULL,
    PRIMARY KEY (run_id, name)
);

CREATE TABLE IF NOT EXISTS failures (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    source_file TEXT,
    idx INTEGER,
    line INTEGER,
    stage TEXT NOT NULL,
    message TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_paragraphs_run ON paragraphs(run_id, source_file, idx);
CREATE INDEX IF NOT EXISTS idx_resolutions_run ON resolutions(run_id);
CREATE INDEX IF NOT EXISTS idx_failures_run ON failures(run_id);
`)
			return err
		},
	},
}

// latestVersion returns the highest migration version number.
func latestVersion() int {
	if len(migrations) == 0 {
		return 0
	}
	return migrations[len(migrations)-1].Version
}
