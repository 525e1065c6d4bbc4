package database

import "database/sql"

// InsertRun records the start of an extraction run and returns its ID.
func (db *DB) InsertRun(inputPath string) (int64, error) {
	result, err := db.conn.Exec(`INSERT INTO runs (input_path) VALUES (?)`, inputPath)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// FinishRun stamps a run with its final status and totals.
func (db *DB) FinishRun(runID int64, status string, counts RunCounts) error {
	_, err := db.conn.Exec(
		`UPDATE runs SET status = ?, paragraph_count = ?, resolution_count = ?, failure_count = ?,
		finished_at = datetime('now') WHERE id = ?`,
		status, counts.Paragraphs, counts.Resolutions, counts.Failures, runID,
	)
	return err
}

const runColumns = `id, input_path, status, paragraph_count, resolution_count, failure_count, started_at, finished_at`

func scanRun(row *sql.Row) (*Run, error) {
	var r Run
	err := row.Scan(&r.ID, &r.InputPath, &r.Status, &r.ParagraphCount, &r.ResolutionCount,
		&r.FailureCount, &r.StartedAt, &r.FinishedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &r, nil
}

// GetRun returns a run by ID, or nil if it does not exist.
func (db *DB) GetRun(runID int64) (*Run, error) {
	return scanRun(db.conn.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, runID))
}

// GetLastRun returns the most recent completed run, or nil if there is none.
func (db *DB) GetLastRun() (*Run, error) {
	return scanRun(db.conn.QueryRow(
		`SELECT ` + runColumns + ` FROM runs WHERE status = 'completed' ORDER BY id DESC LIMIT 1`,
	))
}

// GetStats returns run totals and the contents of the last completed run.
func (db *DB) GetStats() (*Stats, error) {
	var s Stats
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&s.Runs); err != nil {
		return nil, err
	}
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM runs WHERE status = 'completed'`).Scan(&s.CompletedRuns); err != nil {
		return nil, err
	}

	last, err := db.GetLastRun()
	if err != nil {
		return nil, err
	}
	if last == nil {
		return &s, nil
	}
	s.LastRunID = last.ID

	counts := []struct {
		query string
		dst   *int
	}{
		{`SELECT COUNT(*) FROM paragraphs WHERE run_id = ?`, &s.Paragraphs},
		{`SELECT COUNT(*) FROM paragraphs WHERE run_id = ? AND paragraph_type != ''`, &s.ClassifiedParas},
		{`SELECT COUNT(*) FROM paragraphs WHERE run_id = ? AND referenced_resolutions != '[]'`, &s.ParagraphsCiting},
		{`SELECT COUNT(*) FROM resolutions WHERE run_id = ?`, &s.Resolutions},
		{`SELECT COUNT(*) FROM organization_counts WHERE run_id = ?`, &s.Organizations},
		{`SELECT COUNT(*) FROM failures WHERE run_id = ?`, &s.Failures},
	}
	for _, c := range counts {
		if err := db.conn.QueryRow(c.query, last.ID).Scan(c.dst); err != nil {
			return nil, err
		}
	}
	return &s, nil
}
