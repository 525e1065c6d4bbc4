package database

import (
	"database/sql"
	"encoding/json"

	"github.com/TobiSchelling/resextract/internal/corpus"
)

// encodeList stores a slice as a JSON array; empty slices become "[]".
func encodeList[T any](items []T) string {
	if len(items) == 0 {
		return "[]"
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// insertAll runs one prepared insert per item inside a transaction.
func insertAll[T any](db *DB, query string, items []T, args func(T) []any) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, it := range items {
		if _, err := stmt.Exec(args(it)...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// SaveParagraphs stores the annotated paragraphs of a run.
func (db *DB) SaveParagraphs(runID int64, paras []*corpus.Paragraph) error {
	return insertAll(db,
		`INSERT INTO paragraphs (run_id, source_file, idx, content, type, lead_verb, paragraph_type,
		key_terms, referenced_resolutions, referenced_resolution_dates, thematic_categories,
		closest_target, closest_target_score, closest_indicator, closest_indicator_score,
		countries, organizations_known, organizations_original, organizations_inferred)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		paras,
		func(p *corpus.Paragraph) []any {
			return []any{
				runID, p.SourceFile, p.Index, p.Content, p.Type, p.LeadVerb, p.ParagraphType,
				encodeList(p.KeyTerms), encodeList(p.ReferencedResolutions),
				encodeList(p.ReferencedResolutionDates), encodeList(p.ThematicCategories),
				p.ClosestTarget, p.ClosestTargetScore, p.ClosestIndicator, p.ClosestIndicatorScore,
				encodeList(p.Countries), encodeList(p.OrganizationsKnown),
				encodeList(p.OrganizationsOriginal), encodeList(p.OrganizationsInferred),
			}
		},
	)
}

// SaveResolutions stores the resolution summaries of a run.
func (db *DB) SaveResolutions(runID int64, res []*corpus.Resolution) error {
	return insertAll(db,
		`INSERT INTO resolutions (run_id, source_file, session, agenda_item, number, title,
		adoption_date, adoption_day, adoption_month, adoption_year,
		organizations_known, organizations_original, organizations_inferred)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res,
		func(r *corpus.Resolution) []any {
			return []any{
				runID, r.SourceFile, r.Session, r.AgendaItem, r.Number, r.Title,
				r.AdoptionDate, r.AdoptionDay, r.AdoptionMonth, r.AdoptionYear,
				encodeList(r.OrganizationsKnown), encodeList(r.OrganizationsOriginal),
				encodeList(r.OrganizationsInferred),
			}
		},
	)
}

// SaveOrganizationCounts stores the organization frequency table of a run.
func (db *DB) SaveOrganizationCounts(runID int64, counts []corpus.OrganizationCount) error {
	return insertAll(db,
		`INSERT INTO organization_counts (run_id, name, count) VALUES (?, ?, ?)`,
		counts,
		func(c corpus.OrganizationCount) []any { return []any{runID, c.Name, c.Count} },
	)
}

// SaveFailures stores the row and stage failures of a run.
func (db *DB) SaveFailures(runID int64, failures []corpus.Failure) error {
	return insertAll(db,
		`INSERT INTO failures (run_id, source_file, idx, line, stage, message) VALUES (?, ?, ?, ?, ?, ?)`,
		failures,
		func(f corpus.Failure) []any {
			return []any{runID, f.SourceFile, f.Index, f.Line, f.Stage, f.Message}
		},
	)
}

// TopOrganizations returns the n most frequent organization names of a run.
func (db *DB) TopOrganizations(runID int64, n int) ([]corpus.OrganizationCount, error) {
	rows, err := db.conn.Query(
		`SELECT name, count FROM organization_counts WHERE run_id = ?
		ORDER BY count DESC, name ASC LIMIT ?`, runID, n,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []corpus.OrganizationCount
	for rows.Next() {
		var c corpus.OrganizationCount
		if err := rows.Scan(&c.Name, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetFailures returns the failures of a run in insertion order.
func (db *DB) GetFailures(runID int64) ([]corpus.Failure, error) {
	rows, err := db.conn.Query(
		`SELECT source_file, idx, line, stage, message FROM failures WHERE run_id = ? ORDER BY id`, runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []corpus.Failure
	for rows.Next() {
		var f corpus.Failure
		var source sql.NullString
		if err := rows.Scan(&source, &f.Index, &f.Line, &f.Stage, &f.Message); err != nil {
			return nil, err
		}
		f.SourceFile = source.String
		out = append(out, f)
	}
	return out, rows.Err()
}

// CategoryCounts returns how many paragraphs of a run carry each thematic
// category, most frequent first.
func (db *DB) CategoryCounts(runID int64) ([]CategoryCount, error) {
	rows, err := db.conn.Query(
		`SELECT c.value, COUNT(*) FROM paragraphs p, json_each(p.thematic_categories) c
		WHERE p.run_id = ? GROUP BY c.value ORDER BY COUNT(*) DESC, c.value ASC`, runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CategoryCount
	for rows.Next() {
		var c CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
