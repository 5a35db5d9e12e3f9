package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dtnitsch/sso-scraper/models"
)

// Run represents one scrape invocation
type Run struct {
	RunID          int64
	CreatedAt      time.Time
	ListingURL     string
	PagesFetched   int
	StopReason     string
	StatuteCount   int
	ProvisionCount int
	FailedCount    int
}

// RunStats are the counters stored on a run once it is finished
type RunStats struct {
	PagesFetched   int
	StopReason     string
	StatuteCount   int
	ProvisionCount int
	FailedCount    int
}

// StatuteRecord is a statute row of a run
type StatuteRecord struct {
	StatuteID    int64
	Position     int
	Name         string
	Acronym      string
	DetailURL    string
	StatusCode   int
	TOCFound     bool
	Fetched      bool
	ErrorMessage string
}

// ProvisionRecord is a provision row joined with its statute name
type ProvisionRecord struct {
	Statute string
	models.Provision
}

// CreateRun starts a new run record and returns its ID
func (db *DB) CreateRun(listingURL string) (int64, error) {
	result, err := db.Exec(`INSERT INTO runs (listing_url) VALUES (?)`, listingURL)
	if err != nil {
		return 0, fmt.Errorf("failed to create run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return runID, nil
}

// FinishRun stores the final counters of a run
func (db *DB) FinishRun(runID int64, stats RunStats) error {
	_, err := db.Exec(`
		UPDATE runs
		SET pages_fetched = ?, stop_reason = ?, statute_count = ?, provision_count = ?, failed_count = ?
		WHERE run_id = ?
	`, stats.PagesFetched, stats.StopReason, stats.StatuteCount, stats.ProvisionCount, stats.FailedCount, runID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	return nil
}

// InsertStatutes stores the listing of a run in order, returning statute IDs
// in the same order as names.
func (db *DB) InsertStatutes(runID int64, names []string, acronyms []string) ([]int64, error) {
	if len(names) != len(acronyms) {
		return nil, fmt.Errorf("got %d names but %d acronyms", len(names), len(acronyms))
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	ids := make([]int64, 0, len(names))
	for i, name := range names {
		result, err := tx.Exec(`
			INSERT INTO statutes (run_id, position, name, acronym)
			VALUES (?, ?, ?, ?)
		`, runID, i, name, acronyms[i])
		if err != nil {
			return nil, fmt.Errorf("failed to insert statute %q: %w", name, err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to get statute ID: %w", err)
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit statutes: %w", err)
	}
	return ids, nil
}

// SaveStatuteProvisions records the detail-page outcome of a statute and its
// provisions. fetchErr is the error FetchProvisions returned, if any.
func (db *DB) SaveStatuteProvisions(statuteID int64, sp models.StatuteProvisions, fetchErr error) error {
	var errMsg interface{}
	if fetchErr != nil {
		errMsg = fetchErr.Error()
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	_, err = tx.Exec(`
		UPDATE statutes
		SET detail_url = ?, status_code = ?, toc_found = ?, fetched = 1, error_message = ?
		WHERE statute_id = ?
	`, sp.DetailURL, sp.StatusCode, sp.TOCFound, errMsg, statuteID)
	if err != nil {
		return fmt.Errorf("failed to update statute: %w", err)
	}

	for i, p := range sp.Provisions {
		_, err := tx.Exec(`
			INSERT INTO provisions (statute_id, position, prov_id, number, title, url, content, has_content)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, statuteID, i, p.ID, p.Number, p.Title, p.URL, p.Content, p.HasContent)
		if err != nil {
			return fmt.Errorf("failed to insert provision %s: %w", p.Number, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit provisions: %w", err)
	}
	return nil
}

// GetRunByID retrieves a run by its ID
func (db *DB) GetRunByID(runID int64) (*Run, error) {
	var r Run
	var stop sql.NullString
	err := db.QueryRow(`
		SELECT run_id, created_at, listing_url, pages_fetched, stop_reason,
		       statute_count, provision_count, failed_count
		FROM runs
		WHERE run_id = ?
	`, runID).Scan(&r.RunID, &r.CreatedAt, &r.ListingURL, &r.PagesFetched, &stop,
		&r.StatuteCount, &r.ProvisionCount, &r.FailedCount)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %d not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	r.StopReason = stop.String
	return &r, nil
}

// ListRuns retrieves runs ordered by most recent first
func (db *DB) ListRuns(limit int) ([]Run, error) {
	query := `
		SELECT run_id, created_at, listing_url, pages_fetched, stop_reason,
		       statute_count, provision_count, failed_count
		FROM runs
		ORDER BY created_at DESC, run_id DESC
	`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var stop sql.NullString
		if err := rows.Scan(&r.RunID, &r.CreatedAt, &r.ListingURL, &r.PagesFetched, &stop,
			&r.StatuteCount, &r.ProvisionCount, &r.FailedCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.StopReason = stop.String
		runs = append(runs, r)
	}

	return runs, rows.Err()
}

// GetRunStatutes retrieves the statutes of a run in listing order
func (db *DB) GetRunStatutes(runID int64) ([]StatuteRecord, error) {
	rows, err := db.Query(`
		SELECT statute_id, position, name, acronym, detail_url, status_code, toc_found, fetched, error_message
		FROM statutes
		WHERE run_id = ?
		ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run statutes: %w", err)
	}
	defer rows.Close()

	var statutes []StatuteRecord
	for rows.Next() {
		var s StatuteRecord
		var detailURL, errMsg sql.NullString
		var status sql.NullInt64
		if err := rows.Scan(&s.StatuteID, &s.Position, &s.Name, &s.Acronym, &detailURL,
			&status, &s.TOCFound, &s.Fetched, &errMsg); err != nil {
			return nil, fmt.Errorf("failed to scan statute: %w", err)
		}
		s.DetailURL = detailURL.String
		s.StatusCode = int(status.Int64)
		s.ErrorMessage = errMsg.String
		statutes = append(statutes, s)
	}

	return statutes, rows.Err()
}

// GetRunProvisions retrieves the provisions of a run in statute then page
// order. A non-empty statute restricts the result to that statute name.
func (db *DB) GetRunProvisions(runID int64, statute string) ([]ProvisionRecord, error) {
	query := `
		SELECT s.name, p.prov_id, p.number, p.title, p.url, p.content, p.has_content
		FROM provisions p
		JOIN statutes s ON p.statute_id = s.statute_id
		WHERE s.run_id = ?
	`
	args := []interface{}{runID}
	if statute != "" {
		query += " AND s.name = ?"
		args = append(args, statute)
	}
	query += " ORDER BY s.position, p.position"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get run provisions: %w", err)
	}
	defer rows.Close()

	var provisions []ProvisionRecord
	for rows.Next() {
		var r ProvisionRecord
		var content sql.NullString
		if err := rows.Scan(&r.Statute, &r.ID, &r.Number, &r.Title, &r.URL, &content, &r.HasContent); err != nil {
			return nil, fmt.Errorf("failed to scan provision: %w", err)
		}
		r.Content = content.String
		provisions = append(provisions, r)
	}

	return provisions, rows.Err()
}
