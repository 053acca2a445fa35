package database

import (
	"database/sql"
	"fmt"
	"time"
)

// Repository provides scan persistence operations.
type Repository struct {
	db *DB
}

// NewRepository creates a scan repository.
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// SaveScan inserts a scan record.
func (r *Repository) SaveScan(scan *Scan) error {
	query := `INSERT INTO scans (id, username, scanned_at, repo_count, insights_json, summary_json)
		VALUES (?, ?, ?, ?, ?, ?)`

	if _, err := r.db.Exec(query, scan.ID, scan.Username, scan.ScannedAt,
		scan.RepoCount, scan.InsightsJSON, scan.SummaryJSON); err != nil {
		return fmt.Errorf("failed to save scan: %w", err)
	}
	return nil
}

// LatestScan returns the most recent scan for a username, or nil when none
// exists.
func (r *Repository) LatestScan(username string) (*Scan, error) {
	query := `SELECT id, username, scanned_at, repo_count, insights_json, summary_json
		FROM scans WHERE username = ? ORDER BY scanned_at DESC LIMIT 1`

	scan := &Scan{}
	err := r.db.QueryRow(query, username).Scan(&scan.ID, &scan.Username,
		&scan.ScannedAt, &scan.RepoCount, &scan.InsightsJSON, &scan.SummaryJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load scan: %w", err)
	}
	return scan, nil
}

// ListScans returns recent scans, newest first.
func (r *Repository) ListScans(limit int) ([]Scan, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT id, username, scanned_at, repo_count, insights_json, summary_json
		FROM scans ORDER BY scanned_at DESC LIMIT ?`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}
	defer rows.Close()

	var scans []Scan
	for rows.Next() {
		var scan Scan
		if err := rows.Scan(&scan.ID, &scan.Username, &scan.ScannedAt,
			&scan.RepoCount, &scan.InsightsJSON, &scan.SummaryJSON); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		scans = append(scans, scan)
	}
	return scans, rows.Err()
}

// PruneScans deletes scans older than the retention window.
func (r *Repository) PruneScans(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	result, err := r.db.Exec(`DELETE FROM scans WHERE scanned_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune scans: %w", err)
	}
	return result.RowsAffected()
}
