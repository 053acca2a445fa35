package database

import (
	"time"

	"github.com/google/uuid"
)

// Scan is one persisted profile scan. The derived structures are stored as
// JSON blobs; the engine never reads them back, they exist for renderers and
// history queries.
type Scan struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	ScannedAt    time.Time `json:"scanned_at" db:"scanned_at"`
	RepoCount    int       `json:"repo_count" db:"repo_count"`
	InsightsJSON string    `json:"-" db:"insights_json"`
	SummaryJSON  string    `json:"-" db:"summary_json"`
}

// NewScan creates a scan record with a generated ID.
func NewScan(username string, repoCount int, insightsJSON, summaryJSON string) *Scan {
	return &Scan{
		ID:           uuid.New().String(),
		Username:     username,
		ScannedAt:    time.Now(),
		RepoCount:    repoCount,
		InsightsJSON: insightsJSON,
		SummaryJSON:  summaryJSON,
	}
}
