package profile

import (
	"context"
	"encoding/json"
	"time"

	"github.com/devinsight/devinsight/internal/adapters"
	"github.com/devinsight/devinsight/internal/database"
	"github.com/devinsight/devinsight/internal/errors"
	"github.com/devinsight/devinsight/internal/insights"
	"github.com/devinsight/devinsight/internal/monitoring"
)

// Fetcher is what the service needs from the GitHub adapter.
type Fetcher interface {
	FetchProfile(ctx context.Context, username string) (*adapters.ProfileData, error)
}

// Result is one completed scan.
type Result struct {
	ScanID    string                  `json:"scan_id,omitempty"`
	Username  string                  `json:"username"`
	ScannedAt time.Time               `json:"scanned_at"`
	RepoCount int                     `json:"repo_count"`
	Insights  insights.Insights       `json:"insights"`
	Summary   insights.ProfileSummary `json:"summary"`
}

// Service ties the fetch layer, the derivation engine, and scan persistence
// together. The engine stays pure; everything stateful lives here.
type Service struct {
	fetcher    Fetcher
	aggregator *insights.Aggregator
	repo       *database.Repository
	logger     *monitoring.Logger
	metrics    *monitoring.Metrics
}

// NewService creates a profile service. repo may be nil to disable
// persistence (the CLI uses this for one-off scans).
func NewService(fetcher Fetcher, aggregator *insights.Aggregator, repo *database.Repository,
	logger *monitoring.Logger, metrics *monitoring.Metrics) *Service {
	return &Service{
		fetcher:    fetcher,
		aggregator: aggregator,
		repo:       repo,
		logger:     logger,
		metrics:    metrics,
	}
}

// Scan fetches a user's repositories, derives insights, and persists the
// result when a repository is configured.
func (s *Service) Scan(ctx context.Context, username string) (*Result, error) {
	if username == "" {
		return nil, errors.NewValidationError("username must not be empty")
	}

	start := time.Now()
	data, err := s.fetcher.FetchProfile(ctx, username)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	ins := s.aggregator.Build(data.Repositories, data.LanguageBytes, now)
	summary := s.aggregator.Flatten(ins, s.aggregator.Summarize(data.Repositories))

	result := &Result{
		Username:  username,
		ScannedAt: now,
		RepoCount: len(data.Repositories),
		Insights:  ins,
		Summary:   summary,
	}

	if s.repo != nil {
		if err := s.persist(result); err != nil {
			// A failed save never loses the scan itself.
			s.logger.Warn("failed to persist scan", "username", username, "error", err.Error())
		}
	}

	if s.metrics != nil {
		s.metrics.IncrementScans()
	}
	if s.logger != nil {
		s.logger.ScanLogger(username, result.RepoCount, len(data.LanguageBytes), time.Since(start), false)
	}
	return result, nil
}

func (s *Service) persist(result *Result) error {
	insightsJSON, err := json.Marshal(result.Insights)
	if err != nil {
		return err
	}
	summaryJSON, err := json.Marshal(result.Summary)
	if err != nil {
		return err
	}

	scan := database.NewScan(result.Username, result.RepoCount, string(insightsJSON), string(summaryJSON))
	if err := s.repo.SaveScan(scan); err != nil {
		return err
	}
	result.ScanID = scan.ID
	return nil
}

// Latest loads the most recent stored scan for a username.
func (s *Service) Latest(username string) (*Result, error) {
	if s.repo == nil {
		return nil, errors.NewInternalError("no scan store configured", nil)
	}
	scan, err := s.repo.LatestScan(username)
	if err != nil {
		return nil, errors.NewInternalError("loading scan", err)
	}
	if scan == nil {
		return nil, errors.NewNotFoundError("scan")
	}

	result := &Result{
		ScanID:    scan.ID,
		Username:  scan.Username,
		ScannedAt: scan.ScannedAt,
		RepoCount: scan.RepoCount,
	}
	if err := json.Unmarshal([]byte(scan.InsightsJSON), &result.Insights); err != nil {
		return nil, errors.NewInternalError("decoding stored insights", err)
	}
	if err := json.Unmarshal([]byte(scan.SummaryJSON), &result.Summary); err != nil {
		return nil, errors.NewInternalError("decoding stored summary", err)
	}
	return result, nil
}

// History lists recent scans, newest first.
func (s *Service) History(limit int) ([]database.Scan, error) {
	if s.repo == nil {
		return nil, errors.NewInternalError("no scan store configured", nil)
	}
	scans, err := s.repo.ListScans(limit)
	if err != nil {
		return nil, errors.NewInternalError("listing scans", err)
	}
	return scans, nil
}
