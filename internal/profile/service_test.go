package profile

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devinsight/devinsight/internal/adapters"
	"github.com/devinsight/devinsight/internal/database"
	apperrors "github.com/devinsight/devinsight/internal/errors"
	"github.com/devinsight/devinsight/internal/insights"
	"github.com/devinsight/devinsight/internal/monitoring"
	"github.com/devinsight/devinsight/internal/types"
)

type fakeFetcher struct {
	data *adapters.ProfileData
	err  error
}

func (f *fakeFetcher) FetchProfile(_ context.Context, _ string) (*adapters.ProfileData, error) {
	return f.data, f.err
}

func newTestService(t *testing.T, fetcher Fetcher, withStore bool) *Service {
	t.Helper()
	var repo *database.Repository
	if withStore {
		db, err := database.NewDB(t.TempDir())
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })
		repo = database.NewRepository(db)
	}
	logger := monitoring.NewLogger(slog.LevelError)
	return NewService(fetcher, insights.NewAggregator(insights.DefaultRegistry()), repo, logger, monitoring.NewMetrics())
}

func profileData() *adapters.ProfileData {
	commits := 20
	return &adapters.ProfileData{
		Username: "octocat",
		Repositories: []types.RepositorySnapshot{
			{
				Name:            "api-server",
				PrimaryLanguage: "Go",
				Languages:       map[string]int64{"Go": 80000},
				CreatedAt:       "2020-01-15T00:00:00Z",
				PushedAt:        "2024-05-01T00:00:00Z",
				Stars:           10,
				TotalCommits:    &commits,
				HasReadme:       true,
				ReadmeSize:      600,
			},
			{
				Name:            "web-app",
				PrimaryLanguage: "JavaScript",
				Languages:       map[string]int64{"JavaScript": 120000},
				CreatedAt:       "2021-06-01T00:00:00Z",
				Topics:          []string{"react"},
				Stars:           5,
			},
		},
		LanguageBytes: map[string]int64{"Go": 80000, "JavaScript": 120000},
	}
}

func TestScanDerivesAndPersists(t *testing.T) {
	service := newTestService(t, &fakeFetcher{data: profileData()}, true)

	result, err := service.Scan(context.Background(), "octocat")
	require.NoError(t, err)

	assert.Equal(t, "octocat", result.Username)
	assert.Equal(t, 2, result.RepoCount)
	assert.NotEmpty(t, result.ScanID)
	require.Len(t, result.Insights.PrimaryLanguages, 2)
	assert.Equal(t, "JavaScript", result.Insights.PrimaryLanguages[0].Language)
	assert.Equal(t, 2, result.Summary.ExperienceMetrics.TotalProjects)
	assert.Equal(t, 15, result.Summary.ExperienceMetrics.StarsEarned)
}

func TestScanRejectsEmptyUsername(t *testing.T) {
	service := newTestService(t, &fakeFetcher{data: profileData()}, false)

	_, err := service.Scan(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, apperrors.CategoryValidation, apperrors.ToAppError(err).Category)
}

func TestScanPropagatesFetchErrors(t *testing.T) {
	fetchErr := apperrors.NewNotFoundError("user")
	service := newTestService(t, &fakeFetcher{err: fetchErr}, false)

	_, err := service.Scan(context.Background(), "ghost")
	assert.Equal(t, fetchErr, err)
}

func TestScanWithoutStoreSkipsPersistence(t *testing.T) {
	service := newTestService(t, &fakeFetcher{data: profileData()}, false)

	result, err := service.Scan(context.Background(), "octocat")
	require.NoError(t, err)
	assert.Empty(t, result.ScanID)
}

func TestLatestRoundTripsStoredScan(t *testing.T) {
	service := newTestService(t, &fakeFetcher{data: profileData()}, true)

	scanned, err := service.Scan(context.Background(), "octocat")
	require.NoError(t, err)

	loaded, err := service.Latest("octocat")
	require.NoError(t, err)

	assert.Equal(t, scanned.ScanID, loaded.ScanID)
	assert.Equal(t, scanned.Insights.PrimaryLanguages, loaded.Insights.PrimaryLanguages)
	assert.Equal(t, scanned.Summary, loaded.Summary)
}

func TestLatestUnknownUserIsNotFound(t *testing.T) {
	service := newTestService(t, &fakeFetcher{data: profileData()}, true)

	_, err := service.Latest("ghost")
	require.Error(t, err)
	assert.Equal(t, apperrors.CategoryNotFound, apperrors.ToAppError(err).Category)
}

func TestHistoryListsNewestFirst(t *testing.T) {
	service := newTestService(t, &fakeFetcher{data: profileData()}, true)

	for i := 0; i < 3; i++ {
		_, err := service.Scan(context.Background(), "octocat")
		require.NoError(t, err)
	}

	scans, err := service.History(2)
	require.NoError(t, err)
	require.Len(t, scans, 2)
	assert.False(t, scans[0].ScannedAt.Before(scans[1].ScannedAt))
}
