package insights

import (
	"testing"
	"time"

	"github.com/devinsight/devinsight/internal/types"
	"github.com/stretchr/testify/assert"
)

var scanDate = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func TestIndicatorScorer_EmptyList(t *testing.T) {
	scores := NewIndicatorScorer().Score(nil, scanDate)

	assert.Zero(t, scores.Documentation.Percentage)
	assert.Zero(t, scores.Testing.Percentage)
	assert.Zero(t, scores.Organization.Percentage)
	assert.Zero(t, scores.Maintenance.RecentPercentage)
	assert.Zero(t, scores.Collaboration.AvgContributors)
}

func TestIndicatorScorer_Documentation(t *testing.T) {
	repos := []types.RepositorySnapshot{
		{Name: "a", HasReadme: true, ReadmeSize: 600},
		{Name: "b", HasReadme: true, ReadmeSize: 500}, // not above the threshold
		{Name: "c"},
	}
	scores := NewIndicatorScorer().Score(repos, scanDate)

	assert.Equal(t, 33.3, scores.Documentation.Percentage)
}

func TestIndicatorScorer_Testing(t *testing.T) {
	tests := []struct {
		name     string
		repo     types.RepositorySnapshot
		detected bool
	}{
		{
			name:     "test extension key",
			repo:     types.RepositorySnapshot{Name: "a", FileExtensions: map[string]int{".test.js": 3}},
			detected: true,
		},
		{
			name:     "pytest config file",
			repo:     types.RepositorySnapshot{Name: "b", ImportantFiles: []string{"pytest.ini"}},
			detected: true,
		},
		{
			name:     "spec directory marker",
			repo:     types.RepositorySnapshot{Name: "c", ImportantFiles: []string{"spec_helper.rb"}},
			detected: true,
		},
		{
			name:     "no testing signal",
			repo:     types.RepositorySnapshot{Name: "d", FileExtensions: map[string]int{".go": 5}},
			detected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores := NewIndicatorScorer().Score([]types.RepositorySnapshot{tt.repo}, scanDate)
			if tt.detected {
				assert.Equal(t, 1, scores.Testing.Count)
				assert.Equal(t, 100.0, scores.Testing.Percentage)
			} else {
				assert.Zero(t, scores.Testing.Count)
			}
		})
	}
}

func TestIndicatorScorer_Organization(t *testing.T) {
	repos := []types.RepositorySnapshot{
		// license + readme: 2 of 3
		{Name: "a", HasReadme: true, ImportantFiles: []string{"LICENSE"}},
		// directories only: 1 of 3
		{Name: "b", DirectoryCount: 5},
		// all three
		{Name: "c", HasReadme: true, DirectoryCount: 3, ImportantFiles: []string{"LICENSE.md"}},
	}
	scores := NewIndicatorScorer().Score(repos, scanDate)

	assert.Equal(t, 2, scores.Organization.Count)
	assert.Equal(t, 66.7, scores.Organization.Percentage)
}

func TestIndicatorScorer_Collaboration(t *testing.T) {
	repos := []types.RepositorySnapshot{
		{Name: "a", ContributorCount: intPtr(4), PullRequests: 2},
		{Name: "b", ContributorCount: intPtr(1)},
		{Name: "c"}, // unknown contributors default to 1
	}
	scores := NewIndicatorScorer().Score(repos, scanDate)

	assert.Equal(t, 1, scores.Collaboration.CollaborativeRepos)
	assert.Equal(t, 3, scores.Collaboration.ExternalContributors)
	assert.Equal(t, 1, scores.Collaboration.ReposWithPullRequests)
	assert.Equal(t, 2.0, scores.Collaboration.AvgContributors)
}

func TestIndicatorScorer_Maintenance(t *testing.T) {
	repos := []types.RepositorySnapshot{
		{Name: "fresh", PushedAt: scanDate.AddDate(0, -1, 0).Format(time.RFC3339), Releases: 2},
		{Name: "stale", PushedAt: scanDate.AddDate(-2, 0, 0).Format(time.RFC3339)},
		{Name: "broken", PushedAt: "garbage"},
		{Name: "unknown"},
	}
	scores := NewIndicatorScorer().Score(repos, scanDate)

	assert.Equal(t, 25.0, scores.Maintenance.RecentPercentage)
	assert.Equal(t, 1, scores.Maintenance.ReposWithReleases)
}

func TestIndicatorScorer_PercentagesBounded(t *testing.T) {
	repos := []types.RepositorySnapshot{
		{Name: "a", HasReadme: true, ReadmeSize: 10_000, ImportantFiles: []string{"LICENSE", "pytest.ini"}, DirectoryCount: 20, PushedAt: scanDate.Format(time.RFC3339)},
	}
	scores := NewIndicatorScorer().Score(repos, scanDate)

	for _, pct := range []float64{
		scores.Documentation.Percentage,
		scores.Testing.Percentage,
		scores.Organization.Percentage,
		scores.Maintenance.RecentPercentage,
	} {
		assert.GreaterOrEqual(t, pct, 0.0)
		assert.LessOrEqual(t, pct, 100.0)
	}
}
