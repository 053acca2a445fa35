package insights

import (
	"testing"

	"github.com/devinsight/devinsight/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimelineCalculator_Span(t *testing.T) {
	calc := NewTimelineCalculator()

	t.Run("no parseable timestamps yields nil", func(t *testing.T) {
		repos := []types.RepositorySnapshot{
			{Name: "a", CreatedAt: "not-a-date"},
			{Name: "b"},
		}
		assert.Nil(t, calc.Span(repos))
	})

	t.Run("span across repositories", func(t *testing.T) {
		repos := []types.RepositorySnapshot{
			{Name: "a", CreatedAt: "2015-01"},
			{Name: "b", FirstCommitAt: "2020-06"},
			{Name: "c", LastCommitAt: "2023-03"},
		}
		span := calc.Span(repos)
		require.NotNil(t, span)
		assert.Equal(t, 2015, span.Start.Year())
		assert.Equal(t, 2023, span.Latest.Year())
		assert.Equal(t, 8.2, span.YearsActive)
		assert.Equal(t, 3, span.ActiveYears)
	})

	t.Run("malformed timestamps are discarded silently", func(t *testing.T) {
		repos := []types.RepositorySnapshot{
			{Name: "a", CreatedAt: "2018-05-01T00:00:00Z", FirstCommitAt: "???", LastCommitAt: "2019-05-01T00:00:00Z"},
		}
		span := calc.Span(repos)
		require.NotNil(t, span)
		assert.Equal(t, 1.0, span.YearsActive)
		assert.Equal(t, 2, span.ActiveYears)
	})
}

func TestTimelineCalculator_ConsistencyScore(t *testing.T) {
	calc := NewTimelineCalculator()

	t.Run("empty list scores zero", func(t *testing.T) {
		assert.Zero(t, calc.ConsistencyScore(nil))
	})

	t.Run("ratio of point sums with equal weighting", func(t *testing.T) {
		repos := []types.RepositorySnapshot{
			// 6 of 6: readme, important file, 20 commits, 3 contributors
			{Name: "a", HasReadme: true, ImportantFiles: []string{"LICENSE"}, TotalCommits: intPtr(20), ContributorCount: intPtr(3)},
			// 0 of 6
			{Name: "b", TotalCommits: intPtr(0), ContributorCount: intPtr(1)},
		}
		assert.Equal(t, 50.0, calc.ConsistencyScore(repos))
	})

	t.Run("sum ratio diverges from average of per-repo ratios", func(t *testing.T) {
		repos := []types.RepositorySnapshot{
			// 6 of 6
			{Name: "a", HasReadme: true, ImportantFiles: []string{"LICENSE"}, TotalCommits: intPtr(20), ContributorCount: intPtr(3)},
			// 1 of 3: only the important-file point; commit and contributor
			// fields unknown, so their possible points drop out
			{Name: "b", ImportantFiles: []string{"Makefile"}},
		}
		// sum ratio: (6+1)/(6+3) = 77.8; average of ratios would be 66.7
		assert.Equal(t, 77.8, calc.ConsistencyScore(repos))
	})

	t.Run("partial commit credit", func(t *testing.T) {
		repos := []types.RepositorySnapshot{
			// commits in [1,5) earn 1 of 2; everything else absent or false
			{Name: "a", TotalCommits: intPtr(3)},
		}
		// 1 of 5 possible (2 readme + 1 files + 2 commits)
		assert.Equal(t, 20.0, calc.ConsistencyScore(repos))
	})
}

func TestTimelineCalculator_Activity(t *testing.T) {
	calc := NewTimelineCalculator()

	t.Run("empty list", func(t *testing.T) {
		activity := calc.Activity(nil)
		assert.Zero(t, activity.ActiveProjects)
		assert.Zero(t, activity.AvgCommitsPerProject)
	})

	t.Run("aggregates over active repositories", func(t *testing.T) {
		repos := []types.RepositorySnapshot{
			{Name: "a", TotalCommits: intPtr(30), FirstCommitAt: "2020-01-01T00:00:00Z", LastCommitAt: "2022-01-01T00:00:00Z"},
			{Name: "b", TotalCommits: intPtr(4), FirstCommitAt: "2023-01-01T00:00:00Z", LastCommitAt: "2023-03-01T00:00:00Z"},
			{Name: "c", TotalCommits: intPtr(0)},
			{Name: "d"},
		}
		activity := calc.Activity(repos)

		assert.Equal(t, 2, activity.ActiveProjects)
		assert.Equal(t, 17.0, activity.AvgCommitsPerProject)
		assert.Equal(t, 1, activity.RegularProjects)
		assert.Equal(t, 1, activity.LongTermProjects)
	})

	t.Run("long-term needs parseable commit range", func(t *testing.T) {
		repos := []types.RepositorySnapshot{
			{Name: "a", TotalCommits: intPtr(50), FirstCommitAt: "bad", LastCommitAt: "2023-01-01T00:00:00Z"},
		}
		activity := calc.Activity(repos)
		assert.Zero(t, activity.LongTermProjects)
	})
}
