package insights

import (
	"testing"
	"time"

	"github.com/devinsight/devinsight/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioRepos() []types.RepositorySnapshot {
	return []types.RepositorySnapshot{
		{
			Name:            "api-server",
			PrimaryLanguage: "Go",
			Languages:       map[string]int64{"Go": 80_000},
			Stars:           10,
			HasReadme:       true,
			ReadmeSize:      600,
			TotalCommits:    intPtr(20),
			ImportantFiles:  []string{"LICENSE"},
		},
		{
			Name:            "web-app",
			PrimaryLanguage: "JavaScript",
			Languages:       map[string]int64{"JavaScript": 120_000},
			Stars:           5,
			Topics:          []string{"react"},
		},
		{
			Name:              "old-fork",
			PrimaryLanguage:   "Python",
			IsFork:            true,
			UserContributions: 3,
		},
	}
}

func TestAggregator_Build_Scenario(t *testing.T) {
	agg := NewAggregator(DefaultRegistry())
	repos := scenarioRepos()
	langBytes := map[string]int64{"Go": 80_000, "JavaScript": 120_000}

	ins := agg.Build(repos, langBytes, scanDate)

	// React detected once via the topic.
	require.Contains(t, ins.Stack.Frameworks, "React")
	assert.Equal(t, 1, ins.Stack.Frameworks["React"].ProjectCount)

	// Only one api-named repository, below the two-repo threshold.
	assert.NotContains(t, ins.Stack.Patterns, "API-First")

	// JavaScript frontend plus Go backend.
	assert.Contains(t, ins.Stack.Patterns, "Full-Stack")

	// One of three repositories has a substantial readme.
	assert.Equal(t, 33.3, ins.Indicators.Documentation.Percentage)

	// Star ranking keeps arrival order for the tie at zero.
	require.Len(t, ins.TopStarred, 3)
	assert.Equal(t, "api-server", ins.TopStarred[0].Name)
	assert.Equal(t, "web-app", ins.TopStarred[1].Name)

	// The fork with contributions is the external-contribution list.
	require.Len(t, ins.ExternalContributions, 1)
	assert.Equal(t, "old-fork", ins.ExternalContributions[0].Name)
	assert.Equal(t, RoleContributor, ins.ExternalContributions[0].Role)

	assert.Equal(t, 1, ins.WellDocumented)
}

func TestAggregator_Build_EmptyInput(t *testing.T) {
	agg := NewAggregator(DefaultRegistry())

	ins := agg.Build(nil, nil, scanDate)

	assert.Nil(t, ins.Span)
	assert.Empty(t, ins.PrimaryLanguages)
	assert.Empty(t, ins.TopStarred)
	assert.Empty(t, ins.TopTopics)
	assert.Zero(t, ins.Indicators.Documentation.Percentage)
	assert.Zero(t, ins.Activity.ConsistencyScore)
}

func TestAggregator_Build_DoesNotMutateInput(t *testing.T) {
	agg := NewAggregator(DefaultRegistry())
	repos := []types.RepositorySnapshot{
		{Name: "zeta", Stars: 1, PushedAt: "2024-01-01T00:00:00Z"},
		{Name: "alpha", Stars: 9, PushedAt: "2020-01-01T00:00:00Z"},
	}

	agg.Build(repos, map[string]int64{"Go": 1}, scanDate)

	assert.Equal(t, "zeta", repos[0].Name)
	assert.Equal(t, "alpha", repos[1].Name)
}

func TestSummarize_Fold(t *testing.T) {
	agg := NewAggregator(DefaultRegistry())
	repos := []types.RepositorySnapshot{
		{Name: "a", Stars: 3, Forks: 1, UserContributions: 5, Topics: []string{"cli", "go"}, Languages: map[string]int64{"Go": 100}},
		{Name: "b", Stars: 2, Topics: []string{"go"}, Languages: map[string]int64{"Go": 50, "Shell": 10}},
	}

	summary := agg.Summarize(repos)

	assert.Equal(t, 5, summary.TotalStars)
	assert.Equal(t, 1, summary.TotalForks)
	assert.Equal(t, 5, summary.Contributions)
	assert.Equal(t, 2, summary.TotalProjects)
	assert.Equal(t, int64(150), summary.Languages["Go"])
	assert.Equal(t, 2, summary.Topics["go"])
	assert.Equal(t, []string{"cli", "go"}, summary.TopicOrder)
}

func TestTopTopics_TieKeepsInsertionOrder(t *testing.T) {
	summary := types.NewSkillsSummary()
	summary = summary.Fold(types.RepositorySnapshot{Name: "a", Topics: []string{"web", "cli", "go"}})
	summary = summary.Fold(types.RepositorySnapshot{Name: "b", Topics: []string{"go"}})

	topics := topTopics(summary)

	require.Len(t, topics, 3)
	assert.Equal(t, TopicCount{Topic: "go", Count: 2}, topics[0])
	// web and cli tie at 1 and keep first-seen order
	assert.Equal(t, "web", topics[1].Topic)
	assert.Equal(t, "cli", topics[2].Topic)
}

func TestRecentlyActive_MissingTimestampsSortLast(t *testing.T) {
	repos := []types.RepositorySnapshot{
		{Name: "never-pushed"},
		{Name: "fresh", PushedAt: "2024-05-01T00:00:00Z"},
		{Name: "older", PushedAt: "2021-01-01T00:00:00Z"},
	}

	ranked := recentlyActive(repos)

	require.Len(t, ranked, 3)
	assert.Equal(t, "fresh", ranked[0].Name)
	assert.Equal(t, "older", ranked[1].Name)
	assert.Equal(t, "never-pushed", ranked[2].Name)
}

func TestProjectCensus(t *testing.T) {
	repos := []types.RepositorySnapshot{
		{Name: "a", Topics: []string{"web", "library"}},
		{Name: "b", Topics: []string{"cli"}},
		{Name: "c", Topics: []string{"ios", "mobile"}}, // counted once per bucket
	}

	census := projectCensus(repos)

	assert.Equal(t, 1, census["web"])
	assert.Equal(t, 1, census["libraries"])
	assert.Equal(t, 1, census["tools"])
	assert.Equal(t, 0, census["data-science"])
	assert.Equal(t, 1, census["mobile"])
}

func TestFlatten_RoundTrip(t *testing.T) {
	agg := NewAggregator(DefaultRegistry())
	repos := scenarioRepos()
	langBytes := map[string]int64{"Go": 80_000, "JavaScript": 120_000}

	ins := agg.Build(repos, langBytes, scanDate)
	summary := agg.Summarize(repos)
	flat := agg.Flatten(ins, summary)

	// Language names survive the reshape in ranking order.
	wantLangs := make([]string, 0, len(ins.PrimaryLanguages))
	for _, stat := range ins.PrimaryLanguages {
		wantLangs = append(wantLangs, stat.Language)
	}
	assert.Equal(t, wantLangs, flat.TechnicalSkills.ProgrammingLanguages)

	// Projections carry identical rounding.
	assert.Equal(t, ins.Indicators.Documentation.Percentage, flat.ProfessionalIndicators.DocumentationQuality)
	assert.Equal(t, ins.Indicators.Maintenance.RecentPercentage, flat.ProfessionalIndicators.MaintenanceCommitment)
	assert.Equal(t, ins.Activity.ConsistencyScore, flat.ExperienceMetrics.ConsistencyScore)

	assert.Equal(t, 3, flat.ExperienceMetrics.TotalProjects)
	assert.Equal(t, 15, flat.ExperienceMetrics.StarsEarned)
	assert.Equal(t, []string{"api-server", "web-app", "old-fork"}, flat.TopRepositories)
	assert.Equal(t, ins.Stack.Patterns, flat.ArchitecturalPatterns)
}

func TestFlatten_NoSpan(t *testing.T) {
	agg := NewAggregator(DefaultRegistry())
	flat := agg.Flatten(agg.Build(nil, nil, time.Now()), agg.Summarize(nil))

	assert.Zero(t, flat.ExperienceMetrics.YearsActive)
	assert.Empty(t, flat.TopRepositories)
}
