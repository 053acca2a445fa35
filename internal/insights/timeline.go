package insights

import (
	"math"
	"time"

	"github.com/devinsight/devinsight/internal/types"
)

const (
	daysPerYear  = 365.25
	daysPerMonth = 30.44

	regularCommitThreshold = 10
	activeCommitThreshold  = 5
	longTermMonths         = 12
)

// TimelineCalculator derives the career span, the consistency score, and the
// coding-activity aggregates.
type TimelineCalculator struct{}

// NewTimelineCalculator creates a timeline calculator.
func NewTimelineCalculator() *TimelineCalculator {
	return &TimelineCalculator{}
}

// Span collects every parseable creation / first-commit / last-commit
// timestamp and derives the active date range. Malformed values are dropped
// silently; nil is returned when nothing parsed.
func (c *TimelineCalculator) Span(repos []types.RepositorySnapshot) *CareerSpan {
	var collected []time.Time
	for i := range repos {
		for _, raw := range []string{repos[i].CreatedAt, repos[i].FirstCommitAt, repos[i].LastCommitAt} {
			if t, ok := parseTime(raw); ok {
				collected = append(collected, t)
			}
		}
	}
	if len(collected) == 0 {
		return nil
	}

	start, latest := collected[0], collected[0]
	years := map[int]bool{}
	for _, t := range collected {
		if t.Before(start) {
			start = t
		}
		if t.After(latest) {
			latest = t
		}
		years[t.Year()] = true
	}

	return &CareerSpan{
		Start:       start,
		Latest:      latest,
		YearsActive: round1(latest.Sub(start).Hours() / 24 / daysPerYear),
		ActiveYears: len(years),
	}
}

// ConsistencyScore is the global ratio of earned to possible points across
// all repositories, as a percentage with one decimal. Points are summed
// first and divided once; this is not an average of per-repository
// percentages. Signals whose underlying field is unknown contribute neither
// earned nor possible points for that repository.
func (c *TimelineCalculator) ConsistencyScore(repos []types.RepositorySnapshot) float64 {
	earned, possible := 0, 0
	for i := range repos {
		e, p := consistencyPoints(&repos[i])
		earned += e
		possible += p
	}
	if possible == 0 {
		return 0
	}
	return round1(float64(earned) / float64(possible) * 100)
}

// consistencyPoints scores one repository: readme 2, any important file 1,
// commit activity up to 2, multiple contributors 1.
func consistencyPoints(repo *types.RepositorySnapshot) (earned, possible int) {
	possible += 2
	if repo.HasReadme {
		earned += 2
	}

	possible++
	if len(repo.ImportantFiles) > 0 {
		earned++
	}

	if repo.TotalCommits != nil {
		possible += 2
		switch {
		case *repo.TotalCommits >= activeCommitThreshold:
			earned += 2
		case *repo.TotalCommits >= 1:
			earned++
		}
	}

	if repo.ContributorCount != nil {
		possible++
		if *repo.ContributorCount > 1 {
			earned++
		}
	}
	return earned, possible
}

// Activity aggregates commit behavior over repositories with at least one
// known commit.
func (c *TimelineCalculator) Activity(repos []types.RepositorySnapshot) CodingActivity {
	active := 0
	commitSum := 0
	regular := 0
	longTerm := 0

	for i := range repos {
		repo := &repos[i]
		commits := repo.Commits()
		if commits == 0 {
			continue
		}
		active++
		commitSum += commits
		if commits >= regularCommitThreshold {
			regular++
		}
		if isLongTerm(repo) {
			longTerm++
		}
	}

	divisor := active
	if divisor < 1 {
		divisor = 1
	}

	return CodingActivity{
		ActiveProjects:       active,
		AvgCommitsPerProject: round1(float64(commitSum) / float64(divisor)),
		RegularProjects:      regular,
		LongTermProjects:     longTerm,
		ConsistencyScore:     c.ConsistencyScore(repos),
	}
}

// isLongTerm reports whether the span between first and last commit rounds to
// at least twelve months.
func isLongTerm(repo *types.RepositorySnapshot) bool {
	first, ok := parseTime(repo.FirstCommitAt)
	if !ok {
		return false
	}
	last, ok := parseTime(repo.LastCommitAt)
	if !ok {
		return false
	}
	months := math.Round(last.Sub(first).Hours() / 24 / daysPerMonth)
	return months >= longTermMonths
}
