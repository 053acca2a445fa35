package insights

import (
	"strings"
	"time"

	"github.com/devinsight/devinsight/internal/types"
)

// minReadmeBytes is the readme length below which documentation does not
// count as substantial.
const minReadmeBytes = 500

// maintenanceWindow is how recently a repository must have been pushed to
// count as actively maintained.
const maintenanceWindow = 365 * 24 * time.Hour

// testingIndicators are matched as substrings against file-extension keys and
// important filenames.
var testingIndicators = []string{
	"test", "spec", ".test.", "_test.", "jest", "pytest", "rspec", "mocha",
}

// IndicatorScorer computes the five professional-practice metrics.
type IndicatorScorer struct{}

// NewIndicatorScorer creates an indicator scorer.
func NewIndicatorScorer() *IndicatorScorer {
	return &IndicatorScorer{}
}

// Score evaluates all indicators over the repository list. now anchors the
// maintenance window, keeping results reproducible. An empty list yields
// zeroes throughout.
func (s *IndicatorScorer) Score(repos []types.RepositorySnapshot, now time.Time) ProfessionalIndicators {
	total := len(repos)

	documented := 0
	testing := 0
	organized := 0
	collaborative := 0
	externalContributors := 0
	withPRs := 0
	contributorSum := 0
	recent := 0
	withReleases := 0

	for i := range repos {
		repo := &repos[i]

		if repo.HasReadme && repo.ReadmeSize > minReadmeBytes {
			documented++
		}
		if hasTestingSignal(repo) {
			testing++
		}
		if organizationSignals(repo) >= 2 {
			organized++
		}

		contributors := repo.Contributors()
		contributorSum += contributors
		if contributors > 1 {
			collaborative++
			externalContributors += contributors - 1
		}
		if repo.PullRequests >= 1 {
			withPRs++
		}

		if t, ok := parseTime(repo.PushedAt); ok && now.Sub(t) <= maintenanceWindow {
			recent++
		}
		if repo.Releases >= 1 {
			withReleases++
		}
	}

	avgContributors := 0.0
	if total > 0 {
		avgContributors = round1(float64(contributorSum) / float64(total))
	}

	return ProfessionalIndicators{
		Documentation: DocumentationScore{Percentage: percent(documented, total)},
		Testing:       TestingScore{Percentage: percent(testing, total), Count: testing},
		Organization:  OrganizationScore{Percentage: percent(organized, total), Count: organized},
		Collaboration: CollaborationScore{
			CollaborativeRepos:    collaborative,
			ExternalContributors:  externalContributors,
			ReposWithPullRequests: withPRs,
			AvgContributors:       avgContributors,
		},
		Maintenance: MaintenanceScore{
			RecentPercentage:  percent(recent, total),
			ReposWithReleases: withReleases,
		},
	}
}

// hasTestingSignal reports whether any extension key or important filename
// contains a testing indicator.
func hasTestingSignal(repo *types.RepositorySnapshot) bool {
	for ext := range repo.FileExtensions {
		if containsAny(strings.ToLower(ext), testingIndicators) {
			return true
		}
	}
	for _, file := range repo.ImportantFiles {
		if containsAny(strings.ToLower(file), testingIndicators) {
			return true
		}
	}
	return false
}

// organizationSignals counts the boolean hygiene signals a repository shows:
// license present, at least 3 directories, readme present.
func organizationSignals(repo *types.RepositorySnapshot) int {
	signals := 0
	if hasLicense(repo) {
		signals++
	}
	if repo.DirectoryCount >= 3 {
		signals++
	}
	if repo.HasReadme {
		signals++
	}
	return signals
}

func hasLicense(repo *types.RepositorySnapshot) bool {
	for _, file := range repo.ImportantFiles {
		if strings.Contains(strings.ToLower(file), "license") {
			return true
		}
	}
	return false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
