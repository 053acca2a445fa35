package insights

import (
	"sort"
	"time"

	"github.com/devinsight/devinsight/internal/types"
)

const (
	maxTopTopics = 10
	maxTopRepos  = 5
)

// Roles attached to contribution rankings.
const (
	RoleOwner       = "Owner"
	RoleContributor = "Contributor"
)

// Aggregator orchestrates the full derivation pipeline. Every method is a
// pure function of its inputs: nothing is retained across calls and the
// input slice is never mutated, so concurrent scans are safe.
type Aggregator struct {
	languages  *LanguageAnalyzer
	stack      *StackDetector
	indicators *IndicatorScorer
	timeline   *TimelineCalculator
}

// NewAggregator creates an aggregator over the given technology registry.
func NewAggregator(registry Registry) *Aggregator {
	return &Aggregator{
		languages:  NewLanguageAnalyzer(),
		stack:      NewStackDetector(registry),
		indicators: NewIndicatorScorer(),
		timeline:   NewTimelineCalculator(),
	}
}

// Summarize folds the repository sequence, in arrival order, into a
// SkillsSummary.
func (a *Aggregator) Summarize(repos []types.RepositorySnapshot) types.SkillsSummary {
	summary := types.NewSkillsSummary()
	for i := range repos {
		summary = summary.Fold(repos[i])
	}
	return summary
}

// Build derives the full Insights value for one scan. now anchors the
// maintenance window.
func (a *Aggregator) Build(repos []types.RepositorySnapshot, langBytes map[string]int64, now time.Time) Insights {
	summary := a.Summarize(repos)

	return Insights{
		Span:                  a.timeline.Span(repos),
		Activity:              a.timeline.Activity(repos),
		PrimaryLanguages:      a.languages.Analyze(langBytes, repos),
		Stack:                 a.stack.Detect(repos),
		Indicators:            a.indicators.Score(repos, now),
		TopTopics:             topTopics(summary),
		TopStarred:            topStarred(repos),
		TopContributed:        topContributed(repos),
		RecentlyActive:        recentlyActive(repos),
		ExternalContributions: externalContributions(repos),
		ProjectTypes:          projectCensus(repos),
		WellDocumented:        countWellDocumented(repos),
		MultiContributor:      countMultiContributor(repos),
	}
}

// Flatten reshapes an Insights value and its summary into the renderer view.
// Values are carried over unchanged, so rounding is identical by
// construction.
func (a *Aggregator) Flatten(ins Insights, summary types.SkillsSummary) ProfileSummary {
	languages := make([]string, 0, len(ins.PrimaryLanguages))
	for _, stat := range ins.PrimaryLanguages {
		languages = append(languages, stat.Language)
	}

	yearsActive := 0.0
	if ins.Span != nil {
		yearsActive = ins.Span.YearsActive
	}

	topRepos := make([]string, 0, len(ins.TopStarred))
	for _, repo := range ins.TopStarred {
		topRepos = append(topRepos, repo.Name)
	}

	return ProfileSummary{
		TechnicalSkills: TechnicalSkills{
			ProgrammingLanguages: languages,
			Frameworks:           sortedKeys(ins.Stack.Frameworks),
			Databases:            sortedKeys(ins.Stack.Databases),
			CloudPlatforms:       sortedKeys(ins.Stack.CloudPlatforms),
			ToolsAndPractices:    sortedKeys(ins.Stack.Tools),
		},
		ExperienceMetrics: ExperienceMetrics{
			YearsActive:      yearsActive,
			TotalProjects:    summary.TotalProjects,
			ConsistencyScore: ins.Activity.ConsistencyScore,
			StarsEarned:      summary.TotalStars,
		},
		ProfessionalIndicators: IndicatorSummary{
			DocumentationQuality:    ins.Indicators.Documentation.Percentage,
			TestingPractices:        ins.Indicators.Testing.Percentage,
			CollaborationExperience: float64(ins.Indicators.Collaboration.CollaborativeRepos),
			MaintenanceCommitment:   ins.Indicators.Maintenance.RecentPercentage,
		},
		ArchitecturalPatterns: ins.Stack.Patterns,
		TopRepositories:       topRepos,
	}
}

// topTopics ranks topics by occurrence. The stable sort keeps first-seen
// order for equal counts.
func topTopics(summary types.SkillsSummary) []TopicCount {
	ranked := make([]TopicCount, 0, len(summary.TopicOrder))
	for _, topic := range summary.TopicOrder {
		ranked = append(ranked, TopicCount{Topic: topic, Count: summary.Topics[topic]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > maxTopTopics {
		ranked = ranked[:maxTopTopics]
	}
	return ranked
}

func topStarred(repos []types.RepositorySnapshot) []RankedRepo {
	ranked := make([]RankedRepo, 0, len(repos))
	for i := range repos {
		ranked = append(ranked, RankedRepo{Name: repos[i].Name, Stars: repos[i].Stars})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Stars > ranked[j].Stars
	})
	if len(ranked) > maxTopRepos {
		ranked = ranked[:maxTopRepos]
	}
	return ranked
}

func topContributed(repos []types.RepositorySnapshot) []ContributedRepo {
	ranked := make([]ContributedRepo, 0, len(repos))
	for i := range repos {
		ranked = append(ranked, contributedEntry(&repos[i]))
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Contributions > ranked[j].Contributions
	})
	if len(ranked) > maxTopRepos {
		ranked = ranked[:maxTopRepos]
	}
	return ranked
}

// recentlyActive ranks by most recent push. Missing or malformed timestamps
// sort as the earliest possible value.
func recentlyActive(repos []types.RepositorySnapshot) []RecentRepo {
	type entry struct {
		repo   RecentRepo
		pushed time.Time
	}
	entries := make([]entry, 0, len(repos))
	for i := range repos {
		pushed, _ := parseTime(repos[i].PushedAt)
		entries = append(entries, entry{
			repo:   RecentRepo{Name: repos[i].Name, PushedAt: repos[i].PushedAt},
			pushed: pushed,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].pushed.After(entries[j].pushed)
	})
	if len(entries) > maxTopRepos {
		entries = entries[:maxTopRepos]
	}
	ranked := make([]RecentRepo, 0, len(entries))
	for _, e := range entries {
		ranked = append(ranked, e.repo)
	}
	return ranked
}

// externalContributions lists forked repositories the user actually
// contributed to, in arrival order.
func externalContributions(repos []types.RepositorySnapshot) []ContributedRepo {
	var external []ContributedRepo
	for i := range repos {
		if repos[i].IsFork && repos[i].UserContributions > 0 {
			external = append(external, contributedEntry(&repos[i]))
		}
	}
	return external
}

func contributedEntry(repo *types.RepositorySnapshot) ContributedRepo {
	role := RoleOwner
	if repo.IsFork {
		role = RoleContributor
	}
	return ContributedRepo{Name: repo.Name, Contributions: repo.UserContributions, Role: role}
}

// projectCensus counts repositories per fixed topic bucket. All buckets are
// reported, zero counts included.
func projectCensus(repos []types.RepositorySnapshot) map[string]int {
	census := make(map[string]int, len(censusBuckets))
	for _, bucket := range censusBuckets {
		census[bucket.Name] = 0
		for i := range repos {
			for _, topic := range repos[i].Topics {
				if bucket.Topics[topic] {
					census[bucket.Name]++
					break
				}
			}
		}
	}
	return census
}

func countWellDocumented(repos []types.RepositorySnapshot) int {
	count := 0
	for i := range repos {
		if repos[i].HasReadme && hasLicense(&repos[i]) {
			count++
		}
	}
	return count
}

func countMultiContributor(repos []types.RepositorySnapshot) int {
	count := 0
	for i := range repos {
		if repos[i].ContributorCount != nil && *repos[i].ContributorCount > 1 {
			count++
		}
	}
	return count
}

func sortedKeys(m map[string]TechMatch) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
