package insights

import "time"

// LanguageStat describes accumulated experience with one language.
type LanguageStat struct {
	Language     string `json:"language"`
	TotalBytes   int64  `json:"total_bytes"`
	ProjectCount int    `json:"project_count"`
	LastUsed     string `json:"last_used,omitempty"`
	Tier         string `json:"tier"`
}

// Experience tiers, ordered strongest first.
const (
	TierExpert       = "Expert"
	TierProficient   = "Proficient"
	TierIntermediate = "Intermediate"
	TierFamiliar     = "Familiar"
)

// TechMatch records how many repositories matched a technology and up to
// three example repository names.
type TechMatch struct {
	ProjectCount int      `json:"project_count"`
	Examples     []string `json:"examples,omitempty"`
}

// TechStack holds the detected technology categories. A category map is nil
// when nothing in it matched; empty categories are never emitted.
type TechStack struct {
	Frameworks     map[string]TechMatch `json:"frameworks,omitempty"`
	Databases      map[string]TechMatch `json:"databases,omitempty"`
	CloudPlatforms map[string]TechMatch `json:"cloud_platforms,omitempty"`
	Tools          map[string]TechMatch `json:"tools_and_practices,omitempty"`
	Patterns       []string             `json:"architectural_patterns,omitempty"`
}

// DocumentationScore measures readme coverage.
type DocumentationScore struct {
	Percentage float64 `json:"percentage"`
}

// TestingScore measures test-signal coverage.
type TestingScore struct {
	Percentage float64 `json:"percentage"`
	Count      int     `json:"count"`
}

// OrganizationScore measures structural hygiene.
type OrganizationScore struct {
	Percentage float64 `json:"percentage"`
	Count      int     `json:"count"`
}

// CollaborationScore measures multi-contributor activity.
type CollaborationScore struct {
	CollaborativeRepos    int     `json:"collaborative_repos"`
	ExternalContributors  int     `json:"external_contributors"`
	ReposWithPullRequests int     `json:"repos_with_pull_requests"`
	AvgContributors       float64 `json:"avg_contributors"`
}

// MaintenanceScore measures ongoing upkeep.
type MaintenanceScore struct {
	RecentPercentage  float64 `json:"recent_percentage"`
	ReposWithReleases int     `json:"repos_with_releases"`
}

// ProfessionalIndicators bundles the five indicator scores.
type ProfessionalIndicators struct {
	Documentation DocumentationScore `json:"documentation"`
	Testing       TestingScore       `json:"testing"`
	Organization  OrganizationScore  `json:"organization"`
	Collaboration CollaborationScore `json:"collaboration"`
	Maintenance   MaintenanceScore   `json:"maintenance"`
}

// CareerSpan is the date range between earliest and latest known activity.
// Absent entirely (nil in Insights) when no timestamp parsed.
type CareerSpan struct {
	Start       time.Time `json:"start"`
	Latest      time.Time `json:"latest"`
	YearsActive float64   `json:"years_active"`
	ActiveYears int       `json:"active_years"`
}

// CodingActivity aggregates commit behavior over active repositories.
type CodingActivity struct {
	ActiveProjects       int     `json:"active_projects"`
	AvgCommitsPerProject float64 `json:"avg_commits_per_project"`
	RegularProjects      int     `json:"regular_projects"`
	LongTermProjects     int     `json:"long_term_projects"`
	ConsistencyScore     float64 `json:"consistency_score"`
}

// TopicCount pairs a topic with its occurrence count.
type TopicCount struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

// RankedRepo is an entry in the most-starred list.
type RankedRepo struct {
	Name  string `json:"name"`
	Stars int    `json:"stars"`
}

// ContributedRepo is an entry in the contribution rankings. Role is
// "Contributor" for forks and "Owner" otherwise.
type ContributedRepo struct {
	Name          string `json:"name"`
	Contributions int    `json:"contributions"`
	Role          string `json:"role"`
}

// RecentRepo is an entry in the recently-pushed ranking.
type RecentRepo struct {
	Name     string `json:"name"`
	PushedAt string `json:"pushed_at,omitempty"`
}

// Insights is the final output of a scan. It is built exactly once and never
// mutated afterwards.
type Insights struct {
	Span                  *CareerSpan            `json:"career_span,omitempty"`
	Activity              CodingActivity         `json:"coding_activity"`
	PrimaryLanguages      []LanguageStat         `json:"primary_languages"`
	Stack                 TechStack              `json:"technology_stack"`
	Indicators            ProfessionalIndicators `json:"professional_indicators"`
	TopTopics             []TopicCount           `json:"top_topics"`
	TopStarred            []RankedRepo           `json:"top_starred"`
	TopContributed        []ContributedRepo      `json:"top_contributed"`
	RecentlyActive        []RecentRepo           `json:"recently_active"`
	ExternalContributions []ContributedRepo      `json:"external_contributions"`
	ProjectTypes          map[string]int         `json:"project_types,omitempty"`
	WellDocumented        int                    `json:"well_documented"`
	MultiContributor      int                    `json:"multi_contributor"`
}

// TechnicalSkills lists detected technology names per category.
type TechnicalSkills struct {
	ProgrammingLanguages []string `json:"programming_languages"`
	Frameworks           []string `json:"frameworks"`
	Databases            []string `json:"databases"`
	CloudPlatforms       []string `json:"cloud_platforms"`
	ToolsAndPractices    []string `json:"tools_and_practices"`
}

// ExperienceMetrics carries the headline numbers of a profile.
type ExperienceMetrics struct {
	YearsActive      float64 `json:"years_active"`
	TotalProjects    int     `json:"total_projects"`
	ConsistencyScore float64 `json:"consistency_score"`
	StarsEarned      int     `json:"stars_earned"`
}

// IndicatorSummary projects each professional indicator to a single number.
type IndicatorSummary struct {
	DocumentationQuality    float64 `json:"documentation_quality"`
	TestingPractices        float64 `json:"testing_practices"`
	CollaborationExperience float64 `json:"collaboration_experience"`
	MaintenanceCommitment   float64 `json:"maintenance_commitment"`
}

// ProfileSummary is the flattened view of Insights exposed to renderers. It
/// is a deterministic reshape: same values, same rounding.
type ProfileSummary struct {
	TechnicalSkills        TechnicalSkills   `json:"technical_skills"`
	ExperienceMetrics      ExperienceMetrics `json:"experience_metrics"`
	ProfessionalIndicators IndicatorSummary  `json:"professional_indicators"`
	ArchitecturalPatterns  []string          `json:"architectural_patterns"`
	TopRepositories        []string          `json:"top_repositories"`
}
