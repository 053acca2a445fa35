package types

// RepositorySnapshot represents one repository's collected metadata, as
// assembled by the fetch layer. Every field except Name is optional: numeric
// pointers distinguish "unknown" from zero, timestamp fields carry the raw
// API string and are parsed tolerantly where consumed.
type RepositorySnapshot struct {
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	PrimaryLanguage string           `json:"primary_language,omitempty"`
	Languages       map[string]int64 `json:"languages,omitempty"`

	CreatedAt     string `json:"created_at,omitempty"`
	PushedAt      string `json:"pushed_at,omitempty"`
	UpdatedAt     string `json:"updated_at,omitempty"`
	FirstCommitAt string `json:"first_commit_at,omitempty"`
	LastCommitAt  string `json:"last_commit_at,omitempty"`

	TotalCommits *int `json:"total_commits,omitempty"`
	Releases     int  `json:"releases,omitempty"`

	Stars             int  `json:"stars"`
	Forks             int  `json:"forks"`
	ContributorCount  *int `json:"contributor_count,omitempty"`
	IsFork            bool `json:"is_fork"`
	UserContributions int  `json:"user_contributions,omitempty"`

	DirectoryCount int            `json:"directory_count,omitempty"`
	FileExtensions map[string]int `json:"file_extensions,omitempty"`
	ImportantFiles []string       `json:"important_files,omitempty"`
	Topics         []string       `json:"topics,omitempty"`

	HasReadme  bool `json:"has_readme"`
	ReadmeSize int  `json:"readme_size,omitempty"`

	PullRequests         int `json:"pull_requests,omitempty"`
	MergedPullRequests   int `json:"merged_pull_requests,omitempty"`
	Issues               int `json:"issues,omitempty"`
	ClosedIssues         int `json:"closed_issues,omitempty"`
	ExternalContributors int `json:"external_contributors,omitempty"`
}

// Contributors returns the contributor count, defaulting to 1 when the field
// was not collected. Use the raw pointer where absence must stay visible.
func (r *RepositorySnapshot) Contributors() int {
	if r.ContributorCount == nil {
		return 1
	}
	return *r.ContributorCount
}

// Commits returns the commit count, defaulting to 0 when unknown.
func (r *RepositorySnapshot) Commits() int {
	if r.TotalCommits == nil {
		return 0
	}
	return *r.TotalCommits
}

// SkillsSummary is the accumulator folded over the repository sequence during
// a scan. TopicOrder preserves first-seen order so that count ties rank by
// insertion.
type SkillsSummary struct {
	Languages     map[string]int64 `json:"languages"`
	Topics        map[string]int   `json:"topics"`
	TopicOrder    []string         `json:"-"`
	TotalStars    int              `json:"total_stars"`
	TotalForks    int              `json:"total_forks"`
	Contributions int              `json:"contributions"`
	TotalProjects int              `json:"total_projects"`
}

// NewSkillsSummary returns an empty accumulator.
func NewSkillsSummary() SkillsSummary {
	return SkillsSummary{
		Languages: make(map[string]int64),
		Topics:    make(map[string]int),
	}
}

// Fold returns a new summary with one repository folded in. The receiver is
// not mutated; maps are copied so earlier values stay valid.
func (s SkillsSummary) Fold(repo RepositorySnapshot) SkillsSummary {
	next := SkillsSummary{
		Languages:     make(map[string]int64, len(s.Languages)+len(repo.Languages)),
		Topics:        make(map[string]int, len(s.Topics)),
		TopicOrder:    append([]string(nil), s.TopicOrder...),
		TotalStars:    s.TotalStars + repo.Stars,
		TotalForks:    s.TotalForks + repo.Forks,
		Contributions: s.Contributions + repo.UserContributions,
		TotalProjects: s.TotalProjects + 1,
	}
	for lang, bytes := range s.Languages {
		next.Languages[lang] = bytes
	}
	for lang, bytes := range repo.Languages {
		next.Languages[lang] += bytes
	}
	for topic, count := range s.Topics {
		next.Topics[topic] = count
	}
	for _, topic := range repo.Topics {
		if _, seen := next.Topics[topic]; !seen {
			next.TopicOrder = append(next.TopicOrder, topic)
		}
		next.Topics[topic]++
	}
	return next
}
