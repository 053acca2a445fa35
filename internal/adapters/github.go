package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/devinsight/devinsight/internal/errors"
	"github.com/devinsight/devinsight/internal/monitoring"
	"github.com/devinsight/devinsight/internal/resilience"
	"github.com/devinsight/devinsight/internal/types"
)

const defaultBaseURL = "https://api.github.com"

// perPage is the page size used for list endpoints.
const perPage = 100

// importantFilenames are root-level files worth recording on a snapshot.
var importantFilenames = map[string]bool{
	"license": true, "license.md": true, "license.txt": true,
	"makefile": true, "dockerfile": true, "docker-compose.yml": true,
	"readme.md": true, "contributing.md": true, ".travis.yml": true,
	"jenkinsfile": true, "procfile": true, "pytest.ini": true,
	"jest.config.js": true, ".golangci.yml": true,
}

// ProfileData is everything the engine needs for one scan.
type ProfileData struct {
	Username      string                     `json:"username"`
	Repositories  []types.RepositorySnapshot `json:"repositories"`
	LanguageBytes map[string]int64           `json:"language_bytes"`
}

// GitHub API response shapes, reduced to the fields we read.
type ghRepo struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Language        string   `json:"language"`
	StargazersCount int      `json:"stargazers_count"`
	ForksCount      int      `json:"forks_count"`
	Fork            bool     `json:"fork"`
	CreatedAt       string   `json:"created_at"`
	PushedAt        string   `json:"pushed_at"`
	UpdatedAt       string   `json:"updated_at"`
	Topics          []string `json:"topics"`
	OpenIssuesCount int      `json:"open_issues_count"`
}

type ghContributor struct {
	Login         string `json:"login"`
	Contributions int    `json:"contributions"`
}

type ghContent struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type ghReadme struct {
	Size int `json:"size"`
}

type ghRelease struct {
	TagName string `json:"tag_name"`
}

// GitHubAdapter builds repository snapshots from the GitHub REST API. Calls
// are rate limited client-side, retried with backoff, and guarded by a
// circuit breaker.
type GitHubAdapter struct {
	baseURL string
	token   string
	client  *http.Client
	limiter *rate.Limiter
	breaker *resilience.CircuitBreaker
	retry   resilience.RetryConfig
	logger  *monitoring.Logger
	metrics *monitoring.Metrics
}

// NewGitHubAdapter creates an adapter. token may be empty for anonymous
// access (GitHub then enforces a much lower quota). rps bounds our own call
// rate against the API.
func NewGitHubAdapter(token string, rps float64, logger *monitoring.Logger, metrics *monitoring.Metrics) *GitHubAdapter {
	if rps <= 0 {
		rps = 5
	}
	return &GitHubAdapter{
		baseURL: defaultBaseURL,
		token:   token,
		client:  &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(rps), int(rps)+1),
		breaker: resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{}),
		retry:   resilience.DefaultRetryConfig(),
		logger:  logger,
		metrics: metrics,
	}
}

// SetBaseURL points the adapter at a different API root. Used by tests.
func (g *GitHubAdapter) SetBaseURL(url string) {
	g.baseURL = strings.TrimSuffix(url, "/")
}

// FetchProfile collects every public repository of a user together with the
// cumulative language byte totals. Per-repository enrichment failures are
// tolerated: the snapshot keeps whatever was collected, missing fields stay
// absent.
func (g *GitHubAdapter) FetchProfile(ctx context.Context, username string) (*ProfileData, error) {
	repos, err := g.listRepos(ctx, username)
	if err != nil {
		return nil, err
	}

	data := &ProfileData{
		Username:      username,
		Repositories:  make([]types.RepositorySnapshot, 0, len(repos)),
		LanguageBytes: make(map[string]int64),
	}

	for _, repo := range repos {
		snapshot := types.RepositorySnapshot{
			Name:            repo.Name,
			Description:     repo.Description,
			PrimaryLanguage: repo.Language,
			Stars:           repo.StargazersCount,
			Forks:           repo.ForksCount,
			IsFork:          repo.Fork,
			CreatedAt:       repo.CreatedAt,
			PushedAt:        repo.PushedAt,
			UpdatedAt:       repo.UpdatedAt,
			Topics:          repo.Topics,
			Issues:          repo.OpenIssuesCount,
		}

		g.enrichLanguages(ctx, username, &snapshot, data.LanguageBytes)
		g.enrichContributors(ctx, username, &snapshot)
		g.enrichContents(ctx, username, &snapshot)
		g.enrichReadme(ctx, username, &snapshot)
		g.enrichReleases(ctx, username, &snapshot)

		data.Repositories = append(data.Repositories, snapshot)
	}

	return data, nil
}

// listRepos pages through the user's repositories.
func (g *GitHubAdapter) listRepos(ctx context.Context, username string) ([]ghRepo, error) {
	var all []ghRepo
	for page := 1; ; page++ {
		url := fmt.Sprintf("%s/users/%s/repos?per_page=%d&page=%d&sort=updated", g.baseURL, username, perPage, page)

		var batch []ghRepo
		if err := g.getJSON(ctx, url, &batch); err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < perPage {
			return all, nil
		}
	}
}

func (g *GitHubAdapter) enrichLanguages(ctx context.Context, owner string, snapshot *types.RepositorySnapshot, totals map[string]int64) {
	url := fmt.Sprintf("%s/repos/%s/%s/languages", g.baseURL, owner, snapshot.Name)

	var langs map[string]int64
	if err := g.getJSON(ctx, url, &langs); err != nil || len(langs) == 0 {
		return
	}
	snapshot.Languages = langs
	for lang, bytes := range langs {
		totals[lang] += bytes
	}
}

func (g *GitHubAdapter) enrichContributors(ctx context.Context, owner string, snapshot *types.RepositorySnapshot) {
	url := fmt.Sprintf("%s/repos/%s/%s/contributors?per_page=%d", g.baseURL, owner, snapshot.Name, perPage)

	var contributors []ghContributor
	if err := g.getJSON(ctx, url, &contributors); err != nil {
		return
	}

	count := len(contributors)
	snapshot.ContributorCount = &count

	commitSum := 0
	for _, c := range contributors {
		commitSum += c.Contributions
		if strings.EqualFold(c.Login, owner) {
			snapshot.UserContributions = c.Contributions
		} else {
			snapshot.ExternalContributors++
		}
	}
	snapshot.TotalCommits = &commitSum
}

func (g *GitHubAdapter) enrichContents(ctx context.Context, owner string, snapshot *types.RepositorySnapshot) {
	url := fmt.Sprintf("%s/repos/%s/%s/contents", g.baseURL, owner, snapshot.Name)

	var entries []ghContent
	if err := g.getJSON(ctx, url, &entries); err != nil {
		return
	}

	extensions := make(map[string]int)
	for _, entry := range entries {
		if entry.Type == "dir" {
			snapshot.DirectoryCount++
			continue
		}
		if importantFilenames[strings.ToLower(entry.Name)] {
			snapshot.ImportantFiles = append(snapshot.ImportantFiles, entry.Name)
		}
		if ext := path.Ext(entry.Name); ext != "" {
			extensions[ext]++
		}
	}
	if len(extensions) > 0 {
		snapshot.FileExtensions = extensions
	}
}

func (g *GitHubAdapter) enrichReadme(ctx context.Context, owner string, snapshot *types.RepositorySnapshot) {
	url := fmt.Sprintf("%s/repos/%s/%s/readme", g.baseURL, owner, snapshot.Name)

	var readme ghReadme
	if err := g.getJSON(ctx, url, &readme); err != nil {
		return
	}
	snapshot.HasReadme = true
	snapshot.ReadmeSize = readme.Size
}

func (g *GitHubAdapter) enrichReleases(ctx context.Context, owner string, snapshot *types.RepositorySnapshot) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases?per_page=%d", g.baseURL, owner, snapshot.Name, perPage)

	var releases []ghRelease
	if err := g.getJSON(ctx, url, &releases); err != nil {
		return
	}
	snapshot.Releases = len(releases)
}

// getJSON performs a rate-limited, retried GET and decodes the JSON body
// into out.
func (g *GitHubAdapter) getJSON(ctx context.Context, url string, out interface{}) error {
	return resilience.Retry(ctx, g.retry, func() error {
		return g.breaker.Call(func() error {
			return g.doRequest(ctx, url, out)
		})
	})
}

func (g *GitHubAdapter) doRequest(ctx context.Context, url string, out interface{}) error {
	if err := g.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.NewInternalError("building github request", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "devinsight/1.0")
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	start := time.Now()
	if g.metrics != nil {
		g.metrics.IncrementGitHubCalls()
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.logCall(url, 0, start, err)
		return errors.NewNetworkError("github request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		g.logCall(url, resp.StatusCode, start, nil)
		return errors.NewNotFoundError("github resource")
	case resp.StatusCode >= 400:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		apiErr := errors.NewExternalAPIError("github",
			fmt.Errorf("status %d: %s", resp.StatusCode, string(body)))
		g.logCall(url, resp.StatusCode, start, apiErr)
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.NewExternalAPIError("github", fmt.Errorf("decoding response: %w", err))
	}
	g.logCall(url, resp.StatusCode, start, nil)
	return nil
}

func (g *GitHubAdapter) logCall(url string, status int, start time.Time, err error) {
	if g.logger != nil {
		g.logger.FetchLogger(url, status, time.Since(start), err)
	}
}
