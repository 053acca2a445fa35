package insights

import (
	"regexp"
	"strings"

	"github.com/devinsight/devinsight/internal/types"
)

// maxExamples caps the example repository names recorded per technology.
const maxExamples = 3

var apiDescriptionPattern = regexp.MustCompile(`(?i)\b(api|rest|graphql)\b`)

// StackDetector classifies repositories into technology categories via
// keyword matching over a configurable registry, plus bespoke predicates for
// architectural patterns.
type StackDetector struct {
	registry Registry
}

// NewStackDetector creates a detector over the given registry.
func NewStackDetector(registry Registry) *StackDetector {
	return &StackDetector{registry: registry}
}

// Detect scans the repository list and returns the matched stack. Categories
// with no matches are left nil so they are pruned from serialized output.
func (d *StackDetector) Detect(repos []types.RepositorySnapshot) TechStack {
	return TechStack{
		Frameworks:     matchCategory(d.registry.Frameworks, repos),
		Databases:      matchCategory(d.registry.Databases, repos),
		CloudPlatforms: matchCategory(d.registry.CloudPlatforms, repos),
		Tools:          matchCategory(d.registry.Tools, repos),
		Patterns:       detectPatterns(repos),
	}
}

// matchCategory evaluates every technology in one category. Returns nil when
// nothing matched.
func matchCategory(techs []Technology, repos []types.RepositorySnapshot) map[string]TechMatch {
	var matches map[string]TechMatch
	for _, tech := range techs {
		match := TechMatch{}
		for i := range repos {
			if !repoMatches(&repos[i], tech.Keywords) {
				continue
			}
			match.ProjectCount++
			if len(match.Examples) < maxExamples {
				match.Examples = append(match.Examples, repos[i].Name)
			}
		}
		if match.ProjectCount > 0 {
			if matches == nil {
				matches = make(map[string]TechMatch)
			}
			matches[tech.Name] = match
		}
	}
	return matches
}

// repoMatches reports whether any keyword appears as a case-insensitive
// substring of the repository name, description, a topic, or an important
// filename.
func repoMatches(repo *types.RepositorySnapshot, keywords []string) bool {
	name := strings.ToLower(repo.Name)
	desc := strings.ToLower(repo.Description)
	for _, kw := range keywords {
		if strings.Contains(name, kw) || strings.Contains(desc, kw) {
			return true
		}
		for _, topic := range repo.Topics {
			if strings.Contains(strings.ToLower(topic), kw) {
				return true
			}
		}
		for _, file := range repo.ImportantFiles {
			if strings.Contains(strings.ToLower(file), kw) {
				return true
			}
		}
	}
	return false
}

// detectPatterns evaluates the architectural-pattern predicates. Only
// patterns whose predicate holds are returned.
func detectPatterns(repos []types.RepositorySnapshot) []string {
	var patterns []string

	monorepo := false
	serviceCount := 0
	apiCount := 0
	hasFrontend := false
	hasBackend := false
	mobile := false

	for i := range repos {
		repo := &repos[i]
		name := strings.ToLower(repo.Name)
		desc := strings.ToLower(repo.Description)

		if hasExtension(repo, "json") && repo.DirectoryCount > 10 {
			monorepo = true
		}
		if strings.Contains(name, "service") || strings.Contains(desc, "service") {
			serviceCount++
		}
		if strings.Contains(name, "api") || apiDescriptionPattern.MatchString(repo.Description) {
			apiCount++
		}
		if languageIn(repo, frontendLanguages) {
			hasFrontend = true
		}
		if languageIn(repo, backendLanguages) {
			hasBackend = true
		}
		for _, topic := range repo.Topics {
			if mobileTopics[strings.ToLower(topic)] {
				mobile = true
			}
		}
	}

	if monorepo {
		patterns = append(patterns, "Monorepo")
	}
	if serviceCount >= 2 {
		patterns = append(patterns, "Microservices")
	}
	if apiCount >= 2 {
		patterns = append(patterns, "API-First")
	}
	if hasFrontend && hasBackend {
		patterns = append(patterns, "Full-Stack")
	}
	if mobile {
		patterns = append(patterns, "Mobile Development")
	}
	return patterns
}

// hasExtension reports whether the extension map contains ext, with or
// without a leading dot. Collectors emit both forms.
func hasExtension(repo *types.RepositorySnapshot, ext string) bool {
	ext = strings.TrimPrefix(ext, ".")
	if _, ok := repo.FileExtensions[ext]; ok {
		return true
	}
	_, ok := repo.FileExtensions["."+ext]
	return ok
}

// languageIn reports whether the primary language or any key of the language
// mapping is in the given set.
func languageIn(repo *types.RepositorySnapshot, set map[string]bool) bool {
	if set[repo.PrimaryLanguage] {
		return true
	}
	for lang := range repo.Languages {
		if set[lang] {
			return true
		}
	}
	return false
}
