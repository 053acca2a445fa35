package insights

import (
	"sort"

	"github.com/devinsight/devinsight/internal/types"
)

// maxLanguages caps how many languages appear in a profile.
const maxLanguages = 8

// Experience tier thresholds. Evaluated top-down, first match wins.
const (
	expertProjects     = 5
	expertBytes        = 100_000
	proficientProjects = 3
	proficientBytes    = 50_000
	intermediateCount  = 2
	intermediateBytes  = 20_000
)

// LanguageAnalyzer ranks languages by byte volume and assigns experience
// tiers.
type LanguageAnalyzer struct{}

// NewLanguageAnalyzer creates a language analyzer.
func NewLanguageAnalyzer() *LanguageAnalyzer {
	return &LanguageAnalyzer{}
}

// Analyze produces stats for the top languages by cumulative byte count. An
// empty mapping yields an empty slice. Languages with equal byte counts keep
// map iteration order; callers must not rely on a stable tie order.
func (a *LanguageAnalyzer) Analyze(langBytes map[string]int64, repos []types.RepositorySnapshot) []LanguageStat {
	if len(langBytes) == 0 {
		return []LanguageStat{}
	}

	ranked := make([]LanguageStat, 0, len(langBytes))
	for lang, bytes := range langBytes {
		ranked = append(ranked, LanguageStat{Language: lang, TotalBytes: bytes})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalBytes > ranked[j].TotalBytes
	})
	if len(ranked) > maxLanguages {
		ranked = ranked[:maxLanguages]
	}

	for i := range ranked {
		stat := &ranked[i]
		var lastUsed string
		var lastParsed int64
		for _, repo := range repos {
			if !usesLanguage(repo, stat.Language) {
				continue
			}
			stat.ProjectCount++
			if t, ok := parseTime(repo.PushedAt); ok && t.Unix() >= lastParsed {
				if lastUsed == "" || t.Unix() > lastParsed {
					lastParsed = t.Unix()
					lastUsed = repo.PushedAt
				}
			}
		}
		stat.LastUsed = lastUsed
		stat.Tier = experienceTier(stat.ProjectCount, stat.TotalBytes)
	}

	return ranked
}

// usesLanguage reports whether a repository's primary language matches or its
// language mapping contains the language as a key.
func usesLanguage(repo types.RepositorySnapshot, lang string) bool {
	if repo.PrimaryLanguage == lang {
		return true
	}
	_, ok := repo.Languages[lang]
	return ok
}

// experienceTier maps (projects, bytes) to a tier label.
func experienceTier(projects int, bytes int64) string {
	switch {
	case projects >= expertProjects && bytes >= expertBytes:
		return TierExpert
	case projects >= proficientProjects && bytes >= proficientBytes:
		return TierProficient
	case projects >= intermediateCount || bytes >= intermediateBytes:
		return TierIntermediate
	default:
		return TierFamiliar
	}
}
