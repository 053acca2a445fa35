package render

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/pkg/errors"

	"github.com/devinsight/devinsight/internal/insights"
)

// Profile bundles everything the markdown document needs.
type Profile struct {
	Username string
	Insights insights.Insights
	Summary  insights.ProfileSummary
}

const profileTemplate = `# Developer Profile: {{ .Username }}

{{ if .Insights.Span -}}
Active from {{ .Insights.Span.Start.Format "2006-01" }} to {{ .Insights.Span.Latest.Format "2006-01" }} ({{ .Insights.Span.YearsActive }} years, {{ .Insights.Span.ActiveYears }} distinct years of activity).
{{ end }}
## Languages

{{ range .Insights.PrimaryLanguages -}}
- **{{ .Language }}** — {{ .Tier }} ({{ .ProjectCount }} projects, {{ .TotalBytes }} bytes)
{{ end }}
{{- if .Summary.TechnicalSkills.Frameworks }}
## Frameworks

{{ join .Summary.TechnicalSkills.Frameworks ", " }}
{{ end }}
{{- if .Summary.TechnicalSkills.Databases }}
## Databases

{{ join .Summary.TechnicalSkills.Databases ", " }}
{{ end }}
{{- if .Summary.TechnicalSkills.CloudPlatforms }}
## Cloud & Infrastructure

{{ join .Summary.TechnicalSkills.CloudPlatforms ", " }}
{{ end }}
{{- if .Summary.ArchitecturalPatterns }}
## Architecture

{{ join .Summary.ArchitecturalPatterns ", " }}
{{ end }}
## Professional Indicators

- Documentation quality: {{ .Summary.ProfessionalIndicators.DocumentationQuality }}%
- Testing practices: {{ .Summary.ProfessionalIndicators.TestingPractices }}%
- Collaborative repositories: {{ .Summary.ProfessionalIndicators.CollaborationExperience }}
- Maintenance commitment: {{ .Summary.ProfessionalIndicators.MaintenanceCommitment }}%
- Consistency score: {{ .Summary.ExperienceMetrics.ConsistencyScore }}

## Highlights

{{ range .Insights.TopStarred -}}
- {{ .Name }} ({{ .Stars }} stars)
{{ end }}
{{- if .Insights.ExternalContributions }}
## Open Source Contributions

{{ range .Insights.ExternalContributions -}}
- {{ .Name }}: {{ .Contributions }} contributions
{{ end }}
{{- end }}
`

// Markdown renders the profile document.
func Markdown(profile Profile) (string, error) {
	tmpl, err := template.New("profile").
		Funcs(template.FuncMap{"join": strings.Join}).
		Parse(profileTemplate)
	if err != nil {
		return "", errors.Wrap(err, "parsing profile template")
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, profile); err != nil {
		return "", errors.Wrap(err, "rendering profile")
	}
	return buf.String(), nil
}
