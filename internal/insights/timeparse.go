package insights

import (
	"math"
	"time"
)

// timeLayouts are tried in order when parsing collected timestamps. GitHub
// emits RFC3339; older collectors emitted date-only and month-only forms.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-01",
}

// parseTime parses a collected timestamp string. Empty or malformed values
// report ok=false and are discarded by callers, never propagated as errors.
func parseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// percent returns the one-decimal percentage of part over total, degrading to
// 0 when total is zero.
func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return round1(float64(part) / float64(total) * 100)
}
