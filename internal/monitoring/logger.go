package monitoring

import (
	"log/slog"
	"os"
	"time"
)

// Logger provides structured logging for scans and the HTTP surface.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a JSON slog logger at the given level.
func NewLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   "timestamp",
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	})
	return &Logger{Logger: slog.New(handler)}
}

// RequestLogger logs HTTP request details.
func (l *Logger) RequestLogger(method, path, ip string, statusCode int, duration time.Duration) {
	l.Info("http request",
		"method", method,
		"path", path,
		"ip", ip,
		"status_code", statusCode,
		"duration_ms", duration.Milliseconds(),
	)
}

// ScanLogger logs a completed profile scan.
func (l *Logger) ScanLogger(username string, repoCount, languageCount int, duration time.Duration, cacheHit bool) {
	l.Info("scan completed",
		"username", username,
		"repositories", repoCount,
		"languages", languageCount,
		"duration_ms", duration.Milliseconds(),
		"cache_hit", cacheHit,
	)
}

// FetchLogger logs a GitHub API call.
func (l *Logger) FetchLogger(endpoint string, statusCode int, duration time.Duration, err error) {
	if err != nil {
		l.Warn("github api call failed",
			"endpoint", endpoint,
			"status_code", statusCode,
			"duration_ms", duration.Milliseconds(),
			"error", err.Error(),
		)
		return
	}
	l.Debug("github api call",
		"endpoint", endpoint,
		"status_code", statusCode,
		"duration_ms", duration.Milliseconds(),
	)
}
