package monitoring

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics holds in-process application counters, exposed on /health.
type Metrics struct {
	RequestCount   int64
	ErrorCount     int64
	CacheHits      int64
	CacheMisses    int64
	GitHubAPICalls int64
	ScansCompleted int64
	StartTime      time.Time

	statusMu             sync.RWMutex
	requestCountByStatus map[int]int64
}

// NewMetrics creates a metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime:            time.Now(),
		requestCountByStatus: make(map[int]int64),
	}
}

// IncrementRequest increments the request count.
func (m *Metrics) IncrementRequest() {
	atomic.AddInt64(&m.RequestCount, 1)
}

// IncrementError increments the error count.
func (m *Metrics) IncrementError() {
	atomic.AddInt64(&m.ErrorCount, 1)
}

// IncrementCacheHit increments cache hit count.
func (m *Metrics) IncrementCacheHit() {
	atomic.AddInt64(&m.CacheHits, 1)
}

// IncrementCacheMiss increments cache miss count.
func (m *Metrics) IncrementCacheMiss() {
	atomic.AddInt64(&m.CacheMisses, 1)
}

// IncrementGitHubCalls increments GitHub API call count.
func (m *Metrics) IncrementGitHubCalls() {
	atomic.AddInt64(&m.GitHubAPICalls, 1)
}

// IncrementScans increments the completed scan count.
func (m *Metrics) IncrementScans() {
	atomic.AddInt64(&m.ScansCompleted, 1)
}

// RecordRequestByStatus records request count by HTTP status code.
func (m *Metrics) RecordRequestByStatus(statusCode int) {
	m.statusMu.Lock()
	defer m.statusMu.Unlock()
	m.requestCountByStatus[statusCode]++
}

// GetStats returns a snapshot of all counters.
func (m *Metrics) GetStats() map[string]interface{} {
	m.statusMu.RLock()
	byStatus := make(map[int]int64, len(m.requestCountByStatus))
	for code, count := range m.requestCountByStatus {
		byStatus[code] = count
	}
	m.statusMu.RUnlock()

	return map[string]interface{}{
		"request_count":     atomic.LoadInt64(&m.RequestCount),
		"error_count":       atomic.LoadInt64(&m.ErrorCount),
		"cache_hits":        atomic.LoadInt64(&m.CacheHits),
		"cache_misses":      atomic.LoadInt64(&m.CacheMisses),
		"github_api_calls":  atomic.LoadInt64(&m.GitHubAPICalls),
		"scans_completed":   atomic.LoadInt64(&m.ScansCompleted),
		"requests_by_status": byStatus,
		"uptime_seconds":    time.Since(m.StartTime).Seconds(),
	}
}
