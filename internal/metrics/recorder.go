package metrics

import "time"

// ResultLabel enumerates operation outcomes for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultEmpty   ResultLabel = "empty"
	ResultError   ResultLabel = "error"
)

// Selection kinds.
const (
	KindContent = "content"
	KindTerms   = "terms"
)

// Recorder defines observability hooks for selection, graph assembly, cleanup runs and
// HTTP traffic. Implementations must be safe for concurrent use.
type Recorder interface {
	ObserveSelectDuration(kind string, d time.Duration)
	IncSelectResult(kind string, result ResultLabel)
	AddSelected(kind string, n int)
	AddFilterDropped(filter string, n int)
	ObserveGraphDuration(pageKind string, d time.Duration)
	ObserveGraphNodes(pageKind string, n int)
	IncCleanupRun(result ResultLabel)
	AddCleanupDeleted(n int64)
	ObserveHTTPRequest(route string, status int, d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveSelectDuration(string, time.Duration)   {}
func (NoopRecorder) IncSelectResult(string, ResultLabel)           {}
func (NoopRecorder) AddSelected(string, int)                       {}
func (NoopRecorder) AddFilterDropped(string, int)                  {}
func (NoopRecorder) ObserveGraphDuration(string, time.Duration)    {}
func (NoopRecorder) ObserveGraphNodes(string, int)                 {}
func (NoopRecorder) IncCleanupRun(ResultLabel)                     {}
func (NoopRecorder) AddCleanupDeleted(int64)                       {}
func (NoopRecorder) ObserveHTTPRequest(string, int, time.Duration) {}
