package metrics

import (
	"sync"
	"time"
)

// testRecorder counts calls; used to assert Recorder wiring from this package's tests.
type testRecorder struct {
	mu       sync.Mutex
	selected map[string]int
	dropped  map[string]int
	results  map[ResultLabel]int
}

var _ Recorder = (*testRecorder)(nil)

func newTestRecorder() *testRecorder {
	return &testRecorder{selected: map[string]int{}, dropped: map[string]int{}, results: map[ResultLabel]int{}}
}

func (t *testRecorder) ObserveSelectDuration(string, time.Duration) {}
func (t *testRecorder) IncSelectResult(_ string, result ResultLabel) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.results[result]++
}
func (t *testRecorder) AddSelected(kind string, n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selected[kind] += n
}
func (t *testRecorder) AddFilterDropped(filter string, n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dropped[filter] += n
}
func (t *testRecorder) ObserveGraphDuration(string, time.Duration)    {}
func (t *testRecorder) ObserveGraphNodes(string, int)                 {}
func (t *testRecorder) IncCleanupRun(ResultLabel)                     {}
func (t *testRecorder) AddCleanupDeleted(int64)                       {}
func (t *testRecorder) ObserveHTTPRequest(string, int, time.Duration) {}
