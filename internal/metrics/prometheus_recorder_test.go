package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveSelectDuration(KindContent, 15*time.Millisecond)
	pr.IncSelectResult(KindContent, ResultSuccess)
	pr.AddSelected(KindContent, 3)
	pr.AddFilterDropped("attachment_parent", 2)
	pr.AddFilterDropped("commerce_page", 0)
	pr.ObserveGraphDuration("singular", time.Millisecond)
	pr.ObserveGraphNodes("singular", 4)
	pr.IncCleanupRun(ResultSuccess)
	pr.AddCleanupDeleted(5)
	pr.ObserveHTTPRequest("/api/ping", http.StatusOK, time.Millisecond)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	counters := map[string]float64{}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			if c := m.GetCounter(); c != nil {
				counters[mf.GetName()] += c.GetValue()
			}
		}
	}
	assert.InDelta(t, 3, counters["sitegraph_selected_entries_total"], 0)
	assert.InDelta(t, 2, counters["sitegraph_filter_dropped_total"], 0)
	assert.InDelta(t, 5, counters["sitegraph_scheduler_cleanup_deleted_total"], 0)
	assert.InDelta(t, 1, counters["sitegraph_select_results_total"], 0)
}

func TestHTTPHandlerServesRegistry(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncCleanupRun(ResultError)

	rec := httptest.NewRecorder()
	HTTPHandler(pr.Registry()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `sitegraph_scheduler_cleanup_runs_total{result="error"} 1`)
}

func TestRecorderImplementations(t *testing.T) {
	for _, r := range []Recorder{NoopRecorder{}, newTestRecorder(), NewPrometheusRecorder(nil)} {
		r.AddSelected(KindTerms, 1)
		r.IncSelectResult(KindTerms, ResultEmpty)
	}
	tr := newTestRecorder()
	tr.AddFilterDropped("product_visibility", 2)
	tr.AddFilterDropped("product_visibility", 1)
	assert.Equal(t, 3, tr.dropped["product_visibility"])
}
