package metrics

import (
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "sitegraph"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg            *prom.Registry
	selectDuration *prom.HistogramVec
	selectResults  *prom.CounterVec
	selected       *prom.CounterVec
	filterDropped  *prom.CounterVec
	graphDuration  *prom.HistogramVec
	graphNodes     *prom.HistogramVec
	cleanupRuns    *prom.CounterVec
	cleanupDeleted prom.Counter
	httpDuration   *prom.HistogramVec
}

// NewPrometheusRecorder constructs and registers the metrics on reg, or on a fresh
// registry when reg is nil.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		selectDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "select_duration_seconds",
			Help:      "Duration of sitemap selection passes",
			Buckets:   prom.DefBuckets,
		}, []string{"kind"}),
		selectResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "select_results_total",
			Help:      "Selection passes by outcome",
		}, []string{"kind", "result"}),
		selected: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "selected_entries_total",
			Help:      "Entries returned by selection passes",
		}, []string{"kind"}),
		filterDropped: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "filter_dropped_total",
			Help:      "Entries dropped by eligibility filters",
		}, []string{"filter"}),
		graphDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "graph_build_duration_seconds",
			Help:      "Duration of structured-data graph assembly",
			Buckets:   prom.DefBuckets,
		}, []string{"page_kind"}),
		graphNodes: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "graph_nodes",
			Help:      "Nodes per assembled graph",
			Buckets:   []float64{1, 2, 3, 4, 5, 6, 8, 10},
		}, []string{"page_kind"}),
		cleanupRuns: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "scheduler_cleanup_runs_total",
			Help:      "Scheduler bookkeeping cleanup runs by outcome",
		}, []string{"result"}),
		cleanupDeleted: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "scheduler_cleanup_deleted_total",
			Help:      "Scheduler actions removed by cleanup",
		}),
		httpDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "API request duration by route and status",
			Buckets:   prom.DefBuckets,
		}, []string{"route", "status"}),
	}
	reg.MustRegister(pr.selectDuration, pr.selectResults, pr.selected, pr.filterDropped,
		pr.graphDuration, pr.graphNodes, pr.cleanupRuns, pr.cleanupDeleted, pr.httpDuration)
	return pr
}

// Registry returns the registry the metrics are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

func (p *PrometheusRecorder) ObserveSelectDuration(kind string, d time.Duration) {
	p.selectDuration.WithLabelValues(kind).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncSelectResult(kind string, result ResultLabel) {
	p.selectResults.WithLabelValues(kind, string(result)).Inc()
}

func (p *PrometheusRecorder) AddSelected(kind string, n int) {
	p.selected.WithLabelValues(kind).Add(float64(n))
}

func (p *PrometheusRecorder) AddFilterDropped(filter string, n int) {
	if n <= 0 {
		return
	}
	p.filterDropped.WithLabelValues(filter).Add(float64(n))
}

func (p *PrometheusRecorder) ObserveGraphDuration(pageKind string, d time.Duration) {
	p.graphDuration.WithLabelValues(pageKind).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveGraphNodes(pageKind string, n int) {
	p.graphNodes.WithLabelValues(pageKind).Observe(float64(n))
}

func (p *PrometheusRecorder) IncCleanupRun(result ResultLabel) {
	p.cleanupRuns.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) AddCleanupDeleted(n int64) {
	if n <= 0 {
		return
	}
	p.cleanupDeleted.Add(float64(n))
}

func (p *PrometheusRecorder) ObserveHTTPRequest(route string, status int, d time.Duration) {
	p.httpDuration.WithLabelValues(route, strconv.Itoa(status)).Observe(d.Seconds())
}
