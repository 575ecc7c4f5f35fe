// Package metrics provides Prometheus metrics for the wall-of-shame daemon.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the daemon.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Sampler metrics
	pollCycles       prometheus.Counter
	pollErrors       prometheus.Counter
	processesScored  prometheus.Counter
	processesSkipped prometheus.Counter
	usersPerCycle    prometheus.Gauge

	// Queue metrics
	recordsEnqueued prometheus.Counter
	recordsDrained  prometheus.Counter
	queueDepth      prometheus.Gauge

	// Persister metrics
	batchesPersisted prometheus.Counter
	rowsPersisted    prometheus.Counter
	persistLatency   prometheus.Histogram
	persistErrors    prometheus.Counter

	// Reporter metrics
	reportCycles       prometheus.Counter
	reportErrors       prometheus.Counter
	leaderboardEntries prometheus.Gauge

	// Error tracking across components
	errorsByComponent *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "shamed",
		subsystem:        "daemon",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	m.pollCycles = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "poll_cycles_total",
		Help:      "Total number of process table poll cycles",
	})

	m.pollErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "poll_errors_total",
		Help:      "Total number of poll cycles that failed to snapshot the process table",
	})

	m.processesScored = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "processes_scored_total",
		Help:      "Total number of processes that contributed to a shame score",
	})

	m.processesSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "processes_skipped_total",
		Help:      "Total number of processes skipped during enumeration (vanished or unreadable)",
	})

	m.usersPerCycle = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "users_per_cycle",
		Help:      "Number of distinct usernames scored in the most recent poll cycle",
	})

	m.recordsEnqueued = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_enqueued_total",
		Help:      "Total number of score records enqueued by the sampler",
	})

	m.recordsDrained = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_drained_total",
		Help:      "Total number of score records drained by the persister",
	})

	m.queueDepth = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_depth",
		Help:      "Current number of records waiting in the queue (backlog indicator)",
	})

	m.batchesPersisted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batches_persisted_total",
		Help:      "Total number of non-empty batches committed to the database",
	})

	m.rowsPersisted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_persisted_total",
		Help:      "Total number of score rows inserted into the database",
	})

	m.persistLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "persist_latency_milliseconds",
		Help:      "Histogram of batch insert latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.persistErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "persist_errors_total",
		Help:      "Total number of failed batch inserts (batches are re-enqueued, not dropped)",
	})

	m.reportCycles = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "report_cycles_total",
		Help:      "Total number of leaderboard regenerations",
	})

	m.reportErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "report_errors_total",
		Help:      "Total number of report cycles that failed to read the store or write the file",
	})

	m.leaderboardEntries = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "leaderboard_entries",
		Help:      "Number of entries in the most recently written leaderboard",
	})

	m.errorsByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_total",
			Help:      "Total errors by component and kind",
		},
		[]string{"component", "kind"},
	)
}

// RecordPollCycle increments the poll cycle counter.
func RecordPollCycle() {
	globalManager.pollCycles.Inc()
}

// RecordPollError increments the poll error counter.
func RecordPollError() {
	globalManager.pollErrors.Inc()
}

// RecordProcessesScored adds a cycle's scored-process count to the counter.
func RecordProcessesScored(count int) {
	globalManager.processesScored.Add(float64(count))
}

// RecordProcessSkipped increments the skipped process counter.
func RecordProcessSkipped() {
	globalManager.processesSkipped.Inc()
}

// UpdateUsersPerCycle sets the distinct-username gauge for the latest cycle.
func UpdateUsersPerCycle(count int) {
	globalManager.usersPerCycle.Set(float64(count))
}

// RecordEnqueue increments the enqueued record counter.
func RecordEnqueue() {
	globalManager.recordsEnqueued.Inc()
}

// RecordDrained adds the size of a drained batch to the drained counter.
func RecordDrained(count int) {
	globalManager.recordsDrained.Add(float64(count))
}

// UpdateQueueDepth sets the queue depth gauge.
func UpdateQueueDepth(depth int) {
	globalManager.queueDepth.Set(float64(depth))
}

// RecordBatchPersisted increments the persisted batch counter and adds rows.
func RecordBatchPersisted(rows int) {
	globalManager.batchesPersisted.Inc()
	globalManager.rowsPersisted.Add(float64(rows))
}

// RecordPersistLatency records batch insert latency in milliseconds.
func RecordPersistLatency(latencyMs float64) {
	globalManager.persistLatency.Observe(latencyMs)
}

// RecordPersistError increments the persist error counter.
func RecordPersistError() {
	globalManager.persistErrors.Inc()
}

// RecordReportCycle increments the report cycle counter.
func RecordReportCycle() {
	globalManager.reportCycles.Inc()
}

// RecordReportError increments the report error counter.
func RecordReportError() {
	globalManager.reportErrors.Inc()
}

// UpdateLeaderboardEntries sets the leaderboard size gauge.
func UpdateLeaderboardEntries(count int) {
	globalManager.leaderboardEntries.Set(float64(count))
}

// RecordErrorByComponent increments the per-component error counter.
func RecordErrorByComponent(component, kind string) {
	globalManager.errorsByComponent.WithLabelValues(component, kind).Inc()
}

// GetRegistry returns the custom registry used by the global manager,
// suitable for serving via promhttp.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
