// Package metrics provides Prometheus metrics for team balancing.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the balancer.
type Manager struct {
	namespace        string
	subsystem        string
	durationBuckets  []float64
	imbalanceBuckets []float64
	enabled          bool
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Run metrics
	runs        *prometheus.CounterVec
	runErrors   *prometheus.CounterVec
	earlyExits  *prometheus.CounterVec
	imbalance   *prometheus.HistogramVec
	generations *prometheus.HistogramVec
	duration    *prometheus.HistogramVec
	poolSize    prometheus.Gauge

	// Batch metrics
	batchPools    prometheus.Counter
	batchInflight prometheus.Gauge

	// Roster preparation metrics
	unmatchedNames prometheus.Counter
	guestsAdded    prometheus.Counter
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "teamgen",
		subsystem:        "balancer",
		durationBuckets:  []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250},
		imbalanceBuckets: []float64{0, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		enabled:          true,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.runs = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "runs_total",
		Help:        "Total number of successful balancing runs",
		ConstLabels: labels,
	}, []string{"strategy"})

	m.runErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_total",
		Help:        "Total number of rejected balancing runs by error kind",
		ConstLabels: labels,
	}, []string{"strategy", "kind"})

	m.earlyExits = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "early_exits_total",
		Help:        "Searches that stopped below the imbalance epsilon",
		ConstLabels: labels,
	}, []string{"strategy"})

	m.imbalance = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "imbalance",
		Help:        "Spread between the strongest and weakest team of each run",
		Buckets:     m.imbalanceBuckets,
		ConstLabels: labels,
	}, []string{"strategy"})

	m.generations = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "generations",
		Help:        "Generations ranked before a search finished",
		Buckets:     []float64{1, 5, 10, 25, 50, 100, 250},
		ConstLabels: labels,
	}, []string{"strategy"})

	m.duration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "duration_milliseconds",
		Help:        "Wall time of a balancing run in milliseconds",
		Buckets:     m.durationBuckets,
		ConstLabels: labels,
	}, []string{"strategy"})

	m.poolSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "pool_size",
		Help:        "Number of players in the most recent pool",
		ConstLabels: labels,
	})

	m.batchPools = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "batch_pools_total",
		Help:        "Pools submitted through batch balancing",
		ConstLabels: labels,
	})

	m.batchInflight = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "batch_inflight",
		Help:        "Batch pools currently being balanced",
		ConstLabels: labels,
	})

	m.unmatchedNames = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "roster",
		Name:        "unmatched_names_total",
		Help:        "Pasted names that matched no roster player",
		ConstLabels: labels,
	})

	m.guestsAdded = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "roster",
		Name:        "guests_total",
		Help:        "Guest players created for a pool",
		ConstLabels: labels,
	})
}

// RecordRun records a finished run.
func (m *Manager) RecordRun(strategy string, imbalance float64, generations int, durationMs float64, earlyExit bool) {
	if !m.enabled {
		return
	}
	m.runs.WithLabelValues(strategy).Inc()
	m.imbalance.WithLabelValues(strategy).Observe(imbalance)
	m.generations.WithLabelValues(strategy).Observe(float64(generations))
	m.duration.WithLabelValues(strategy).Observe(durationMs)
	if earlyExit {
		m.earlyExits.WithLabelValues(strategy).Inc()
	}
}

// RecordRunError records a rejected run.
func (m *Manager) RecordRunError(strategy, kind string) {
	if !m.enabled {
		return
	}
	m.runErrors.WithLabelValues(strategy, kind).Inc()
}

// UpdatePoolSize sets the size of the most recent pool.
func (m *Manager) UpdatePoolSize(size int) {
	if !m.enabled {
		return
	}
	m.poolSize.Set(float64(size))
}

// RecordBatchPool counts one pool entering batch balancing.
func (m *Manager) RecordBatchPool() {
	if !m.enabled {
		return
	}
	m.batchPools.Inc()
}

// AddBatchInflight moves the in-flight batch gauge by delta.
func (m *Manager) AddBatchInflight(delta int) {
	if !m.enabled {
		return
	}
	m.batchInflight.Add(float64(delta))
}

// RecordUnmatchedNames counts pasted names without a roster match.
func (m *Manager) RecordUnmatchedNames(n int) {
	if !m.enabled || n <= 0 {
		return
	}
	m.unmatchedNames.Add(float64(n))
}

// RecordGuests counts created guests.
func (m *Manager) RecordGuests(n int) {
	if !m.enabled || n <= 0 {
		return
	}
	m.guestsAdded.Add(float64(n))
}

// RecordRun records a finished run on the global manager.
func RecordRun(strategy string, imbalance float64, generations int, durationMs float64, earlyExit bool) {
	globalManager.RecordRun(strategy, imbalance, generations, durationMs, earlyExit)
}

// RecordRunError records a rejected run on the global manager.
func RecordRunError(strategy, kind string) {
	globalManager.RecordRunError(strategy, kind)
}

// UpdatePoolSize sets the pool size gauge on the global manager.
func UpdatePoolSize(size int) {
	globalManager.UpdatePoolSize(size)
}

// RecordBatchPool counts a batch pool on the global manager.
func RecordBatchPool() {
	globalManager.RecordBatchPool()
}

// AddBatchInflight moves the global in-flight batch gauge.
func AddBatchInflight(delta int) {
	globalManager.AddBatchInflight(delta)
}

// RecordUnmatchedNames counts unmatched names on the global manager.
func RecordUnmatchedNames(n int) {
	globalManager.RecordUnmatchedNames(n)
}

// RecordGuests counts guests on the global manager.
func RecordGuests(n int) {
	globalManager.RecordGuests(n)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile writes every metric gathered by g to path in the text
// exposition format, for node_exporter's textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if g == nil {
		g = customRegistry
	}
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	return nil
}
