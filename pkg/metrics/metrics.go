// Package metrics provides Prometheus instrumentation for Snowman. It tracks
// connection establishment by authentication method and the latency and
// outcome of every executed query.
//
// # Basic Usage
//
//	c := metrics.Default()
//	c.ObserveConnection("key_pair", nil)
//
//	timer := metrics.NewTimer()
//	rows, err := conn.Execute(ctx, query)
//	c.ObserveQuery(timer.Stop(), err)
//
// The collector registers on its own registry so the CLI can dump it to a
// textfile without picking up unrelated process metrics.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "snowman"

// Result label values
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Query stage label values
const (
	StageSession = "session"
	StageQuery   = "query"
)

// Collector holds the Snowman metric vectors and the registry they live in.
type Collector struct {
	registry    *prometheus.Registry
	connections *prometheus.CounterVec   // Establishment attempts by method and result
	queryTime   *prometheus.HistogramVec // Query latency by result
	queryErrors *prometheus.CounterVec   // Failed queries by stage
}

var (
	defaultCollector *Collector
	defaultOnce      sync.Once
)

// Default returns the process-wide collector.
func Default() *Collector {
	defaultOnce.Do(func() {
		defaultCollector = NewCollector()
	})
	return defaultCollector
}

// NewCollector creates a collector with a fresh registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		connections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "connections_total",
				Help:      "Connection establishment attempts by authentication method and result",
			},
			[]string{"method", "result"},
		),
		queryTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "query_duration_seconds",
				Help:      "Query execution latency including session creation",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 300},
			},
			[]string{"result"},
		),
		queryErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "query_errors_total",
				Help:      "Failed query executions by the stage that failed",
			},
			[]string{"stage"},
		),
	}
	c.registry.MustRegister(c.connections, c.queryTime, c.queryErrors)
	return c
}

// Registry returns the registry the collector's metrics are registered with.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveConnection records one establishment attempt. method is empty when
// establishment failed before a method was selected.
func (c *Collector) ObserveConnection(method string, err error) {
	if method == "" {
		method = "none"
	}
	c.connections.WithLabelValues(method, result(err)).Inc()
}

// ObserveQuery records one query execution.
func (c *Collector) ObserveQuery(d time.Duration, err error) {
	c.queryTime.WithLabelValues(result(err)).Observe(d.Seconds())
}

// ObserveQueryError records the stage at which a query execution failed.
func (c *Collector) ObserveQueryError(stage string) {
	c.queryErrors.WithLabelValues(stage).Inc()
}

// WriteTextfile writes the current metric values in the Prometheus text
// format, suitable for the node_exporter textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}

func result(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}

// Timer measures elapsed time for a single operation
type Timer struct {
	start time.Time
}

// NewTimer starts a timer
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Stop returns the time elapsed since the timer started
func (t *Timer) Stop() time.Duration {
	return time.Since(t.start)
}
