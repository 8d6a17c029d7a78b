// Package metric provides Prometheus metrics for rudis.
//
// It exposes metrics in Prometheus format for monitoring connection
// counts, command throughput, protocol errors, and keyspace size:
//
//   - prometheus.go: registry, metric definitions, and the HTTP handler
//   - collector.go: a pull-based collector reporting live keyspace size
package metric

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "rudis"

// Registry holds every metric rudis exposes, plus the prometheus.Registry
// they're registered against.
type Registry struct {
	registry *prometheus.Registry

	ConnectionsActive prometheus.Gauge
	ConnectionsTotal  prometheus.Counter

	CommandsTotal       *prometheus.CounterVec
	CommandDuration     *prometheus.HistogramVec
	ProtocolErrorsTotal prometheus.Counter

	KeyspaceKeys prometheus.Gauge
}

// NewRegistry builds a fresh Registry with its own prometheus.Registry,
// including the standard Go runtime and process collectors.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		registry: reg,
		ConnectionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connections_active",
			Help:      "Number of currently open client connections.",
		}),
		ConnectionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_total",
			Help:      "Total number of client connections accepted.",
		}),
		CommandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Total number of commands executed, by command name.",
		}, []string{"command"}),
		CommandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "Command execution latency in seconds, by command name.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"command"}),
		ProtocolErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "protocol_errors_total",
			Help:      "Total number of protocol errors: malformed RESP input, or a request that is not a non-empty array of bulk strings.",
		}),
		KeyspaceKeys: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "keyspace_keys",
			Help:      "Number of keys last recorded via KeyspaceKeys.Set; nothing in rudis sets it. The per-scrape live count is rudis_keyspace_keys_live.",
		}),
	}

	reg.MustRegister(
		r.ConnectionsActive,
		r.ConnectionsTotal,
		r.CommandsTotal,
		r.CommandDuration,
		r.ProtocolErrorsTotal,
		r.KeyspaceKeys,
	)
	return r
}

// RegisterCollector attaches an additional prometheus.Collector (such as
// the store-backed Collector in collector.go) to this registry.
func (r *Registry) RegisterCollector(c prometheus.Collector) {
	r.registry.MustRegister(c)
}

// IncConnectionActive records a newly accepted connection.
func (r *Registry) IncConnectionActive() {
	r.ConnectionsActive.Inc()
	r.ConnectionsTotal.Inc()
}

// DecConnectionActive records a closed connection.
func (r *Registry) DecConnectionActive() {
	r.ConnectionsActive.Dec()
}

// RecordCommand increments the per-command counter.
func (r *Registry) RecordCommand(name string) {
	r.CommandsTotal.WithLabelValues(name).Inc()
}

// ObserveCommandDuration records how long a command took to execute.
func (r *Registry) ObserveCommandDuration(name string, seconds float64) {
	r.CommandDuration.WithLabelValues(name).Observe(seconds)
}

// IncProtocolError records a protocol error: malformed RESP input (the
// connection is then closed) or a request that is not a non-empty array
// of bulk strings (the connection stays open).
func (r *Registry) IncProtocolError() {
	r.ProtocolErrorsTotal.Inc()
}

// Handler returns the HTTP handler serving this registry's metrics in
// Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

var (
	globalOnce sync.Once
	global     *Registry
)

// Global returns the process-wide default Registry, created on first use.
func Global() *Registry {
	globalOnce.Do(func() {
		global = NewRegistry()
	})
	return global
}

// Handler returns the HTTP handler for the global Registry's /metrics
// endpoint.
func Handler() http.Handler {
	return Global().Handler()
}
