package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all application metrics.
type Registry struct {
	reg *prometheus.Registry

	// ConnectionsActive is the number of currently open client connections.
	ConnectionsActive prometheus.Gauge

	// ConnectionsTotal counts accepted client connections.
	ConnectionsTotal prometheus.Counter

	// CommandsTotal counts dispatched commands by name and status
	// (ok | error).
	CommandsTotal *prometheus.CounterVec

	// CommandDuration samples command execution latency by name.
	CommandDuration *prometheus.HistogramVec

	// Keys tracks the number of keys in the keyspace, sampled on scrape
	// via the keysFn passed to NewRegistry; nil when keysFn was nil.
	Keys prometheus.GaugeFunc

	// FlushesTotal counts output buffer flushes (one per pipeline batch).
	FlushesTotal prometheus.Counter
}

// NewRegistry creates and registers all application metrics. keysFn is
// sampled on every scrape to report the keyspace size; it may be nil.
func NewRegistry(keysFn func() float64) *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Registry{
		reg: reg,
		ConnectionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "rustbucket",
			Name:      "connections_active",
			Help:      "Number of currently open client connections.",
		}),
		ConnectionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rustbucket",
			Name:      "connections_total",
			Help:      "Total accepted client connections.",
		}),
		CommandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rustbucket",
			Name:      "commands_total",
			Help:      "Dispatched commands by name and status.",
		}, []string{"command", "status"}),
		CommandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "rustbucket",
			Name:      "command_duration_seconds",
			Help:      "Command execution latency by name.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"command"}),
		FlushesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rustbucket",
			Name:      "flushes_total",
			Help:      "Output buffer flushes; one flush covers a whole pipeline batch.",
		}),
	}

	if keysFn != nil {
		r.Keys = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "rustbucket",
			Name:      "keys",
			Help:      "Number of keys in the keyspace.",
		}, keysFn)
		reg.MustRegister(r.Keys)
	}

	reg.MustRegister(
		r.ConnectionsActive,
		r.ConnectionsTotal,
		r.CommandsTotal,
		r.CommandDuration,
		r.FlushesTotal,
	)
	return r
}

// Handler returns the HTTP handler for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
