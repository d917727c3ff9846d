// Package metrics exposes checkout and RPC counters to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ecocart"

var latencyBuckets = []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000}

// Metrics holds the collectors of one process on a dedicated registry.
type Metrics struct {
	registry         *prometheus.Registry
	checkoutAttempts *prometheus.CounterVec
	checkoutLatency  prometheus.Histogram
	commands         *prometheus.CounterVec
	commandLatency   *prometheus.HistogramVec
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		checkoutAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_attempts_total",
			Help:      "Payment attempts by outcome.",
		}, []string{"outcome"}),
		checkoutLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "checkout_duration_ms",
			Help:      "Payment attempt latency in milliseconds.",
			Buckets:   latencyBuckets,
		}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_commands_total",
			Help:      "Session commands by command and status code.",
		}, []string{"command", "code"}),
		commandLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_command_duration_ms",
			Help:      "Session command latency in milliseconds.",
			Buckets:   latencyBuckets,
		}, []string{"command"}),
	}
	m.registry.MustRegister(
		m.checkoutAttempts,
		m.checkoutLatency,
		m.commands,
		m.commandLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveCheckout records the outcome of a payment attempt.
func (m *Metrics) ObserveCheckout(outcome string, elapsed time.Duration) {
	m.checkoutAttempts.WithLabelValues(outcome).Inc()
	if elapsed > 0 {
		m.checkoutLatency.Observe(float64(elapsed.Milliseconds()))
	}
}

// ObserveCommand records a handled session command.
func (m *Metrics) ObserveCommand(command, code string, elapsed time.Duration) {
	m.commands.WithLabelValues(command, code).Inc()
	m.commandLatency.WithLabelValues(command).Observe(float64(elapsed.Milliseconds()))
}

// Registry returns the registry backing m.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
