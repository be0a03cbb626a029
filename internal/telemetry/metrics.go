// Package telemetry exposes Prometheus metrics for the command server.
// It is entirely optional: the data engine knows nothing about it, and the
// endpoint is only mounted when metrics are enabled in the configuration.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Registry = prometheus.NewRegistry()

	CommandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "medusa",
			Name:      "commands_total",
			Help:      "Total number of commands processed, by verb and outcome.",
		},
		[]string{"cmd", "status"},
	)

	CommandDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "medusa",
			Name:      "command_duration_seconds",
			Help:      "Latency of command execution.",
			Buckets:   prometheus.ExponentialBuckets(0.000001, 4, 12),
		},
		[]string{"cmd"},
	)

	ConnectionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "medusa",
			Name:      "connections_active",
			Help:      "Current number of connected clients.",
		},
	)

	ConnectionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "medusa",
			Name:      "connections_total",
			Help:      "Total number of accepted client connections.",
		},
	)

	startTime = time.Now()
	uptime    = prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: "medusa",
			Name:      "uptime_seconds",
			Help:      "Process uptime in seconds.",
		},
		func() float64 { return time.Since(startTime).Seconds() },
	)
)

func init() {
	Registry.MustRegister(CommandsTotal, CommandDuration, ConnectionsActive, ConnectionsTotal, uptime)
}

// RegisterKeyGauge exports the live key count from the store without the
// telemetry package importing it.
func RegisterKeyGauge(count func() float64) {
	Registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: "medusa",
			Name:      "keys",
			Help:      "Number of entries currently held in the store, expired included.",
		},
		count,
	))
}

// MetricsHandler exposes /metrics. Mount it with mux.Handle("/metrics", telemetry.MetricsHandler()).
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
