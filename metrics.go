package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes relay gauges and counters on a private Prometheus
// registry, served when PINCHAT_METRICS_ADDR is configured.
type Metrics struct {
	reg *prometheus.Registry

	connectionsActive prometheus.Gauge
	messagesRelayed   prometheus.Counter
	deliveryFailures  prometheus.Counter
}

func NewMetrics(roomCount func() int) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "pinchat_rooms_active",
		Help: "Number of live rooms.",
	}, func() float64 { return float64(roomCount()) })

	return &Metrics{
		reg: reg,
		connectionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pinchat_connections_active",
			Help: "Number of open chat connections.",
		}),
		messagesRelayed: factory.NewCounter(prometheus.CounterOpts{
			Name: "pinchat_messages_relayed_total",
			Help: "Chat messages accepted and fanned out.",
		}),
		deliveryFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "pinchat_delivery_failures_total",
			Help: "Members dropped from a room after a failed delivery.",
		}),
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
