package network

import (
	"Draughts/game/core"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the session counters exported on /metrics. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	Moves    *prometheus.CounterVec
	Captures prometheus.Counter
	Clients  prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Moves: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "draughts",
			Name:      "moves_total",
			Help:      "Move requests by result (ok or rule violation kind).",
		}, []string{"result"}),
		Captures: f.NewCounter(prometheus.CounterOpts{
			Namespace: "draughts",
			Name:      "captures_total",
			Help:      "Pieces captured.",
		}),
		Clients: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "draughts",
			Name:      "websocket_clients",
			Help:      "Connected websocket clients.",
		}),
	}
}

func (m *Metrics) observeMove(captured int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		kind := core.KindOf(err)
		if kind == "" {
			kind = "error"
		}
		m.Moves.WithLabelValues(kind).Inc()
		return
	}
	m.Moves.WithLabelValues("ok").Inc()
	m.Captures.Add(float64(captured))
}

func (m *Metrics) clientDelta(d float64) {
	if m == nil {
		return
	}
	m.Clients.Add(d)
}
