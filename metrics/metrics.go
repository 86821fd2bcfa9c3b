package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TicksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "facepointer_ticks_total",
			Help: "Total number of engine ticks",
		},
		[]string{"outcome"},
	)

	TickDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "facepointer_tick_duration_seconds",
			Help:    "Time spent in one engine tick",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
		},
	)

	GesturesFired = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "facepointer_gestures_fired_total",
			Help: "Gesture events fired, by event type",
		},
		[]string{"event"},
	)

	ActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "facepointer_actions_total",
			Help: "Actions handed to an injector, by kind and result",
		},
		[]string{"kind", "result"},
	)

	ActionsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "facepointer_actions_dropped_total",
			Help: "Actions dropped because the injector queue was full",
		},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "facepointer_active_sessions",
			Help: "Number of open sessions",
		},
	)

	TeleportActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "facepointer_teleport_active_sessions",
			Help: "Sessions currently in teleport navigation",
		},
	)
)

// Result labels an action outcome.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
