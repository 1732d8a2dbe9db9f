package reaper

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reaperTicks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ticketindexor",
		Subsystem: "reaper",
		Name:      "ticks_total",
		Help:      "Completed reaper ticks",
	})

	reaperErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ticketindexor",
		Subsystem: "reaper",
		Name:      "errors_total",
		Help:      "Failed reaper ticks",
	})

	reaperDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ticketindexor",
		Subsystem: "reaper",
		Name:      "decisions_total",
		Help:      "Events selected by the reaper by action",
	}, []string{"action"})
)

func ReaperTickInc() {
	reaperTicks.Inc()
}

func ReaperErrorInc() {
	reaperErrors.Inc()
}

func ReaperDecisionsAdd(action string, n int) {
	reaperDecisions.WithLabelValues(action).Add(float64(n))
}
