package content

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "ticketindexor",
		Subsystem: "content",
		Name:      "fetch_duration_seconds",
		Help:      "Duration of content store fetches",
		Buckets:   prometheus.DefBuckets,
	})

	fetchErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ticketindexor",
		Subsystem: "content",
		Name:      "fetch_errors_total",
		Help:      "Total number of failed content store fetches",
	})

	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ticketindexor",
		Subsystem: "content",
		Name:      "cache_lookups_total",
		Help:      "Content cache lookups by result",
	}, []string{"result"})
)

func FetchDurationLog(d time.Duration) { fetchDuration.Observe(d.Seconds()) }

func FetchErrorInc() { fetchErrors.Inc() }

func CacheHitInc() { cacheLookups.WithLabelValues("hit").Inc() }

func CacheMissInc() { cacheLookups.WithLabelValues("miss").Inc() }
