package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ticketindexor"

// Error severities used with ErrorsInc.
const (
	SeverityWarn  = "warn"
	SeverityError = "error"
)

var (
	// Projection metrics
	projectionTime = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "projection_duration_seconds",
			Help:      "Time taken to decode and project a single log",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"event"},
	)

	// System metrics
	Uptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "uptime_seconds",
			Help:      "Application uptime in seconds",
		},
	)

	Errors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Total number of errors by component and severity",
		},
		[]string{"component", "severity"},
	)

	ComponentHealth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "component_health",
			Help:      "Component health status (1=healthy, 0=unhealthy)",
		},
		[]string{"component"},
	)

	Goroutines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "goroutines",
			Help:      "Number of active goroutines",
		},
	)

	MemoryUsage = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "memory_usage_bytes",
			Help:      "Memory usage statistics",
		},
		[]string{"type"},
	)

	startTime = time.Now()
)

func ProjectionDuration(event string, duration time.Duration) {
	projectionTime.WithLabelValues(event).Observe(duration.Seconds())
}

func ErrorsInc(component, severity string) {
	Errors.WithLabelValues(component, severity).Inc()
}

func ComponentHealthSet(component string, healthy bool) {
	boolAsFloat := float64(1)
	if !healthy {
		boolAsFloat = 0
	}

	ComponentHealth.WithLabelValues(component).Set(boolAsFloat)
}

// UpdateSystemMetrics updates runtime system metrics.
func UpdateSystemMetrics() {
	Uptime.Set(time.Since(startTime).Seconds())
	Goroutines.Set(float64(runtime.NumGoroutine()))

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	MemoryUsage.WithLabelValues("alloc").Set(float64(m.Alloc))
	MemoryUsage.WithLabelValues("total_alloc").Set(float64(m.TotalAlloc))
	MemoryUsage.WithLabelValues("sys").Set(float64(m.Sys))
	MemoryUsage.WithLabelValues("heap_inuse").Set(float64(m.HeapInuse))
}
