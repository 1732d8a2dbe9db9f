package downloader

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "ticketindexor"
	metricsSubsystem = "ingestion"
)

var (
	logsReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "logs_received_total",
		Help:      "Logs pushed into the work queue by source",
	}, []string{"source"})

	logsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "logs_processed_total",
		Help:      "Dequeued logs by outcome",
	}, []string{"outcome"})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "queue_depth",
		Help:      "Logs waiting in the work queue",
	})

	checkpointBlock = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "checkpoint_block",
		Help:      "Highest block observed by the pipeline",
	})

	subscriptionReconnects = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "subscription_reconnects_total",
		Help:      "Times the live log subscription was lost",
	})

	rangeSplits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "range_splits_total",
		Help:      "Historical windows narrowed after a too-many-results error",
	})
)

// Log sources.
const (
	sourceHistorical = "historical"
	sourceLive       = "live"
	sourceQuarantine = "quarantine"
)

// Processing outcomes.
const (
	outcomeProjected     = "projected"
	outcomeQuarantined   = "quarantined"
	outcomeNotRecognized = "not_recognized"
	outcomeDrained       = "drained"
)

func LogsReceivedInc(source string) {
	logsReceived.WithLabelValues(source).Inc()
}

func LogsProcessedInc(outcome string) {
	logsProcessed.WithLabelValues(outcome).Inc()
}

func QueueDepthLog(depth int) {
	queueDepth.Set(float64(depth))
}

func CheckpointLog(block uint64) {
	checkpointBlock.Set(float64(block))
}

func SubscriptionReconnectInc() {
	subscriptionReconnects.Inc()
}

func RangeSplitInc() {
	rangeSplits.Inc()
}
