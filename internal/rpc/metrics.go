package rpc

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rpcRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ticketindexor",
		Subsystem: "rpc",
		Name:      "requests_total",
		Help:      "Total number of RPC requests by method",
	}, []string{"method"})

	rpcErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ticketindexor",
		Subsystem: "rpc",
		Name:      "errors_total",
		Help:      "Total number of RPC errors by method and type",
	}, []string{"method", "error_type"})

	rpcRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ticketindexor",
		Subsystem: "rpc",
		Name:      "retries_total",
		Help:      "Total number of retried RPC attempts by operation",
	}, []string{"operation"})

	rpcDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ticketindexor",
		Subsystem: "rpc",
		Name:      "request_duration_seconds",
		Help:      "Duration of RPC requests including retries",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})
)

func RPCMethodInc(method string) {
	rpcRequests.WithLabelValues(method).Inc()
}

func RPCMethodDuration(method string, duration time.Duration) {
	rpcDuration.WithLabelValues(method).Observe(duration.Seconds())
}

func RPCMethodError(method, errorType string) {
	rpcErrors.WithLabelValues(method, errorType).Inc()
}

func RPCRetryInc(operation string) {
	rpcRetries.WithLabelValues(operation).Inc()
}
