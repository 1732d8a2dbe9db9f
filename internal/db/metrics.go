package db

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "ticketindexor"
	metricsSubsystem = "db"
)

var (
	maintenanceRuns = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "maintenance_runs_total",
		Help:      "Total number of maintenance passes",
	})

	maintenanceOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "maintenance_outcomes_total",
		Help:      "Maintenance passes by outcome",
	}, []string{"status"})

	maintenanceDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "maintenance_duration_seconds",
		Help:      "Duration of maintenance passes",
		Buckets:   prometheus.DefBuckets,
	})

	maintenanceLastRun = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "maintenance_last_run_timestamp",
		Help:      "Unix timestamp of the last maintenance pass",
	})

	maintenanceSpaceReclaimed = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "maintenance_space_reclaimed_bytes",
		Help:      "Bytes reclaimed by the last maintenance pass",
	})

	walCheckpoints = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "wal_checkpoint_total",
		Help:      "WAL checkpoints by mode",
	}, []string{"mode"})

	vacuumRuns = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "vacuum_total",
		Help:      "Total number of VACUUM runs",
	})

	dbSize = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "size_bytes",
		Help:      "Database size including WAL and SHM files",
	})
)

func MaintenanceRunsInc() { maintenanceRuns.Inc() }

func MaintenanceDurationLog(d time.Duration) { maintenanceDuration.Observe(d.Seconds()) }

func MaintenanceLastRunLog() { maintenanceLastRun.Set(float64(time.Now().UTC().Unix())) }

func MaintenanceErrorInc() { maintenanceOutcomes.WithLabelValues("error").Inc() }

func MaintenanceSuccessInc() { maintenanceOutcomes.WithLabelValues("success").Inc() }

func MaintenanceSpaceReclaimedLog(bytes uint64) { maintenanceSpaceReclaimed.Set(float64(bytes)) }

func WALCheckpointInc(mode string) { walCheckpoints.WithLabelValues(mode).Inc() }

func VacuumRunsInc() { vacuumRuns.Inc() }

func DBSizeLog(sizeBytes int64) { dbSize.Set(float64(sizeBytes)) }
