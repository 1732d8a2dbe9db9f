package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goran-ethernal/TicketIndexor/internal/common"
	"github.com/goran-ethernal/TicketIndexor/internal/logger"
	"github.com/goran-ethernal/TicketIndexor/pkg/config"
)

// Maintenance serialises WAL checkpoints and VACUUM against regular writes.
type Maintenance interface {
	// Start begins background maintenance if enabled.
	Start(ctx context.Context) error
	// Stop stops background maintenance and waits for completion.
	Stop() error
	// AcquireOperationLock acquires a shared lock for a database operation.
	// The returned function releases it.
	AcquireOperationLock() func()
	// GetMetrics returns current maintenance metrics.
	GetMetrics() MaintenanceMetrics
	// RunMaintenance performs one maintenance pass.
	RunMaintenance(ctx context.Context) error
}

// NoOpMaintenance is used when maintenance is not configured.
type NoOpMaintenance struct{}

func (m *NoOpMaintenance) Start(context.Context) error          { return nil }
func (m *NoOpMaintenance) Stop() error                          { return nil }
func (m *NoOpMaintenance) RunMaintenance(context.Context) error { return nil }
func (m *NoOpMaintenance) AcquireOperationLock() func()         { return func() {} }
func (m *NoOpMaintenance) GetMetrics() MaintenanceMetrics       { return MaintenanceMetrics{} }

// MaintenanceMetrics provides visibility into maintenance operations.
type MaintenanceMetrics struct {
	LastMaintenanceTime  time.Time
	MaintenanceCount     uint64
	LastMaintenanceError error
}

// MaintenanceCoordinator owns an RWMutex where readers are checkpoint, quarantine and
// projector writes and the writer is a maintenance pass.
type MaintenanceCoordinator struct {
	db     *sql.DB
	config config.MaintenanceConfig
	dbPath string
	log    *logger.Logger

	opLock sync.RWMutex

	cancel context.CancelFunc
	wg     sync.WaitGroup

	metricsLock sync.Mutex
	metrics     MaintenanceMetrics
}

// NewMaintenanceCoordinator returns a coordinator, or a no-op when cfg is nil.
func NewMaintenanceCoordinator(
	dbPath string,
	db *sql.DB,
	cfg *config.MaintenanceConfig,
	log *logger.Logger,
) Maintenance {
	if cfg == nil {
		return &NoOpMaintenance{}
	}

	return newMaintenanceCoordinator(dbPath, db, *cfg, log)
}

func newMaintenanceCoordinator(
	dbPath string,
	db *sql.DB,
	cfg config.MaintenanceConfig,
	log *logger.Logger,
) *MaintenanceCoordinator {
	return &MaintenanceCoordinator{
		db:     db,
		config: cfg,
		dbPath: dbPath,
		log:    log.WithComponent(common.ComponentMaintenance),
	}
}

// Start begins background maintenance if enabled.
func (m *MaintenanceCoordinator) Start(ctx context.Context) error {
	if !m.config.Enabled {
		m.log.Info("background maintenance is disabled")
		return nil
	}

	ctx, m.cancel = context.WithCancel(ctx)

	if m.config.VacuumOnStartup {
		if err := m.RunMaintenance(ctx); err != nil {
			m.log.Warnf("startup maintenance failed: %v", err)
		}
	}

	m.wg.Add(1)
	go m.worker(ctx, m.config.CheckInterval.Duration)

	m.log.Infof("background maintenance started - interval: %v, checkpoint mode: %s",
		m.config.CheckInterval.Duration, m.config.WALCheckpointMode)

	return nil
}

// Stop stops background maintenance and waits for completion.
func (m *MaintenanceCoordinator) Stop() error {
	if m.cancel == nil {
		return nil
	}

	m.cancel()
	m.wg.Wait()
	m.log.Info("background maintenance stopped")

	return nil
}

func (m *MaintenanceCoordinator) worker(ctx context.Context, interval time.Duration) {
	defer m.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := m.RunMaintenance(ctx); err != nil {
				m.log.Warnf("periodic maintenance failed: %v", err)
			}
		}
	}
}

// RunMaintenance checkpoints the WAL and vacuums while holding the exclusive lock.
func (m *MaintenanceCoordinator) RunMaintenance(ctx context.Context) error {
	start := time.Now()
	MaintenanceRunsInc()

	m.opLock.Lock()
	defer m.opLock.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	initialSize, err := DBTotalSize(m.dbPath)
	if err != nil {
		m.log.Warnf("failed to get initial DB size: %v", err)
	}

	var runErr error
	if err := m.walCheckpoint(); err != nil {
		runErr = fmt.Errorf("WAL checkpoint failed: %w", err)
	}
	if err := m.vacuum(); err != nil && runErr == nil {
		runErr = err
	}

	finalSize, err := DBTotalSize(m.dbPath)
	if err != nil {
		m.log.Warnf("failed to get final DB size: %v", err)
	}

	duration := time.Since(start)

	m.metricsLock.Lock()
	m.metrics.LastMaintenanceTime = time.Now().UTC()
	m.metrics.MaintenanceCount++
	m.metrics.LastMaintenanceError = runErr
	m.metricsLock.Unlock()

	MaintenanceDurationLog(duration)
	MaintenanceLastRunLog()
	DBSizeLog(finalSize)

	if runErr != nil {
		MaintenanceErrorInc()
		m.log.Warnf("maintenance completed with errors in %v: %v", duration, runErr)
		return runErr
	}

	MaintenanceSuccessInc()
	if initialSize > finalSize {
		reclaimed := uint64(initialSize - finalSize)
		MaintenanceSpaceReclaimedLog(reclaimed)
		m.log.Infof("maintenance completed in %v, reclaimed %d MB", duration, common.BytesToMB(reclaimed))
	} else {
		m.log.Infof("maintenance completed in %v", duration)
	}

	return nil
}

func (m *MaintenanceCoordinator) walCheckpoint() error {
	var mode string
	if err := m.db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		return fmt.Errorf("failed to check journal mode: %w", err)
	}
	if !strings.EqualFold(mode, "wal") {
		return nil
	}

	var busy, logFrames, checkpointed int
	query := fmt.Sprintf("PRAGMA wal_checkpoint(%s)", m.config.WALCheckpointMode)
	if err := m.db.QueryRow(query).Scan(&busy, &logFrames, &checkpointed); err != nil {
		return err
	}

	WALCheckpointInc(strings.ToLower(m.config.WALCheckpointMode))
	if busy > 0 {
		m.log.Warnf("WAL checkpoint left %d busy pages", busy)
	}
	m.log.Debugf("WAL checkpoint: mode=%s log_frames=%d checkpointed=%d",
		m.config.WALCheckpointMode, logFrames, checkpointed)

	return nil
}

func (m *MaintenanceCoordinator) vacuum() error {
	if err := Vacuum(m.db); err != nil {
		if strings.Contains(err.Error(), "database is locked") {
			return fmt.Errorf("cannot vacuum: database is locked (retry later)")
		}
		return err
	}

	VacuumRunsInc()
	return nil
}

// AcquireOperationLock takes the shared side of the maintenance lock.
func (m *MaintenanceCoordinator) AcquireOperationLock() func() {
	m.opLock.RLock()
	return m.opLock.RUnlock
}

// GetMetrics returns current maintenance metrics.
func (m *MaintenanceCoordinator) GetMetrics() MaintenanceMetrics {
	m.metricsLock.Lock()
	defer m.metricsLock.Unlock()

	return m.metrics
}
