package downloader

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/goran-ethernal/TicketIndexor/internal/common"
	"github.com/goran-ethernal/TicketIndexor/internal/db"
	"github.com/goran-ethernal/TicketIndexor/internal/logger"
	pkgdownloader "github.com/goran-ethernal/TicketIndexor/pkg/downloader"
	"github.com/russross/meddler"
)

// Compile-time check to ensure SyncManager implements pkgdownloader.SyncManager interface.
var _ pkgdownloader.SyncManager = (*SyncManager)(nil)

// SyncManager owns the checkpoint row.
type SyncManager struct {
	db                     *sql.DB
	log                    *logger.Logger
	maintenanceCoordinator db.Maintenance
	now                    func() time.Time

	mu      sync.Mutex
	highest uint64
}

// SyncState is a type alias for the public SyncState type.
type SyncState = pkgdownloader.SyncState

// NewSyncManager creates a new SyncManager instance.
func NewSyncManager(database *sql.DB, log *logger.Logger, maintenanceCoordinator db.Maintenance) *SyncManager {
	if maintenanceCoordinator == nil {
		maintenanceCoordinator = &db.NoOpMaintenance{}
	}

	return &SyncManager{
		db:                     database,
		log:                    log.WithComponent(common.ComponentSyncManager),
		maintenanceCoordinator: maintenanceCoordinator,
		now:                    time.Now,
	}
}

// GetLastBlock returns the checkpoint block.
func (sm *SyncManager) GetLastBlock() (uint64, error) {
	state, err := sm.GetState()
	if err != nil {
		return 0, err
	}
	return state.LastBlock, nil
}

// GetState returns the checkpoint row.
func (sm *SyncManager) GetState() (*SyncState, error) {
	unlock := sm.maintenanceCoordinator.AcquireOperationLock()
	defer unlock()

	var state SyncState
	if err := meddler.QueryRow(sm.db, &state, `SELECT * FROM sync_state WHERE id = 1`); err != nil {
		return nil, fmt.Errorf("failed to get sync state: %w", err)
	}
	return &state, nil
}

// Advance moves the checkpoint forward to block. It never moves it back, so logs
// arriving out of order from the two producers cannot rewind it.
func (sm *SyncManager) Advance(block uint64) error {
	unlock := sm.maintenanceCoordinator.AcquireOperationLock()
	defer unlock()

	_, err := sm.db.Exec(`UPDATE sync_state SET last_block = MAX(last_block, ?), updated_at = ? WHERE id = 1`,
		block, sm.now().Unix())
	if err != nil {
		return fmt.Errorf("failed to save checkpoint: %w", err)
	}

	sm.mu.Lock()
	if block > sm.highest {
		sm.highest = block
		CheckpointLog(block)
	}
	sm.mu.Unlock()
	sm.log.Debugf("observed block %d", block)

	return nil
}
