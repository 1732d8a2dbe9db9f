package downloader

import (
	"database/sql"
	"fmt"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/goran-ethernal/TicketIndexor/internal/common"
	"github.com/goran-ethernal/TicketIndexor/internal/db"
	"github.com/goran-ethernal/TicketIndexor/internal/logger"
	pkgdownloader "github.com/goran-ethernal/TicketIndexor/pkg/downloader"
	"github.com/russross/meddler"
)

var _ pkgdownloader.Quarantine = (*QuarantineStore)(nil)

// QuarantinedLog is a type alias for the public QuarantinedLog type.
type QuarantinedLog = pkgdownloader.QuarantinedLog

// QuarantineStore persists failed logs keyed by (tx_hash, log_index).
type QuarantineStore struct {
	db                     *sql.DB
	log                    *logger.Logger
	maintenanceCoordinator db.Maintenance
	now                    func() time.Time
}

// NewQuarantineStore creates a quarantine backed by the quarantined_logs table.
func NewQuarantineStore(database *sql.DB, log *logger.Logger, maintenanceCoordinator db.Maintenance) *QuarantineStore {
	if maintenanceCoordinator == nil {
		maintenanceCoordinator = &db.NoOpMaintenance{}
	}

	return &QuarantineStore{
		db:                     database,
		log:                    log.WithComponent(common.ComponentQuarantine),
		maintenanceCoordinator: maintenanceCoordinator,
		now:                    time.Now,
	}
}

// Put upserts the quarantine entry of l.
func (q *QuarantineStore) Put(l types.Log, cause error) error {
	payload, err := encodeLog(l)
	if err != nil {
		return err
	}

	unlock := q.maintenanceCoordinator.AcquireOperationLock()
	defer unlock()

	now := q.now().Unix()
	_, err = q.db.Exec(`
		INSERT INTO quarantined_logs (tx_hash, log_index, block_number, payload, error, attempts, first_seen, updated_at)
		VALUES (?, ?, ?, ?, ?, 1, ?, ?)
		ON CONFLICT (tx_hash, log_index) DO UPDATE SET
			payload = excluded.payload,
			error = excluded.error,
			attempts = quarantined_logs.attempts + 1,
			updated_at = excluded.updated_at`,
		l.TxHash.Hex(), l.Index, l.BlockNumber, string(payload), cause.Error(), now, now)
	if err != nil {
		return fmt.Errorf("failed to quarantine log %s:%d: %w", l.TxHash.Hex(), l.Index, err)
	}

	q.log.Errorw("log quarantined",
		"tx_hash", l.TxHash.Hex(),
		"log_index", l.Index,
		"block", l.BlockNumber,
		"error", cause,
	)
	return nil
}

// Remove deletes the entry for a log. Removing a missing entry is not an error.
func (q *QuarantineStore) Remove(txHash ethcommon.Hash, logIndex uint) error {
	unlock := q.maintenanceCoordinator.AcquireOperationLock()
	defer unlock()

	res, err := q.db.Exec(`DELETE FROM quarantined_logs WHERE tx_hash = ? AND log_index = ?`, txHash.Hex(), logIndex)
	if err != nil {
		return fmt.Errorf("failed to remove quarantined log %s:%d: %w", txHash.Hex(), logIndex, err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		q.log.Infow("quarantined log recovered", "tx_hash", txHash.Hex(), "log_index", logIndex)
	}
	return nil
}

// List returns a page of entries.
func (q *QuarantineStore) List(offset, limit int) ([]*QuarantinedLog, error) {
	var out []*QuarantinedLog
	err := meddler.QueryAll(q.db, &out, `
		SELECT * FROM quarantined_logs ORDER BY block_number, log_index LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list quarantined logs: %w", err)
	}
	return out, nil
}

// Count returns the number of entries.
func (q *QuarantineStore) Count() (int, error) {
	var n int
	if err := q.db.QueryRow(`SELECT COUNT(*) FROM quarantined_logs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count quarantined logs: %w", err)
	}
	return n, nil
}

// Logs decodes every entry. Entries whose payload cannot be decoded are skipped
// and stay in the table.
func (q *QuarantineStore) Logs() ([]types.Log, error) {
	var rows []*QuarantinedLog
	if err := meddler.QueryAll(q.db, &rows,
		`SELECT * FROM quarantined_logs ORDER BY block_number, log_index`); err != nil {
		return nil, fmt.Errorf("failed to load quarantined logs: %w", err)
	}

	logs := make([]types.Log, 0, len(rows))
	for _, row := range rows {
		l, err := decodeLog([]byte(row.Payload))
		if err != nil {
			q.log.Errorw("skipping unreadable quarantined log",
				"tx_hash", row.TxHash.Hex(), "log_index", row.LogIndex, "error", err)
			continue
		}
		logs = append(logs, l)
	}
	return logs, nil
}
