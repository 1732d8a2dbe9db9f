package downloader

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Quarantine stores logs whose projection failed so they can be replayed.
type Quarantine interface {
	// Put records a failure. A log that is already quarantined gets its error
	// replaced and its attempt counter incremented.
	Put(log types.Log, cause error) error

	// Remove deletes the entry of a log, if any.
	Remove(txHash common.Hash, logIndex uint) error

	// List returns a page of entries ordered by block and log index.
	List(offset, limit int) ([]*QuarantinedLog, error)

	// Count returns the number of entries.
	Count() (int, error)

	// Logs returns every quarantined log in block order.
	Logs() ([]types.Log, error)
}

// QuarantinedLog is a failed log together with the reason it failed.
type QuarantinedLog struct {
	TxHash      common.Hash `meddler:"tx_hash,hash" json:"tx_hash"`
	LogIndex    uint        `meddler:"log_index" json:"log_index"`
	BlockNumber uint64      `meddler:"block_number" json:"block_number"`
	Payload     string      `meddler:"payload" json:"payload"`
	Error       string      `meddler:"error" json:"error"`
	Attempts    int         `meddler:"attempts" json:"attempts"`
	FirstSeen   int64       `meddler:"first_seen" json:"first_seen"`
	UpdatedAt   int64       `meddler:"updated_at" json:"updated_at"`
}
