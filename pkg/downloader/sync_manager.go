package downloader

// SyncManager defines the interface for the checkpoint store.
type SyncManager interface {
	// GetLastBlock returns the highest block observed by the pipeline.
	GetLastBlock() (uint64, error)

	// GetState returns the checkpoint row.
	GetState() (*SyncState, error)

	// Advance moves the checkpoint to block unless it is already past it.
	Advance(block uint64) error
}

// SyncState is the single checkpoint row.
type SyncState struct {
	ID        int    `meddler:"id,pk" json:"-"`
	LastBlock uint64 `meddler:"last_block" json:"last_block"`
	UpdatedAt int64  `meddler:"updated_at" json:"updated_at"`
}
