package downloader

import (
	"context"
)

// Downloader streams contract logs from the chain into the projection pipeline.
type Downloader interface {
	// Download runs ingestion until the context is cancelled or a fatal error occurs.
	// On cancellation the queued logs are moved to the quarantine.
	Download(ctx context.Context) error

	// ReplayQuarantine re-enqueues every quarantined log and returns how many were queued.
	ReplayQuarantine(ctx context.Context) (int, error)

	// Status reports the ingestion progress.
	Status() (*Status, error)
}

// Status is a snapshot of the ingestion state.
type Status struct {
	LastBlock   uint64 `json:"last_block"`
	QueueDepth  int    `json:"queue_depth"`
	QueueSize   int    `json:"queue_size"`
	Quarantined int    `json:"quarantined"`
	Subscribed  bool   `json:"subscribed"`
	Backfilled  bool   `json:"backfilled"`
}
