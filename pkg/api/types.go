package api

import (
	"time"

	"github.com/goran-ethernal/TicketIndexor/pkg/downloader"
)

// PaginationResult contains pagination metadata.
type PaginationResult struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status     string    `json:"status"`
	Timestamp  time.Time `json:"timestamp"`
	Subscribed bool      `json:"subscribed"`
	Backfilled bool      `json:"backfilled"`
}

// StatusResponse is the ingestion status together with the chain head.
type StatusResponse struct {
	downloader.Status

	// ChainHead is omitted when the node could not be reached
	ChainHead *uint64 `json:"chain_head,omitempty"`
	Lag       *uint64 `json:"lag,omitempty"`
}

// QuarantineResponse is a page of quarantined logs.
type QuarantineResponse struct {
	Entries    []*downloader.QuarantinedLog `json:"entries"`
	Pagination PaginationResult             `json:"pagination"`
}

// ReplayResponse reports how many quarantined logs were queued again.
type ReplayResponse struct {
	Queued int `json:"queued"`
}
