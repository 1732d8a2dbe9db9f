package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/goran-ethernal/TicketIndexor/internal/logger"
	"github.com/goran-ethernal/TicketIndexor/pkg/downloader"
	"github.com/goran-ethernal/TicketIndexor/pkg/rpc"
)

const (
	defaultPageLimit = 100
	maxPageLimit     = 1000
)

// Pipeline is the running ingestion pipeline.
type Pipeline interface {
	Status() (*downloader.Status, error)
	ReplayQuarantine(ctx context.Context) (int, error)
}

// QuarantineReader pages through quarantined logs.
type QuarantineReader interface {
	List(offset, limit int) ([]*downloader.QuarantinedLog, error)
	Count() (int, error)
}

// Handler handles HTTP requests for the API.
type Handler struct {
	pipeline   Pipeline
	quarantine QuarantineReader
	rpc        rpc.EthClient
	log        *logger.Logger
}

// NewHandler creates a new API handler. rpcClient may be nil, in which case the
// chain head is not reported.
func NewHandler(pipeline Pipeline, quarantine QuarantineReader, rpcClient rpc.EthClient, log *logger.Logger) *Handler {
	return &Handler{
		pipeline:   pipeline,
		quarantine: quarantine,
		rpc:        rpcClient,
		log:        log,
	}
}

// Health reports whether the pipeline can read its own state.
// @Summary Health check
// @Description Check that the indexer is running and report its subscription state
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse "Indexer is healthy"
// @Failure 503 {object} ErrorResponse "Indexer state is unavailable"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status, err := h.pipeline.Status()
	if err != nil {
		h.log.Warnw("health check failed", "error", err)
		respondError(w, http.StatusServiceUnavailable, "indexer state is unavailable")
		return
	}

	respondJSON(w, http.StatusOK, HealthResponse{
		Status:     "ok",
		Timestamp:  time.Now().UTC(),
		Subscribed: status.Subscribed,
		Backfilled: status.Backfilled,
	})
}

// GetStatus returns the checkpoint, queue depth and quarantine size.
// @Summary Ingestion status
// @Description Checkpoint, queue depth, quarantine size and distance to the chain head
// @Tags Status
// @Produce json
// @Success 200 {object} StatusResponse "Ingestion status"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /status [get]
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.pipeline.Status()
	if err != nil {
		h.log.Errorf("Failed to read status: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to read status")
		return
	}

	resp := StatusResponse{Status: *status}
	if h.rpc != nil {
		head, err := h.rpc.BlockNumber(r.Context())
		if err != nil {
			h.log.Warnw("failed to read chain head", "error", err)
		} else {
			resp.ChainHead = &head
			lag := uint64(0)
			if head > status.LastBlock {
				lag = head - status.LastBlock
			}
			resp.Lag = &lag
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

// ListQuarantine returns a page of quarantined logs.
// @Summary List quarantined logs
// @Description Logs whose projection failed, ordered by block and log index
// @Tags Quarantine
// @Produce json
// @Param limit query int false "Maximum number of entries to return" default(100)
// @Param offset query int false "Number of entries to skip" default(0)
// @Success 200 {object} QuarantineResponse "Quarantined logs with pagination info"
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /quarantine [get]
func (h *Handler) ListQuarantine(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := parsePage(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid query parameters: %v", err))
		return
	}

	entries, err := h.quarantine.List(offset, limit)
	if err != nil {
		h.log.Errorf("Failed to list quarantine: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to list quarantine")
		return
	}
	total, err := h.quarantine.Count()
	if err != nil {
		h.log.Errorf("Failed to count quarantine: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to count quarantine")
		return
	}

	if entries == nil {
		entries = []*downloader.QuarantinedLog{}
	}

	respondJSON(w, http.StatusOK, QuarantineResponse{
		Entries: entries,
		Pagination: PaginationResult{
			Total:   total,
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(entries) < total,
		},
	})
}

// ReplayQuarantine queues every quarantined log for another projection attempt.
// @Summary Replay the quarantine
// @Description Re-enqueue every quarantined log; successful projections remove their entries
// @Tags Quarantine
// @Produce json
// @Success 202 {object} ReplayResponse "Number of logs queued"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /quarantine/replay [post]
func (h *Handler) ReplayQuarantine(w http.ResponseWriter, r *http.Request) {
	queued, err := h.pipeline.ReplayQuarantine(r.Context())
	if err != nil {
		h.log.Errorw("quarantine replay failed", "queued", queued, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to replay quarantine")
		return
	}

	h.log.Infow("quarantine replay requested", "queued", queued)
	respondJSON(w, http.StatusAccepted, ReplayResponse{Queued: queued})
}

func parsePage(r *http.Request) (limit, offset int, err error) {
	limit = defaultPageLimit

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > maxPageLimit {
			return 0, 0, fmt.Errorf("invalid limit: must be between 1 and %d", maxPageLimit)
		}
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		offset, err = strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			return 0, 0, fmt.Errorf("invalid offset: must be non-negative")
		}
	}

	return limit, offset, nil
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")

	// Encode first so an encoding failure can still change the status
	encoded, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	_, _ = w.Write(encoded)
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}
