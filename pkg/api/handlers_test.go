package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	apimocks "github.com/goran-ethernal/TicketIndexor/internal/api/mocks"
	"github.com/goran-ethernal/TicketIndexor/internal/logger"
	rpcmocks "github.com/goran-ethernal/TicketIndexor/internal/rpc/mocks"
	"github.com/goran-ethernal/TicketIndexor/pkg/downloader"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHandler_Health(t *testing.T) {
	t.Parallel()

	t.Run("healthy", func(t *testing.T) {
		t.Parallel()

		pipeline := apimocks.NewPipeline(t)
		pipeline.EXPECT().Status().Return(&downloader.Status{Subscribed: true, Backfilled: true}, nil)

		h := NewHandler(pipeline, apimocks.NewQuarantineReader(t), nil, logger.NewNopLogger())
		w := httptest.NewRecorder()
		h.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeBody[HealthResponse](t, w)
		require.Equal(t, "ok", resp.Status)
		require.True(t, resp.Subscribed)
		require.True(t, resp.Backfilled)
		require.False(t, resp.Timestamp.IsZero())
	})

	t.Run("state unavailable", func(t *testing.T) {
		t.Parallel()

		pipeline := apimocks.NewPipeline(t)
		pipeline.EXPECT().Status().Return(nil, errors.New("database is locked"))

		h := NewHandler(pipeline, apimocks.NewQuarantineReader(t), nil, logger.NewNopLogger())
		w := httptest.NewRecorder()
		h.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		resp := decodeBody[ErrorResponse](t, w)
		require.Equal(t, http.StatusServiceUnavailable, resp.Code)
	})
}

func TestHandler_GetStatus(t *testing.T) {
	t.Parallel()

	status := &downloader.Status{LastBlock: 90, QueueDepth: 3, QueueSize: 1024, Quarantined: 2, Subscribed: true}

	tests := []struct {
		name      string
		setupRPC  func(t *testing.T) *rpcmocks.EthClient
		wantHead  *uint64
		wantLag   *uint64
		wantCode  int
		statusErr error
	}{
		{
			name: "with chain head",
			setupRPC: func(t *testing.T) *rpcmocks.EthClient {
				t.Helper()
				c := rpcmocks.NewEthClient(t)
				c.EXPECT().BlockNumber(mock.Anything).Return(uint64(100), nil)
				return c
			},
			wantHead: ptr(uint64(100)),
			wantLag:  ptr(uint64(10)),
			wantCode: http.StatusOK,
		},
		{
			name: "checkpoint ahead of a lagging node",
			setupRPC: func(t *testing.T) *rpcmocks.EthClient {
				t.Helper()
				c := rpcmocks.NewEthClient(t)
				c.EXPECT().BlockNumber(mock.Anything).Return(uint64(80), nil)
				return c
			},
			wantHead: ptr(uint64(80)),
			wantLag:  ptr(uint64(0)),
			wantCode: http.StatusOK,
		},
		{
			name: "node unreachable",
			setupRPC: func(t *testing.T) *rpcmocks.EthClient {
				t.Helper()
				c := rpcmocks.NewEthClient(t)
				c.EXPECT().BlockNumber(mock.Anything).Return(uint64(0), errors.New("dial tcp: refused"))
				return c
			},
			wantCode: http.StatusOK,
		},
		{
			name:     "status fails",
			setupRPC: func(t *testing.T) *rpcmocks.EthClient { t.Helper(); return rpcmocks.NewEthClient(t) },
			wantCode: http.StatusInternalServerError,

			statusErr: errors.New("boom"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pipeline := apimocks.NewPipeline(t)
			if tt.statusErr != nil {
				pipeline.EXPECT().Status().Return(nil, tt.statusErr)
			} else {
				pipeline.EXPECT().Status().Return(status, nil)
			}

			h := NewHandler(pipeline, apimocks.NewQuarantineReader(t), tt.setupRPC(t), logger.NewNopLogger())
			w := httptest.NewRecorder()
			h.GetStatus(w, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))

			require.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode != http.StatusOK {
				return
			}

			resp := decodeBody[StatusResponse](t, w)
			require.Equal(t, *status, resp.Status)
			require.Equal(t, tt.wantHead, resp.ChainHead)
			require.Equal(t, tt.wantLag, resp.Lag)
		})
	}
}

func TestHandler_GetStatus_WithoutRPC(t *testing.T) {
	t.Parallel()

	pipeline := apimocks.NewPipeline(t)
	pipeline.EXPECT().Status().Return(&downloader.Status{LastBlock: 5}, nil)

	h := NewHandler(pipeline, apimocks.NewQuarantineReader(t), nil, logger.NewNopLogger())
	w := httptest.NewRecorder()
	h.GetStatus(w, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.NotContains(t, w.Body.String(), "chain_head")
	require.Contains(t, w.Body.String(), `"last_block":5`)
}

func TestHandler_ListQuarantine(t *testing.T) {
	t.Parallel()

	entries := []*downloader.QuarantinedLog{
		{TxHash: ethcommon.HexToHash("0x01"), LogIndex: 0, BlockNumber: 10, Error: "event place 999: not found", Attempts: 1},
		{TxHash: ethcommon.HexToHash("0x02"), LogIndex: 3, BlockNumber: 11, Error: "invalid status 9", Attempts: 2},
	}

	tests := []struct {
		name       string
		query      string
		setup      func(q *apimocks.QuarantineReader)
		wantCode   int
		wantLen    int
		wantPaging PaginationResult
	}{
		{
			name:  "default page",
			query: "",
			setup: func(q *apimocks.QuarantineReader) {
				q.EXPECT().List(0, defaultPageLimit).Return(entries, nil)
				q.EXPECT().Count().Return(2, nil)
			},
			wantCode:   http.StatusOK,
			wantLen:    2,
			wantPaging: PaginationResult{Total: 2, Limit: defaultPageLimit, Offset: 0, HasMore: false},
		},
		{
			name:  "explicit page with more",
			query: "?limit=1&offset=0",
			setup: func(q *apimocks.QuarantineReader) {
				q.EXPECT().List(0, 1).Return(entries[:1], nil)
				q.EXPECT().Count().Return(2, nil)
			},
			wantCode:   http.StatusOK,
			wantLen:    1,
			wantPaging: PaginationResult{Total: 2, Limit: 1, Offset: 0, HasMore: true},
		},
		{
			name:  "empty quarantine",
			query: "?offset=5",
			setup: func(q *apimocks.QuarantineReader) {
				q.EXPECT().List(5, defaultPageLimit).Return(nil, nil)
				q.EXPECT().Count().Return(0, nil)
			},
			wantCode:   http.StatusOK,
			wantLen:    0,
			wantPaging: PaginationResult{Total: 0, Limit: defaultPageLimit, Offset: 5, HasMore: false},
		},
		{name: "limit too large", query: "?limit=5000", setup: func(*apimocks.QuarantineReader) {}, wantCode: http.StatusBadRequest},
		{name: "limit zero", query: "?limit=0", setup: func(*apimocks.QuarantineReader) {}, wantCode: http.StatusBadRequest},
		{name: "negative offset", query: "?offset=-1", setup: func(*apimocks.QuarantineReader) {}, wantCode: http.StatusBadRequest},
		{name: "non numeric limit", query: "?limit=ten", setup: func(*apimocks.QuarantineReader) {}, wantCode: http.StatusBadRequest},
		{
			name:  "list fails",
			query: "",
			setup: func(q *apimocks.QuarantineReader) {
				q.EXPECT().List(0, defaultPageLimit).Return(nil, errors.New("boom"))
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name:  "count fails",
			query: "",
			setup: func(q *apimocks.QuarantineReader) {
				q.EXPECT().List(0, defaultPageLimit).Return(entries, nil)
				q.EXPECT().Count().Return(0, errors.New("boom"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			quarantine := apimocks.NewQuarantineReader(t)
			tt.setup(quarantine)

			h := NewHandler(apimocks.NewPipeline(t), quarantine, nil, logger.NewNopLogger())
			w := httptest.NewRecorder()
			h.ListQuarantine(w, httptest.NewRequest(http.MethodGet, "/api/v1/quarantine"+tt.query, nil))

			require.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode != http.StatusOK {
				resp := decodeBody[ErrorResponse](t, w)
				require.Equal(t, tt.wantCode, resp.Code)
				return
			}

			resp := decodeBody[QuarantineResponse](t, w)
			require.NotNil(t, resp.Entries)
			require.Len(t, resp.Entries, tt.wantLen)
			require.Equal(t, tt.wantPaging, resp.Pagination)
		})
	}
}

func TestHandler_ReplayQuarantine(t *testing.T) {
	t.Parallel()

	t.Run("queued", func(t *testing.T) {
		t.Parallel()

		pipeline := apimocks.NewPipeline(t)
		pipeline.EXPECT().ReplayQuarantine(mock.Anything).Return(3, nil)

		h := NewHandler(pipeline, apimocks.NewQuarantineReader(t), nil, logger.NewNopLogger())
		w := httptest.NewRecorder()
		h.ReplayQuarantine(w, httptest.NewRequest(http.MethodPost, "/api/v1/quarantine/replay", nil))

		require.Equal(t, http.StatusAccepted, w.Code)
		require.Equal(t, ReplayResponse{Queued: 3}, decodeBody[ReplayResponse](t, w))
	})

	t.Run("fails", func(t *testing.T) {
		t.Parallel()

		pipeline := apimocks.NewPipeline(t)
		pipeline.EXPECT().ReplayQuarantine(mock.Anything).Return(1, errors.New("context canceled"))

		h := NewHandler(pipeline, apimocks.NewQuarantineReader(t), nil, logger.NewNopLogger())
		w := httptest.NewRecorder()
		h.ReplayQuarantine(w, httptest.NewRequest(http.MethodPost, "/api/v1/quarantine/replay", nil))

		require.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestRespondJSON_EncodingFailure(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	respondJSON(w, http.StatusOK, map[string]any{"bad": make(chan int)})

	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func ptr[T any](v T) *T {
	return &v
}
