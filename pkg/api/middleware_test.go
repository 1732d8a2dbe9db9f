package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goran-ethernal/TicketIndexor/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	})
}

func TestCORSMiddleware(t *testing.T) {
	t.Parallel()

	dashboards := []string{"https://ops.example.com", "https://grafana.example.com"}

	tests := []struct {
		name       string
		allowed    []string
		origin     string
		method     string
		wantOrigin string
	}{
		{name: "wildcard echoes origin", allowed: []string{"*"}, origin: "https://ops.example.com", method: http.MethodGet, wantOrigin: "https://ops.example.com"},
		{name: "wildcard without origin", allowed: []string{"*"}, method: http.MethodGet, wantOrigin: "*"},
		{name: "listed dashboard", allowed: dashboards, origin: "https://grafana.example.com", method: http.MethodGet, wantOrigin: "https://grafana.example.com"},
		{name: "unlisted origin", allowed: dashboards, origin: "https://tickets.example.org", method: http.MethodGet},
		{name: "no origins configured", allowed: nil, origin: "https://ops.example.com", method: http.MethodGet},
		{name: "preflight for replay", allowed: dashboards, origin: "https://ops.example.com", method: http.MethodOptions, wantOrigin: "https://ops.example.com"},
		{name: "preflight from unlisted origin", allowed: dashboards, origin: "https://tickets.example.org", method: http.MethodOptions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(tt.method, "/api/v1/quarantine/replay", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()

			CORSMiddleware(tt.allowed)(okHandler("replayed")).ServeHTTP(w, req)

			require.Equal(t, tt.wantOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			if tt.wantOrigin != "" {
				require.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
				require.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
				require.Equal(t, corsMaxAge, w.Header().Get("Access-Control-Max-Age"))
			}

			require.Equal(t, http.StatusOK, w.Code)
			if tt.method == http.MethodOptions {
				require.Empty(t, w.Body.String())
			} else {
				require.Equal(t, "replayed", w.Body.String())
			}
		})
	}
}

func TestCORSMiddleware_VaryOnEchoedOrigin(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	req.Header.Set("Origin", "https://ops.example.com")
	w := httptest.NewRecorder()

	CORSMiddleware([]string{"https://ops.example.com"})(okHandler("{}")).ServeHTTP(w, req)

	require.Equal(t, "Origin", w.Header().Get("Vary"))
}

func TestLoggingMiddleware_PassesStatusThrough(t *testing.T) {
	t.Parallel()

	for _, status := range []int{http.StatusOK, http.StatusAccepted, http.StatusBadRequest, http.StatusServiceUnavailable} {
		h := LoggingMiddleware(logger.NewNopLogger())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/quarantine", nil))

		require.Equal(t, status, w.Code)
	}
}

func TestResponseWriter_RecordsFirstStatus(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

	rw.WriteHeader(http.StatusAccepted)
	rw.WriteHeader(http.StatusInternalServerError)

	require.Equal(t, http.StatusAccepted, rw.statusCode)
	require.Equal(t, http.StatusAccepted, w.Code)

	implicit := &responseWriter{ResponseWriter: httptest.NewRecorder(), statusCode: http.StatusOK}
	_, err := implicit.Write([]byte("ok"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, implicit.statusCode)
	require.True(t, implicit.wroteHeader)
}

func TestRecoveryMiddleware(t *testing.T) {
	t.Parallel()

	panics := map[string]any{
		"string": "quarantine store closed",
		"error":  assert.AnError,
		"int":    42,
	}

	for name, value := range panics {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			h := RecoveryMiddleware(logger.NewNopLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				panic(value)
			}))

			w := httptest.NewRecorder()
			require.NotPanics(t, func() {
				h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/quarantine/replay", nil))
			})

			require.Equal(t, http.StatusInternalServerError, w.Code)
			require.Equal(t, "Internal Server Error\n", w.Body.String())
		})
	}

	t.Run("no panic", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		RecoveryMiddleware(logger.NewNopLogger())(okHandler("ok")).
			ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "ok", w.Body.String())
	})
}

func TestMiddlewareChain(t *testing.T) {
	t.Parallel()

	log := logger.NewNopLogger()
	h := RecoveryMiddleware(log)(LoggingMiddleware(log)(CORSMiddleware([]string{"*"})(okHandler("status"))))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	req.Header.Set("Origin", "https://ops.example.com")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "status", w.Body.String())
	require.Equal(t, "https://ops.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}
