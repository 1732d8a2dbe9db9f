package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/goran-ethernal/TicketIndexor/internal/common"
	"github.com/goran-ethernal/TicketIndexor/internal/logger"
	"github.com/goran-ethernal/TicketIndexor/pkg/config"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const systemMetricsInterval = 15 * time.Second

// Server is the HTTP server that exposes Prometheus metrics.
type Server struct {
	config *config.MetricsConfig
	log    *logger.Logger
	server *http.Server
	stopCh chan struct{}
}

// NewServer creates a new metrics server.
func NewServer(config *config.MetricsConfig, log *logger.Logger) *Server {
	return &Server{
		config: config,
		log:    log.WithComponent(common.ComponentMetrics),
		stopCh: make(chan struct{}),
	}
}

// Handler returns the metrics mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(s.config.Path, promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	return mux
}

// Start starts the metrics HTTP server and begins collecting system metrics.
func (s *Server) Start(ctx context.Context) error {
	if !s.config.Enabled {
		return nil
	}

	s.server = &http.Server{
		Addr:              s.config.ListenAddress,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go s.updateSystemMetrics(ctx)

	go func() {
		s.log.Infow("metrics server listening", "address", s.config.ListenAddress, "path", s.config.Path)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Errorw("metrics server failed", "error", err)
		}
	}()

	return nil
}

// Stop stops the metrics HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	close(s.stopCh)

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown metrics server: %w", err)
	}

	return nil
}

func (s *Server) updateSystemMetrics(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	UpdateSystemMetrics()
	for {
		select {
		case <-ticker.C:
			UpdateSystemMetrics()
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		}
	}
}
