package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/goran-ethernal/TicketIndexor/internal/common"
	"github.com/goran-ethernal/TicketIndexor/internal/logger"
	"github.com/goran-ethernal/TicketIndexor/pkg/api/docs"
	"github.com/goran-ethernal/TicketIndexor/pkg/config"
	"github.com/goran-ethernal/TicketIndexor/pkg/rpc"
)

// Ensure docs are initialized
var _ = docs.SwaggerInfo

const shutdownCtxTimeout = 10 * time.Second

// Server represents the API HTTP server.
type Server struct {
	config  *config.APIConfig
	handler *Handler
	server  *http.Server
	log     *logger.Logger
}

// NewServer creates a new API server.
func NewServer(cfg *config.APIConfig, pipeline Pipeline, quarantine QuarantineReader,
	rpcClient rpc.EthClient, log *logger.Logger) *Server {
	log = log.WithComponent(common.ComponentAPI)
	handler := NewHandler(pipeline, quarantine, rpcClient, log)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.Health)
	mux.HandleFunc("GET /api/v1/status", handler.GetStatus)

	mux.HandleFunc("GET /api/v1/quarantine", handler.ListQuarantine)
	mux.HandleFunc("POST /api/v1/quarantine/replay", handler.ReplayQuarantine)

	mux.Handle("GET /swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
	))

	var h http.Handler = mux
	h = RecoveryMiddleware(log)(h)
	h = LoggingMiddleware(log)(h)

	if cfg.CORS.Enabled {
		h = CORSMiddleware(cfg.CORS.AllowedOrigins)(h)
	}

	httpServer := &http.Server{
		Addr:         cfg.ListenAddress,
		Handler:      h,
		ReadTimeout:  cfg.ReadTimeout.Duration,
		WriteTimeout: cfg.WriteTimeout.Duration,
		IdleTimeout:  cfg.IdleTimeout.Duration,
	}

	return &Server{
		config:  cfg,
		handler: handler,
		server:  httpServer,
		log:     log,
	}
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start serves the API until ctx is cancelled and then shuts the server down.
func (s *Server) Start(ctx context.Context) error {
	if !s.config.Enabled {
		s.log.Info("API server is disabled")
		return nil
	}

	s.log.Infof("Starting API server on %s", s.config.ListenAddress)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("API server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownCtxTimeout)
	defer cancel()

	s.log.Info("Shutting down API server...")
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("API server shutdown error: %w", err)
	}

	s.log.Info("API server stopped")
	return nil
}
