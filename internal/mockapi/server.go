// Package mockapi is an in-memory rendition of the OpenFMB telemetry API.
// It serves the same four endpoints as the real backend, with canned devices
// and deterministic measurement series, so control applications can be
// developed and tested without a live microgrid.
package mockapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/openfmb-energy/openfmb-client/internal/logger"
)

const (
	// ServerShutdownTimeout is the timeout for graceful server shutdown
	ServerShutdownTimeout = 10 * time.Second

	databaseVersion = "PostgreSQL 16.3 (mock)"
)

type Server struct {
	router *chi.Mux
	logger *slog.Logger

	// deviceUUIDs preserves registration order for /devices; series are
	// stored newest first.
	deviceUUIDs []uuid.UUID
	series      map[uuid.UUID][]measurement
}

func NewServer(log *slog.Logger) *Server {
	s := &Server{
		router: chi.NewRouter(),
		logger: log,
		series: make(map[uuid.UUID][]measurement),
	}

	s.seedDevices(time.Now().UTC().Truncate(time.Minute))

	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(logger.RequestLogging(log))
	s.router.Use(chimiddleware.Recoverer)

	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.router.Get("/devices", s.handleGetDevices)
	s.router.Get("/devices/{deviceUUID}/last-state", s.handleGetLastState)
	s.router.Get("/devices/{deviceUUID}/historical", s.handleGetHistorical)
	s.router.Get("/test-db", s.handleTestDB)
}

// Router returns the HTTP handler, for mounting under httptest in tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the mock backend until ctx is cancelled.
func (s *Server) Start(ctx context.Context, host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)

	server := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info("mock OpenFMB API listening", slog.String("address", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
		s.logger.Info("shutting down mock OpenFMB API...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), ServerShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("server forced to shutdown", slog.String("error", err.Error()))
			return err
		}
	}

	return nil
}
