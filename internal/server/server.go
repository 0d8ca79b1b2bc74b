// Eyedea | 2026
// server.go

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/philtech/eyedea/internal/config"
	"github.com/philtech/eyedea/internal/middleware"
)

type Config struct {
	ServerConfig config.ServerConfig
	CORSConfig   config.CORSConfig
	Production   bool
	Logger       *slog.Logger
}

type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	logger     *slog.Logger
}

func New(cfg Config) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(chimw.RealIP)
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(chimw.Recoverer)
	router.Use(middleware.SecurityHeaders(cfg.Production))
	router.Use(middleware.CORS(cfg.CORSConfig))
	router.Use(chimw.Timeout(60 * time.Second))

	httpServer := &http.Server{
		Addr:              cfg.ServerConfig.Address(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.ServerConfig.ReadTimeout,
		WriteTimeout:      cfg.ServerConfig.WriteTimeout,
		IdleTimeout:       cfg.ServerConfig.IdleTimeout,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		logger:     cfg.Logger,
	}
}

// Router exposes the mux so domain handlers can mount their routes
// before Start is called.
func (s *Server) Router() *chi.Mux {
	return s.router
}

func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.httpServer.Addr)

	err := s.httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown waits drainDelay for load balancers to stop routing new
// traffic, then drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context, drainDelay time.Duration) error {
	if drainDelay > 0 {
		s.logger.Info("draining connections", "delay", drainDelay.String())

		select {
		case <-time.After(drainDelay):
		case <-ctx.Done():
		}
	}

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.logger.Info("http server stopped")
	return nil
}
