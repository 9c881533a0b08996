// Package server exposes the board over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// shutdownTimeout bounds how long in-flight requests get on shutdown
const shutdownTimeout = 10 * time.Second

// Options configures a Server
type Options struct {
	// Addr is the listen address, e.g. ":8080"
	Addr string

	// Token, when set, is required as a bearer token on every request
	Token string

	// AllowOrigins for CORS; defaults to any origin
	AllowOrigins []string

	Logger *slog.Logger
}

// Server is the tablero HTTP API
type Server struct {
	echo         *echo.Echo
	addr         string
	metrics      *Metrics
	logger       *slog.Logger
	shutdownOnce sync.Once
}

// New builds a server with all routes and middleware registered
func New(svc Services, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	origins := opts.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	metrics := NewMetrics()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(metrics)

	e.Use(middleware.Recover())
	e.Use(requestID())
	e.Use(requestLogger(logger))
	e.Use(countRequests(metrics))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, echo.HeaderXRequestID},
	}))
	e.Use(BearerAuth(opts.Token))

	Register(e, svc, metrics)

	return &Server{
		echo:    e,
		addr:    opts.Addr,
		metrics: metrics,
		logger:  logger,
	}
}

// Handler exposes the router, mainly for httptest
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Metrics returns the live counters
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("server starting", "addr", s.addr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.echo.Start(s.addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
		return s.Shutdown()
	}
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown() error {
	var err error
	s.shutdownOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		snapshot := s.metrics.GetSnapshot()
		s.logger.Info("server shutting down",
			"requests", snapshot.RequestsTotal,
			"errors", snapshot.RequestErrors,
			"moves", snapshot.TasksMoved,
			"uptime", snapshot.Uptime)

		if shutdownErr := s.echo.Shutdown(ctx); shutdownErr != nil {
			err = fmt.Errorf("failed to shut down server: %w", shutdownErr)
		}
	})
	return err
}
