package monitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/donaldgifford/chitai-gorod-qa/internal/monitor/middleware"
	domain "github.com/donaldgifford/chitai-gorod-qa/pkg/types"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server serves health, readiness, metrics and the latest run.
type Server struct {
	echo    *echo.Echo
	addr    string
	pinger  Pinger
	lastRun func() *domain.SmokeRun
	log     *slog.Logger
}

// ServerOption configures the Server.
type ServerOption func(*Server)

// WithPinger makes /readyz depend on p.
func WithPinger(p Pinger) ServerOption {
	return func(s *Server) {
		s.pinger = p
	}
}

// WithLastRun exposes the run returned by f at /runs/latest.
func WithLastRun(f func() *domain.SmokeRun) ServerOption {
	return func(s *Server) {
		s.lastRun = f
	}
}

// WithTimeouts sets the HTTP server read and write timeouts.
func WithTimeouts(read, write time.Duration) ServerOption {
	return func(s *Server) {
		s.echo.Server.ReadTimeout = read
		s.echo.Server.WriteTimeout = write
	}
}

// WithServerLogger sets the logger.
func WithServerLogger(l *slog.Logger) ServerOption {
	return func(s *Server) {
		s.log = l
	}
}

// NewServer builds the monitor HTTP server listening on addr.
func NewServer(addr string, opts ...ServerOption) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo: e,
		addr: addr,
		log:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	e.Use(middleware.RequestLog(s.log))
	e.Use(middleware.Recovery(s.log))
	e.Use(middleware.Metrics())

	e.GET("/healthz", s.healthz)
	e.GET("/readyz", s.readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/runs/latest", s.latestRun)

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens until Shutdown is called.
func (s *Server) Start() error {
	s.log.Info("starting server", "addr", s.addr)
	if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving on %s: %w", s.addr, err)
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}

func (*Server) healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) readyz(c echo.Context) error {
	if s.pinger != nil {
		if err := s.pinger.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) latestRun(c echo.Context) error {
	var run *domain.SmokeRun
	if s.lastRun != nil {
		run = s.lastRun()
	}
	if run == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no run yet"})
	}
	return c.JSON(http.StatusOK, run)
}
