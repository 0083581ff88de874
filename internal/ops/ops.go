package ops

import (
	"context"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes the operational HTTP surface: liveness and metrics.
type Server struct {
	e      *echo.Echo
	addr   string
	logger *log.Logger
}

func New(addr string, reg *prometheus.Registry) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	return &Server{
		e:      e,
		addr:   addr,
		logger: log.New(log.Writer(), "[OPS] ", log.LstdFlags),
	}
}

// Start blocks serving until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Printf("serving health and metrics on %s", s.addr)
	if err := s.e.Start(s.addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}
