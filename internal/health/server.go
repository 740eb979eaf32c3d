// Package health exposes the keep-alive HTTP endpoint hosting
// platforms probe to keep the bot instance awake.
package health

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/uma-mfg/societybot/internal/logger"
)

// Server is a minimal HTTP responder answering 200 OK on the probe paths.
type Server struct {
	echo *echo.Echo
	port int
}

// NewServer builds the probe server on the given port.
func NewServer(port int) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	ok := func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	}
	e.GET("/", ok)
	e.HEAD("/", ok)
	e.GET("/healthz", ok)

	return &Server{echo: e, port: port}
}

// Handler exposes the HTTP handler for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until the context is cancelled, then shuts down
// gracefully. It always returns the reason the serve loop stopped.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.HC.Info("health endpoint up",
			slog.String("event", "health.start"),
			slog.Int("port", s.port),
		)
		errCh <- s.echo.Start(fmt.Sprintf(":%d", s.port))
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			logger.HC.Error("health shutdown failed",
				slog.String("event", "health.stop"),
				slog.String("err", err.Error()),
			)
			return err
		}
		logger.HC.Info("health endpoint stopped", slog.String("event", "health.stop"))
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
