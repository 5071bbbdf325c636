package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const readinessTimeout = 2 * time.Second

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthRoutes registers liveness and readiness checks.
type HealthRoutes struct {
	store Pinger
}

// NewHealthRoutes constructs the health routes.
func NewHealthRoutes(store Pinger) *HealthRoutes {
	return &HealthRoutes{store: store}
}

// RegisterRoutes registers the health endpoints.
func (h *HealthRoutes) RegisterRoutes(s *echo.Echo) {
	s.GET("/health", h.handleHealth)
	s.GET("/ready", h.handleReady)
}

func (h *HealthRoutes) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HealthRoutes) handleReady(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"error":  err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready", "db": "ok"})
}
