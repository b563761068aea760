package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/bookello/booking-console/internal/core/ports"
)

// HealthHandler serves the liveness and readiness probes. Readiness requires
// the session store to have resolved its initial load; when the session
// backend is Redis, connectivity is checked too.
type HealthHandler struct {
	store ports.SessionStore
	redis *redis.Client // nil when the file store is in use
}

func NewHealthHandler(store ports.SessionStore, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{store: store, redis: rdb}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	deps := make(map[string]dependencyStatus)
	healthy := true

	if h.store.Ready() {
		deps["session_store"] = dependencyStatus{Status: "ok"}
	} else {
		deps["session_store"] = dependencyStatus{Status: "pending", Error: "initial load has not resolved"}
		healthy = false
	}

	if h.redis != nil {
		if _, err := h.redis.Ping(ctx).Result(); err != nil {
			deps["redis"] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
		} else {
			deps["redis"] = dependencyStatus{Status: "ok"}
		}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
