// Package middleware adapts the route gate's decisions to Echo. The gate
// itself is framework-free; this layer only maps the three decision kinds to
// HTTP.
package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookello/booking-console/internal/api/metrics"
	"github.com/bookello/booking-console/internal/core/domain"
	"github.com/bookello/booking-console/internal/core/service"
)

// Gate protects a view group. Every request re-evaluates the gate — a logout
// takes effect on the next navigation, no decision is cached.
//
// Mapping: Pending → 503 with a retry hint (the session store has not
// resolved yet), Redirect → 302, Grant → next handler.
func Gate(gate *service.Gate, area domain.Area) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decision := gate.Decide(area, c.Request().URL.RequestURI())
			metrics.GateDecisionsTotal.WithLabelValues(string(area), string(decision.Kind)).Inc()

			switch decision.Kind {
			case domain.DecisionPending:
				c.Response().Header().Set("Retry-After", "1")
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "loading"})
			case domain.DecisionRedirect:
				return c.Redirect(http.StatusFound, decision.Target)
			}
			return next(c)
		}
	}
}
