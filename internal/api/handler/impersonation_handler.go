package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookello/booking-console/internal/core/ports"
)

// ImpersonationHandler lets a super-admin act as a tenant admin. The routes
// live outside the gated groups on purpose: starting requires the superadmin
// role, but stopping must work while the session carries the admin role of
// the impersonated tenant — the service enforces both.
type ImpersonationHandler struct {
	auth ports.Authenticator
}

func NewImpersonationHandler(auth ports.Authenticator) *ImpersonationHandler {
	return &ImpersonationHandler{auth: auth}
}

// Start swaps the session for a tenant-scoped admin session marked with
// impersonated_by.
//
// @Summary      Impersonate a tenant admin
// @Tags         impersonation
// @Produce      json
// @Param        tenantID  path      string  true  "Tenant identifier"
// @Success      200       {object}  sessionResponse
// @Failure      401       {object}  map[string]string
// @Failure      403       {object}  map[string]string
// @Router       /impersonation/{tenantID} [post]
func (h *ImpersonationHandler) Start(c echo.Context) error {
	user, err := h.auth.Impersonate(c.Request().Context(), c.Param("tenantID"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{User: user})
}

// Stop restores the super-admin's own session.
//
// @Summary      Stop impersonating
// @Tags         impersonation
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /impersonation [delete]
func (h *ImpersonationHandler) Stop(c echo.Context) error {
	user, err := h.auth.StopImpersonation(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{User: user})
}
