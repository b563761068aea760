package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookello/booking-console/internal/core/domain"
	"github.com/bookello/booking-console/internal/core/ports"
	"github.com/bookello/booking-console/internal/core/service"
)

// SessionHandler exposes the current session and its derived capability
// flags. Flags are recomputed on every request — a logout is visible on the
// very next read.
type SessionHandler struct {
	store ports.SessionStore
	guard *service.Guard
}

func NewSessionHandler(store ports.SessionStore, guard *service.Guard) *SessionHandler {
	return &SessionHandler{store: store, guard: guard}
}

type currentSessionResponse struct {
	Ready             bool            `json:"ready"`
	Authenticated     bool            `json:"authenticated"`
	IsCustomer        bool            `json:"is_customer"`
	IsAdmin           bool            `json:"is_admin"`
	IsSuperAdmin      bool            `json:"is_superadmin"`
	CanReachAdminArea bool            `json:"can_reach_admin_area"`
	User              *domain.Session `json:"user"`
}

// Current returns the active session record (never the token) and the guard
// flags derived from it.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Success      200  {object}  currentSessionResponse
// @Router       /session [get]
func (h *SessionHandler) Current(c echo.Context) error {
	return c.JSON(http.StatusOK, currentSessionResponse{
		Ready:             h.store.Ready(),
		Authenticated:     h.guard.IsAuthenticated(),
		IsCustomer:        h.guard.IsCustomer(),
		IsAdmin:           h.guard.IsAdmin(),
		IsSuperAdmin:      h.guard.IsSuperAdmin(),
		CanReachAdminArea: h.guard.CanReachAdminArea(),
		User:              h.store.Current(),
	})
}
