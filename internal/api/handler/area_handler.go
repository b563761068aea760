package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookello/booking-console/internal/core/domain"
	"github.com/bookello/booking-console/internal/core/ports"
)

// AreaHandler serves the entry point of a gated view group. Reaching it at
// all means the route gate granted the navigation; it just confirms who got
// in and where.
type AreaHandler struct {
	store ports.SessionStore
}

func NewAreaHandler(store ports.SessionStore) *AreaHandler {
	return &AreaHandler{store: store}
}

type areaResponse struct {
	Area string          `json:"area"`
	User *domain.Session `json:"user"`
}

// Index renders the landing payload for the given area.
func (h *AreaHandler) Index(area domain.Area) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, areaResponse{
			Area: string(area),
			User: h.store.Current(),
		})
	}
}

type viewResponse struct {
	View     string `json:"view"`
	Redirect string `json:"redirect,omitempty"`
}

// Home is the anonymous landing view; wrong-role navigations end up here.
func (h *AreaHandler) Home(c echo.Context) error {
	return c.JSON(http.StatusOK, viewResponse{View: "home"})
}

// LoginView renders a login form descriptor. The redirect query parameter,
// when present, is the location to return to after authentication.
func (h *AreaHandler) LoginView(view string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, viewResponse{
			View:     view,
			Redirect: c.QueryParam("redirect"),
		})
	}
}
