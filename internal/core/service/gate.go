package service

import (
	"net/url"

	"github.com/bookello/booking-console/internal/core/domain"
	"github.com/bookello/booking-console/internal/core/ports"
)

const (
	customerLoginPath = "/login"
	adminLoginPath    = "/admin/login"
	homePath          = "/"
)

// Gate decides, per navigation attempt into a protected view group, whether
// to render, redirect, or hold. Decisions are computed fresh on every call and
// never fail — the outcome is always one of the three domain.Decision kinds.
type Gate struct {
	store ports.SessionStore
	guard *Guard
}

func NewGate(store ports.SessionStore, guard *Guard) *Gate {
	return &Gate{store: store, guard: guard}
}

// Decide evaluates a navigation to requested (the originally-asked path,
// preserved across the login redirect for the customer area) against area.
func (g *Gate) Decide(area domain.Area, requested string) domain.Decision {
	if !g.store.Ready() {
		return domain.Pending()
	}

	if !g.guard.IsAuthenticated() {
		switch area {
		case domain.AreaCustomer:
			return domain.Redirect(withReturnTo(customerLoginPath, requested))
		default:
			// Admin and super-admin areas share the admin login; there is no
			// separate "must be super-admin" message at this stage.
			return domain.Redirect(adminLoginPath)
		}
	}

	if g.allowed(area) {
		return domain.Grant()
	}
	return domain.Redirect(homePath)
}

func (g *Gate) allowed(area domain.Area) bool {
	switch area {
	case domain.AreaCustomer:
		return g.guard.IsCustomer()
	case domain.AreaAdmin:
		return g.guard.CanReachAdminArea()
	case domain.AreaSuperAdmin:
		return g.guard.IsSuperAdmin()
	}
	return false
}

// withReturnTo appends the originally-requested location so the login view can
// return the user after authentication.
func withReturnTo(login, requested string) string {
	if requested == "" || requested == login {
		return login
	}
	return login + "?redirect=" + url.QueryEscape(requested)
}
