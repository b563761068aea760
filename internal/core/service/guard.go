package service

import (
	"github.com/bookello/booking-console/internal/core/domain"
	"github.com/bookello/booking-console/internal/core/ports"
)

// Guard derives capability flags from the current session. Every flag reads
// the store fresh — a logout is visible on the very next call, there is no
// caching across session changes.
type Guard struct {
	store ports.SessionStore
}

func NewGuard(store ports.SessionStore) *Guard {
	return &Guard{store: store}
}

func (g *Guard) IsAuthenticated() bool {
	return g.store.Current() != nil
}

func (g *Guard) IsCustomer() bool {
	return g.hasRole(domain.RoleCustomer)
}

func (g *Guard) IsAdmin() bool {
	return g.hasRole(domain.RoleAdmin)
}

func (g *Guard) IsSuperAdmin() bool {
	return g.hasRole(domain.RoleSuperAdmin)
}

// CanReachAdminArea allows the admin view group to a real admin or to a
// super-admin with an active impersonation. Impersonation does not flip
// IsAdmin itself; it only opens the admin area.
func (g *Guard) CanReachAdminArea() bool {
	s := g.store.Current()
	if s == nil {
		return false
	}
	return s.Role == domain.RoleAdmin || s.Impersonated()
}

func (g *Guard) hasRole(role string) bool {
	s := g.store.Current()
	return s != nil && s.Role == role
}
