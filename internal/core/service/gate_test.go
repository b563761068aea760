package service

import (
	"context"
	"testing"

	"github.com/bookello/booking-console/internal/core/domain"
)

func newGateWith(session *domain.Session, ready bool) (*Gate, *memStore) {
	store := newMemStore()
	store.ready = ready
	if session != nil {
		_ = store.Save(context.Background(), *session, "tok")
	}
	return NewGate(store, NewGuard(store)), store
}

func TestGate_PendingBeforeLoad(t *testing.T) {
	gate, _ := newGateWith(nil, false)
	for _, area := range []domain.Area{domain.AreaCustomer, domain.AreaAdmin, domain.AreaSuperAdmin} {
		if d := gate.Decide(area, "/anywhere"); d.Kind != domain.DecisionPending {
			t.Errorf("area %s: expected pending before load, got %+v", area, d)
		}
	}
}

func TestGate_AnonymousRedirects(t *testing.T) {
	gate, _ := newGateWith(nil, true)

	d := gate.Decide(domain.AreaCustomer, "/customer/bookings")
	if d.Kind != domain.DecisionRedirect || d.Target != "/login?redirect=%2Fcustomer%2Fbookings" {
		t.Fatalf("customer gate: expected login redirect preserving location, got %+v", d)
	}

	if d := gate.Decide(domain.AreaAdmin, "/admin/schedule"); d.Kind != domain.DecisionRedirect || d.Target != "/admin/login" {
		t.Fatalf("admin gate: expected /admin/login, got %+v", d)
	}

	// Super-admin shares the admin login; no dedicated message at this stage.
	if d := gate.Decide(domain.AreaSuperAdmin, "/superadmin/tenants"); d.Kind != domain.DecisionRedirect || d.Target != "/admin/login" {
		t.Fatalf("superadmin gate: expected /admin/login, got %+v", d)
	}
}

func TestGate_WrongRoleRedirectsHome(t *testing.T) {
	gate, _ := newGateWith(&domain.Session{ID: "u", Role: domain.RoleCustomer}, true)
	if d := gate.Decide(domain.AreaAdmin, "/admin"); d.Kind != domain.DecisionRedirect || d.Target != "/" {
		t.Fatalf("expected home redirect, got %+v", d)
	}
}

func TestGate_Grants(t *testing.T) {
	cases := []struct {
		role string
		area domain.Area
	}{
		{domain.RoleCustomer, domain.AreaCustomer},
		{domain.RoleAdmin, domain.AreaAdmin},
		{domain.RoleSuperAdmin, domain.AreaSuperAdmin},
	}
	for _, tc := range cases {
		gate, _ := newGateWith(&domain.Session{ID: "u", Role: tc.role}, true)
		if d := gate.Decide(tc.area, "/x"); d.Kind != domain.DecisionGrant {
			t.Errorf("role %s on area %s: expected grant, got %+v", tc.role, tc.area, d)
		}
	}
}

func TestGate_AdminGrantWithoutImpersonation(t *testing.T) {
	// A plain admin session, marker absent, is granted before any
	// impersonation logic comes into play.
	gate, _ := newGateWith(&domain.Session{ID: "adm", Role: domain.RoleAdmin}, true)
	if d := gate.Decide(domain.AreaAdmin, "/admin"); d.Kind != domain.DecisionGrant {
		t.Fatalf("expected grant, got %+v", d)
	}
}

func TestGate_ImpersonationOpensAdminArea(t *testing.T) {
	gate, _ := newGateWith(&domain.Session{
		ID: "adm", Role: domain.RoleAdmin, ImpersonatedBy: domain.RoleSuperAdmin,
	}, true)
	if d := gate.Decide(domain.AreaAdmin, "/admin"); d.Kind != domain.DecisionGrant {
		t.Fatalf("expected grant for impersonating session, got %+v", d)
	}
	// But not the super-admin area: the session's role is admin now.
	if d := gate.Decide(domain.AreaSuperAdmin, "/superadmin"); d.Kind != domain.DecisionRedirect || d.Target != "/" {
		t.Fatalf("expected home redirect, got %+v", d)
	}
}

func TestGate_NoDecisionCaching(t *testing.T) {
	gate, store := newGateWith(&domain.Session{ID: "u", Role: domain.RoleAdmin}, true)

	if d := gate.Decide(domain.AreaAdmin, "/admin"); d.Kind != domain.DecisionGrant {
		t.Fatalf("expected grant before logout, got %+v", d)
	}

	// Logout while "on" the admin page: the very next evaluation must deny.
	_ = store.Clear(context.Background())
	if d := gate.Decide(domain.AreaAdmin, "/admin"); d.Kind != domain.DecisionRedirect || d.Target != "/admin/login" {
		t.Fatalf("expected re-evaluation to deny after logout, got %+v", d)
	}
}
