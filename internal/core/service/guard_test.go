package service

import (
	"context"
	"testing"

	"github.com/bookello/booking-console/internal/core/domain"
)

func TestGuard_Anonymous(t *testing.T) {
	guard := NewGuard(newMemStore())
	if guard.IsAuthenticated() || guard.IsCustomer() || guard.IsAdmin() || guard.IsSuperAdmin() || guard.CanReachAdminArea() {
		t.Fatal("anonymous session must derive no capabilities")
	}
}

func TestGuard_RoleFlags(t *testing.T) {
	cases := []struct {
		role                  string
		customer, admin, supr bool
	}{
		{domain.RoleCustomer, true, false, false},
		{domain.RoleAdmin, false, true, false},
		{domain.RoleSuperAdmin, false, false, true},
	}
	for _, tc := range cases {
		store := newMemStore()
		_ = store.Save(context.Background(), domain.Session{ID: "u", Role: tc.role}, "tok")
		guard := NewGuard(store)

		if !guard.IsAuthenticated() {
			t.Errorf("role %s: expected authenticated", tc.role)
		}
		if guard.IsCustomer() != tc.customer || guard.IsAdmin() != tc.admin || guard.IsSuperAdmin() != tc.supr {
			t.Errorf("role %s: wrong flags (customer=%v admin=%v superadmin=%v)",
				tc.role, guard.IsCustomer(), guard.IsAdmin(), guard.IsSuperAdmin())
		}
	}
}

func TestGuard_ImpersonationOpensAdminAreaOnly(t *testing.T) {
	store := newMemStore()
	_ = store.Save(context.Background(), domain.Session{
		ID: "adm", Role: domain.RoleAdmin, ImpersonatedBy: domain.RoleSuperAdmin,
	}, "tok")
	guard := NewGuard(store)

	if !guard.CanReachAdminArea() {
		t.Fatal("impersonation must open the admin area")
	}

	// A super-admin mid-swap (role not yet admin) still reaches the admin
	// area through the marker, but IsAdmin stays role-derived.
	_ = store.Save(context.Background(), domain.Session{
		ID: "sa", Role: domain.RoleSuperAdmin, ImpersonatedBy: domain.RoleSuperAdmin,
	}, "tok")
	if guard.IsAdmin() {
		t.Fatal("impersonation must not flip IsAdmin")
	}
	if !guard.CanReachAdminArea() {
		t.Fatal("impersonation marker alone must open the admin area")
	}
}

func TestGuard_RecomputesOnEveryRead(t *testing.T) {
	store := newMemStore()
	_ = store.Save(context.Background(), domain.Session{ID: "u", Role: domain.RoleAdmin}, "tok")
	guard := NewGuard(store)

	if !guard.IsAdmin() {
		t.Fatal("expected admin before clear")
	}
	_ = store.Clear(context.Background())
	if guard.IsAdmin() || guard.IsAuthenticated() {
		t.Fatal("flags must reflect the store immediately after clear")
	}
}
