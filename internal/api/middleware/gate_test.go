package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bookello/booking-console/internal/core/domain"
	"github.com/bookello/booking-console/internal/core/service"
	"github.com/bookello/booking-console/internal/infrastructure/store"
)

func newGate(t *testing.T, session *domain.Session, load bool) *service.Gate {
	t.Helper()
	s := store.NewFileStore(t.TempDir(), zerolog.Nop())
	if load {
		if err := s.Load(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	if session != nil {
		if err := s.Save(context.Background(), *session, "tok"); err != nil {
			t.Fatal(err)
		}
	}
	return service.NewGate(s, service.NewGuard(s))
}

func request(t *testing.T, gate *service.Gate, area domain.Area, path string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Gate(gate, area)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec, called
}

func TestGateMiddleware_PendingRenders503(t *testing.T) {
	gate := newGate(t, nil, false) // Load never ran

	rec, called := request(t, gate, domain.AreaAdmin, "/admin")
	if called {
		t.Fatal("pending must not reach the handler")
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("pending response must carry a retry hint")
	}
	if rec.Header().Get("Location") != "" {
		t.Fatal("no redirect may be issued while pending")
	}
}

func TestGateMiddleware_AnonymousRedirectsToAdminLogin(t *testing.T) {
	gate := newGate(t, nil, true)

	rec, called := request(t, gate, domain.AreaAdmin, "/admin/schedule")
	if called {
		t.Fatal("anonymous must not reach the handler")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin/login" {
		t.Fatalf("expected /admin/login, got %q", loc)
	}
}

func TestGateMiddleware_AnonymousCustomerKeepsLocation(t *testing.T) {
	gate := newGate(t, nil, true)

	rec, _ := request(t, gate, domain.AreaCustomer, "/customer/bookings")
	if loc := rec.Header().Get("Location"); loc != "/login?redirect=%2Fcustomer%2Fbookings" {
		t.Fatalf("expected login redirect preserving location, got %q", loc)
	}
}

func TestGateMiddleware_WrongRoleRedirectsHome(t *testing.T) {
	gate := newGate(t, &domain.Session{ID: "u1", Role: domain.RoleCustomer}, true)

	rec, called := request(t, gate, domain.AreaAdmin, "/admin")
	if called {
		t.Fatal("wrong role must not reach the handler")
	}
	if loc := rec.Header().Get("Location"); rec.Code != http.StatusFound || loc != "/" {
		t.Fatalf("expected redirect home, got %d %q", rec.Code, loc)
	}
}

func TestGateMiddleware_AdminGranted(t *testing.T) {
	gate := newGate(t, &domain.Session{ID: "adm", Role: domain.RoleAdmin}, true)

	rec, called := request(t, gate, domain.AreaAdmin, "/admin")
	if !called {
		t.Fatal("admin must reach the handler")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
