package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/bookello/booking-console/internal/core/domain"
)

func writePair(t *testing.T, dir, token, record string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, tokenFile), []byte(token), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, recordFile), []byte(record), 0o600); err != nil {
		t.Fatal(err)
	}
}

func pairExists(dir string) bool {
	_, tokenErr := os.Stat(filepath.Join(dir, tokenFile))
	_, recordErr := os.Stat(filepath.Join(dir, recordFile))
	return tokenErr == nil || recordErr == nil
}

func TestFileStore_LoadNormalizesRole(t *testing.T) {
	dir := t.TempDir()
	writePair(t, dir, "opaque-token", `{"id":"u1","name":"Alice","email":"a@b.c","role":"ADMIN"}`)

	s := NewFileStore(dir, zerolog.Nop())
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !s.Ready() {
		t.Fatal("store must be ready after Load")
	}

	current := s.Current()
	if current == nil {
		t.Fatal("expected a restored session")
	}
	if current.Role != domain.RoleAdmin {
		t.Fatalf("role must be lowercased on load, got %q", current.Role)
	}
	if s.Token() != "opaque-token" {
		t.Fatalf("token not restored: %q", s.Token())
	}
}

func TestFileStore_LoadMalformedRecordClearsBoth(t *testing.T) {
	dir := t.TempDir()
	writePair(t, dir, "tok", `{"id": not-json`)

	s := NewFileStore(dir, zerolog.Nop())
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("corruption must not surface as an error: %v", err)
	}
	if s.Current() != nil {
		t.Fatal("corrupt record must resolve to anonymous")
	}
	if pairExists(dir) {
		t.Fatal("both persistence entries must be removed")
	}
	if !s.Ready() {
		t.Fatal("store must still become ready")
	}
}

func TestFileStore_LoadHalfPairClearsBoth(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, tokenFile), []byte("orphan"), 0o600); err != nil {
		t.Fatal(err)
	}

	s := NewFileStore(dir, zerolog.Nop())
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if s.Current() != nil || pairExists(dir) {
		t.Fatal("a half pair must be treated as absent and removed")
	}
}

func TestFileStore_LoadExpiredTokenClearsBoth(t *testing.T) {
	dir := t.TempDir()
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := expired.SignedString([]byte("whatever"))
	if err != nil {
		t.Fatal(err)
	}
	writePair(t, dir, signed, `{"id":"u1","role":"customer"}`)

	s := NewFileStore(dir, zerolog.Nop())
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if s.Current() != nil || pairExists(dir) {
		t.Fatal("an expired token must clear the pair")
	}
}

func TestFileStore_SaveThenClearLeavesNoTrace(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir, zerolog.Nop())

	if err := s.Save(context.Background(), domain.Session{ID: "u1", Role: "Customer"}, "tok"); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if err := s.Clear(context.Background()); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if s.Current() != nil || s.Token() != "" || pairExists(dir) {
		t.Fatal("save followed by clear must leave no trace")
	}

	// Clearing again is a no-op, not an error.
	if err := s.Clear(context.Background()); err != nil {
		t.Fatalf("idempotent clear failed: %v", err)
	}
}

func TestFileStore_SaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir, zerolog.Nop())
	if err := s.Save(context.Background(), domain.Session{
		ID: "u1", Name: "Alice", Email: "a@b.c", Role: "SuperAdmin", ProfilePhoto: "p.png",
	}, "tok-1"); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	// A fresh store instance sees what the first persisted.
	reloaded := NewFileStore(dir, zerolog.Nop())
	if err := reloaded.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	current := reloaded.Current()
	if current == nil || current.Role != domain.RoleSuperAdmin || current.ProfilePhoto != "p.png" {
		t.Fatalf("round trip lost data: %+v", current)
	}
	if reloaded.Token() != "tok-1" {
		t.Fatalf("token lost in round trip: %q", reloaded.Token())
	}
}

func TestFileStore_CurrentReturnsCopy(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir, zerolog.Nop())
	_ = s.Save(context.Background(), domain.Session{ID: "u1", Role: "admin"}, "tok")

	first := s.Current()
	first.Role = "mutated"
	if s.Current().Role != domain.RoleAdmin {
		t.Fatal("mutating the returned record must not affect the store")
	}
}
