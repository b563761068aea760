package ports

import (
	"context"
	"io"

	"github.com/bookello/booking-console/internal/core/domain"
)

// RegisterInput is the new-account payload forwarded to the backend.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     string
}

// AuthResult is a backend authentication response: the user record plus the
// bearer token to attach to subsequent calls.
type AuthResult struct {
	Session domain.Session
	Token   string
}

// BackendGateway is the REST backend collaborator. Implementations translate
// backend error bodies into domain errors; they never persist anything.
type BackendGateway interface {
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	UpdateProfile(ctx context.Context, token string, patch domain.SessionPatch) (domain.SessionPatch, error)
	UploadPhoto(ctx context.Context, token, filename string, photo io.Reader) (string, error)
	Impersonate(ctx context.Context, token, tenantID string) (*AuthResult, error)
	StopImpersonation(ctx context.Context, token string) (*AuthResult, error)
}
