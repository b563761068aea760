package ports

import (
	"context"
	"io"

	"github.com/bookello/booking-console/internal/core/domain"
)

type Authenticator interface {
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	Register(ctx context.Context, in RegisterInput) (*domain.Session, error)
	Logout(ctx context.Context)
	UpdateUser(ctx context.Context, patch domain.SessionPatch) (*domain.Session, error)
	UploadPhoto(ctx context.Context, filename string, photo io.Reader) (*domain.Session, error)
	Impersonate(ctx context.Context, tenantID string) (*domain.Session, error)
	StopImpersonation(ctx context.Context) (*domain.Session, error)
}
