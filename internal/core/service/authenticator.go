package service

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/bookello/booking-console/internal/core/domain"
	"github.com/bookello/booking-console/internal/core/ports"
)

// Authenticator turns credentials into an active session. All persistence goes
// through the SessionStore; all network traffic goes through the
// BackendGateway. Re-entrancy (double submits) is the caller's concern.
type Authenticator struct {
	backend ports.BackendGateway
	store   ports.SessionStore
	log     zerolog.Logger
}

func NewAuthenticator(backend ports.BackendGateway, store ports.SessionStore, log zerolog.Logger) *Authenticator {
	return &Authenticator{backend: backend, store: store, log: log}
}

// Login exchanges credentials for a session and persists record+token as a
// unit. A backend rejection surfaces as domain.ErrCredentialsInvalid carrying
// the backend message; the existing session (if any) is left untouched.
func (a *Authenticator) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	if email == "" || password == "" {
		return nil, domain.ErrCredentialsInvalid
	}

	res, err := a.backend.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	session := res.Session.Normalize()
	if err := a.store.Save(ctx, session, res.Token); err != nil {
		return nil, err
	}
	return &session, nil
}

// Register creates an account and logs it in. The backend must return a token
// alongside the record; its absence is domain.ErrRegistrationMalformed and
// nothing is persisted. A missing role is tolerated — the record simply
// carries an empty role until the backend supplies one.
func (a *Authenticator) Register(ctx context.Context, in ports.RegisterInput) (*domain.Session, error) {
	res, err := a.backend.Register(ctx, in)
	if err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, domain.ErrRegistrationMalformed
	}

	session := res.Session.Normalize()
	if err := a.store.Save(ctx, session, res.Token); err != nil {
		return nil, err
	}
	return &session, nil
}

// Logout clears the store unconditionally. It never fails: a store that cannot
// be cleared is logged and the in-memory session is gone regardless.
func (a *Authenticator) Logout(ctx context.Context) {
	if err := a.store.Clear(ctx); err != nil {
		a.log.Error().Err(err).Msg("session clear failed during logout")
	}
}

// UpdateUser merges a partial record over the current session and persists the
// result with the existing token. Fields absent from the patch are preserved;
// the role, if present, is re-canonicalized whatever casing was supplied.
func (a *Authenticator) UpdateUser(ctx context.Context, patch domain.SessionPatch) (*domain.Session, error) {
	current := a.store.Current()
	if current == nil {
		return nil, domain.ErrNoSession
	}

	merged := patch.Apply(*current)
	if err := a.store.Save(ctx, merged, a.store.Token()); err != nil {
		return nil, err
	}
	return &merged, nil
}

// UploadPhoto pushes an avatar to the backend and folds the returned reference
// into the session, so consumers observe a consistent record without a
// re-login.
func (a *Authenticator) UploadPhoto(ctx context.Context, filename string, photo io.Reader) (*domain.Session, error) {
	if a.store.Current() == nil {
		return nil, domain.ErrNoSession
	}

	ref, err := a.backend.UploadPhoto(ctx, a.store.Token(), filename, photo)
	if err != nil {
		return nil, err
	}
	return a.UpdateUser(ctx, domain.SessionPatch{ProfilePhoto: &ref})
}

// Impersonate swaps the super-admin session for a tenant-scoped admin session
// marked with impersonated_by. The backend issues the replacement token.
func (a *Authenticator) Impersonate(ctx context.Context, tenantID string) (*domain.Session, error) {
	current := a.store.Current()
	if current == nil {
		return nil, domain.ErrNoSession
	}
	if current.Role != domain.RoleSuperAdmin {
		return nil, domain.ErrRoleMismatch
	}

	res, err := a.backend.Impersonate(ctx, a.store.Token(), tenantID)
	if err != nil {
		return nil, err
	}

	session := res.Session.Normalize()
	session.ImpersonatedBy = domain.RoleSuperAdmin
	if err := a.store.Save(ctx, session, res.Token); err != nil {
		return nil, err
	}
	return &session, nil
}

// StopImpersonation restores the super-admin's own session.
func (a *Authenticator) StopImpersonation(ctx context.Context) (*domain.Session, error) {
	current := a.store.Current()
	if current == nil {
		return nil, domain.ErrNoSession
	}
	if !current.Impersonated() {
		return nil, domain.ErrRoleMismatch
	}

	res, err := a.backend.StopImpersonation(ctx, a.store.Token())
	if err != nil {
		return nil, err
	}

	session := res.Session.Normalize()
	if err := a.store.Save(ctx, session, res.Token); err != nil {
		return nil, err
	}
	return &session, nil
}
