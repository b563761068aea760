package domain

import (
	"errors"
	"strings"
)

const (
	RoleCustomer   = "customer"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

var ErrCredentialsInvalid = errors.New("invalid credentials")
var ErrRegistrationMalformed = errors.New("registration response missing token")
var ErrSessionCorrupt = errors.New("persisted session is corrupt")
var ErrRoleMismatch = errors.New("role not permitted for this area")
var ErrNoSession = errors.New("no active session")

// CanonicalRole lowercases a backend-supplied role tag. Comparisons elsewhere
// never use a raw backend value; an empty role stays empty.
func CanonicalRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}

// Session is the authenticated identity held by this console instance.
// At most one is active per running process.
type Session struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	ProfilePhoto   string `json:"profile_photo,omitempty"`
	ImpersonatedBy string `json:"impersonated_by,omitempty"`
}

// Normalize returns a copy with the role in canonical form.
func (s Session) Normalize() Session {
	s.Role = CanonicalRole(s.Role)
	return s
}

// Impersonated reports whether a super-admin is acting as a tenant admin
// through this session.
func (s Session) Impersonated() bool {
	return s.ImpersonatedBy == RoleSuperAdmin
}

// SessionPatch is a partial update applied over an existing session.
// Nil fields are preserved; set fields overwrite.
type SessionPatch struct {
	Name           *string `json:"name,omitempty"`
	Email          *string `json:"email,omitempty"`
	Role           *string `json:"role,omitempty"`
	ProfilePhoto   *string `json:"profile_photo,omitempty"`
	ImpersonatedBy *string `json:"impersonated_by,omitempty"`
}

// Apply merges the patch over s. The role, if supplied, is re-canonicalized
// regardless of the casing the backend returned.
func (p SessionPatch) Apply(s Session) Session {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Email != nil {
		s.Email = *p.Email
	}
	if p.Role != nil {
		s.Role = CanonicalRole(*p.Role)
	}
	if p.ProfilePhoto != nil {
		s.ProfilePhoto = *p.ProfilePhoto
	}
	if p.ImpersonatedBy != nil {
		s.ImpersonatedBy = *p.ImpersonatedBy
	}
	return s
}
