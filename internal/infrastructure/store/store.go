// Package store provides the persistence implementations of the session
// store port: a file-backed store for single-user console deployments and a
// Redis-backed store for kiosks. Both keep the token+record pair as a unit
// under fixed keys and recover any corruption silently to anonymous.
package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bookello/booking-console/internal/core/domain"
)

// decodeSession parses a persisted record and sanity-checks its token. Every
// failure is reported as domain.ErrSessionCorrupt so callers clear the pair
// and degrade to anonymous rather than surfacing an error.
func decodeSession(raw []byte, token string) (domain.Session, error) {
	var s domain.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return domain.Session{}, fmt.Errorf("%w: %v", domain.ErrSessionCorrupt, err)
	}
	if s.ID == "" {
		return domain.Session{}, fmt.Errorf("%w: record has no id", domain.ErrSessionCorrupt)
	}
	if tokenExpired(token) {
		return domain.Session{}, fmt.Errorf("%w: bearer token expired", domain.ErrSessionCorrupt)
	}
	return s.Normalize(), nil
}

// tokenExpired inspects the token's exp claim without verifying the
// signature — verification is the backend's job, the console only avoids
// resurrecting a session it knows is dead. Opaque (non-JWT) tokens pass.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
