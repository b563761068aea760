package ports

import (
	"context"

	"github.com/bookello/booking-console/internal/core/domain"
)

// SessionStore owns the persisted token+record pair. It is the only component
// allowed to touch the underlying persistence; everyone else reads through
// Current/Token and writes through Save/Clear.
//
// The pair is a unit: both entries present or both absent. A record that fails
// to parse on Load is cleared and the session degrades to anonymous — never an
// error surfaced to callers.
type SessionStore interface {
	// Load resolves the persisted session, if any. The returned error reports
	// infrastructure failures only (e.g. the store backend is unreachable);
	// corruption is recovered silently. Ready reports true once Load has
	// resolved either way.
	Load(ctx context.Context) error
	Save(ctx context.Context, session domain.Session, token string) error
	Clear(ctx context.Context) error
	Current() *domain.Session
	Token() string
	Ready() bool
}
