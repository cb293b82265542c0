package session

import (
	"context"
	"time"
)

// Session is the per-client authentication state the server holds.
// The client carries only the opaque ID in its cookie.
type Session struct {
	ID            string    // opaque identifier, also the cookie value
	Username      string    // set on successful login
	Authenticated bool      // every protected route gates on this flag
	ExpiresAt     time.Time // absolute expiry, enforced by the store
}

// Store defines how sessions are stored and retrieved. Get returns
// (nil, nil) for unknown or expired sessions; the expiry policy belongs to
// the implementation.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Destroy(ctx context.Context, sessionID string) error
}
