package session

import (
	"context"
	"errors"
	"time"

	"counselbook/models"
)

var (
	// ErrSessionNotFound is returned when no live session exists for the id.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionInvalid is returned when a session's client fingerprint no
	// longer matches; the session is destroyed when this happens.
	ErrSessionInvalid = errors.New("session invalidated")
)

// Store persists sessions keyed by their opaque id. Implementations must
// treat Delete of a missing session as a no-op.
type Store interface {
	// Get retrieves a session by id.
	Get(ctx context.Context, id string) (models.Session, error)
	// Save writes the session with the given time-to-live, replacing any
	// previous value under the same id.
	Save(ctx context.Context, sess models.Session, ttl time.Duration) error
	// Delete removes the session.
	Delete(ctx context.Context, id string) error
}
