package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"counselbook/models"
)

// CookieName is the session cookie's name. It is a fixed token distinct from
// any framework default.
const CookieName = "counselor.sid"

// Manager issues, validates and destroys sessions. Sessions live in the
// configured Store under an opaque random id; each one is bound to a client
// fingerprint and carries a rolling expiry that resets on every validated
// request.
type Manager struct {
	store  Store
	ttl    time.Duration
	secret string
}

// NewManager creates a session manager over the given store. secret salts
// the client fingerprint hash.
func NewManager(store Store, ttl time.Duration, secret string) *Manager {
	return &Manager{store: store, ttl: ttl, secret: secret}
}

// TTL returns the session lifetime, which is also the cookie Max-Age.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Fingerprint derives the client fingerprint from an identifying request
// header (the User-Agent).
func (m *Manager) Fingerprint(userAgent string) string {
	sum := sha256.Sum256([]byte(m.secret + userAgent))
	return hex.EncodeToString(sum[:])
}

// Create issues a fresh session for the user and persists it.
func (m *Manager) Create(ctx context.Context, userID int64, username, fingerprint string) (models.Session, error) {
	sess := models.Session{
		ID:          uuid.New().String(),
		UserID:      userID,
		Username:    username,
		Fingerprint: fingerprint,
		ExpiresAt:   time.Now().Add(m.ttl),
	}
	if err := m.store.Save(ctx, sess, m.ttl); err != nil {
		return models.Session{}, fmt.Errorf("failed to create session: %w", err)
	}
	return sess, nil
}

// Validate looks up the session and checks the client fingerprint. A
// mismatch destroys the session server-side and returns ErrSessionInvalid;
// an expired or unknown id returns ErrSessionNotFound. On success the
// rolling expiry is refreshed and the refreshed session value is returned.
func (m *Manager) Validate(ctx context.Context, id, fingerprint string) (models.Session, error) {
	sess, err := m.store.Get(ctx, id)
	if err != nil {
		return models.Session{}, err
	}

	if sess.Expired(time.Now()) {
		_ = m.store.Delete(ctx, id)
		return models.Session{}, ErrSessionNotFound
	}

	if sess.Fingerprint != fingerprint {
		_ = m.store.Delete(ctx, id)
		return models.Session{}, ErrSessionInvalid
	}

	refreshed := sess
	refreshed.ExpiresAt = time.Now().Add(m.ttl)
	if err := m.store.Save(ctx, refreshed, m.ttl); err != nil {
		return models.Session{}, fmt.Errorf("failed to refresh session: %w", err)
	}
	return refreshed, nil
}

// Destroy removes the session. Destroying a session that does not exist is
// not an error.
func (m *Manager) Destroy(ctx context.Context, id string) error {
	return m.store.Delete(ctx, id)
}
