package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"counselbook/models"
	"counselbook/services/session"
)

const sessionContextKey = "session"

// SessionGuard validates the session cookie on every request that carries
// one. A fingerprint mismatch means suspected hijack: the session is already
// destroyed server-side by the manager, so the cookie is cleared and the
// request rejected with SESSION_INVALID. A valid session is attached to the
// gin context and its cookie refreshed (rolling expiry). Requests without a
// cookie, or with a stale one, proceed unauthenticated.
func SessionGuard(mgr *session.Manager, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(session.CookieName)
		if err != nil || id == "" {
			c.Next()
			return
		}

		fingerprint := mgr.Fingerprint(c.GetHeader("User-Agent"))
		sess, err := mgr.Validate(c.Request.Context(), id, fingerprint)
		switch {
		case err == nil:
			SetSessionCookie(c, sess.ID, int(mgr.TTL().Seconds()), secureCookie)
			c.Set(sessionContextKey, sess)
		case errors.Is(err, session.ErrSessionInvalid):
			zap.L().Warn("Session fingerprint mismatch - destroying session", zap.String("ip", ClientIP(c)))
			ClearSessionCookie(c, secureCookie)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "SESSION_INVALID",
				"message": "Session expired or invalidated",
			})
			return
		case errors.Is(err, session.ErrSessionNotFound):
			// Stale cookie; treat as never logged in.
		default:
			zap.L().Error("Session validation failed", zap.Error(err))
		}
		c.Next()
	}
}

// RequireAuth rejects requests that reached this point without an
// authenticated session attached by SessionGuard.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := SessionFrom(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "SESSION_EXPIRED",
				"message": "Your session has expired. Please sign in again.",
			})
			return
		}
		c.Next()
	}
}

// SessionFrom returns the authenticated session attached to the request, if any.
func SessionFrom(c *gin.Context) (models.Session, bool) {
	v, exists := c.Get(sessionContextKey)
	if !exists {
		return models.Session{}, false
	}
	sess, ok := v.(models.Session)
	return sess, ok
}

// SetSessionCookie writes the session cookie: HTTP-only, SameSite=Strict,
// Secure outside development.
func SetSessionCookie(c *gin.Context, id string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(session.CookieName, id, maxAge, "/", "", secure, true)
}

// ClearSessionCookie removes the session cookie from the client.
func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(session.CookieName, "", -1, "/", "", secure, true)
}
