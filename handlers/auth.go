package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"counselbook/middleware"
	"counselbook/services/auth"
	"counselbook/services/session"
	"counselbook/utils"
)

// AuthHandler serves registration, login, logout and session checks.
type AuthHandler struct {
	auth         auth.AuthService
	sessions     *session.Manager
	secureCookie bool
	logger       *zap.Logger
}

// NewAuthHandler wires the auth endpoints.
func NewAuthHandler(authSvc auth.AuthService, sessions *session.Manager, secureCookie bool, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: authSvc, sessions: sessions, secureCookie: secureCookie, logger: logger}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates an account and signs the new user in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	ip := middleware.ClientIP(c)
	user, err := h.auth.Register(c.Request.Context(), req.Username, req.Password, ip)
	if err != nil {
		var vErr auth.ValidationError
		switch {
		case errors.As(err, &vErr):
			utils.JSONError(c, http.StatusBadRequest, vErr.Message)
		case errors.Is(err, auth.ErrAccountLimit):
			utils.JSONError(c, http.StatusForbidden, "Account limit reached for this IP address")
		case errors.Is(err, auth.ErrDuplicateUsername):
			utils.JSONError(c, http.StatusConflict, "Username already exists")
		default:
			h.logger.Error("Registration failed", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Registration failed")
		}
		return
	}

	if err := h.startSession(c, user.ID, user.Username); err != nil {
		h.logger.Error("Registration: session creation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Registration failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Account created successfully",
	})
}

// Login authenticates credentials and issues a session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid credentials")
		return
	}

	user, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			utils.JSONError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.logger.Error("Login failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Login failed")
		return
	}

	if err := h.startSession(c, user.ID, user.Username); err != nil {
		h.logger.Error("Login: session creation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Login failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Signed in successfully",
	})
}

// Logout destroys the current session, if any, and clears the cookie. It is
// idempotent.
func (h *AuthHandler) Logout(c *gin.Context) {
	if id, err := c.Cookie(session.CookieName); err == nil && id != "" {
		if err := h.sessions.Destroy(c.Request.Context(), id); err != nil {
			h.logger.Warn("Logout: session destroy failed", zap.Error(err))
		}
	}
	middleware.ClearSessionCookie(c, h.secureCookie)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Session reports whether the request carries an authenticated session.
func (h *AuthHandler) Session(c *gin.Context) {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"user": gin.H{
			"id":       sess.UserID,
			"username": sess.Username,
		},
	})
}

func (h *AuthHandler) startSession(c *gin.Context, userID int64, username string) error {
	fingerprint := h.sessions.Fingerprint(c.GetHeader("User-Agent"))
	sess, err := h.sessions.Create(c.Request.Context(), userID, username, fingerprint)
	if err != nil {
		return err
	}
	middleware.SetSessionCookie(c, sess.ID, int(h.sessions.TTL().Seconds()), h.secureCookie)
	return nil
}
