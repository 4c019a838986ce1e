package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"counselbook/handlers"
	"counselbook/middleware"
)

// Limiters holds the per-endpoint-group rate limit middleware. The global
// limiter is installed on the engine itself by the caller.
type Limiters struct {
	Auth    gin.HandlerFunc
	Booking gin.HandlerFunc
}

// RegisterAuthRoutes registers registration, login, logout and session-check
// endpoints. Register and login sit behind the tighter auth limiter.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle, lim Limiters) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", lim.Auth, hb.Auth.Register)
		api.POST("/login", lim.Auth, hb.Auth.Login)
		api.POST("/logout", hb.Auth.Logout)
		api.GET("/session", hb.Auth.Session)
	}
}

// RegisterCounselorRoutes registers the public roster listing and the
// session-protected availability endpoint.
func RegisterCounselorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/counselors")
	{
		api.GET("", hb.Counselors.List)
		api.GET("/:id/availability", middleware.RequireAuth(), hb.Counselors.Availability)
	}
}

// RegisterBookingRoutes registers the booking endpoints. All of them require
// an authenticated session; creation additionally sits behind the booking
// limiter.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle, lim Limiters) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.RequireAuth())
		api.POST("", lim.Booking, hb.Bookings.Create)
		api.GET("", hb.Bookings.List)
		api.DELETE("/:id", hb.Bookings.Delete)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes registers every route group plus the API 404 fallback.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, lim Limiters) {
	RegisterAuthRoutes(r, hb, lim)
	RegisterCounselorRoutes(r, hb)
	RegisterBookingRoutes(r, hb, lim)
	RegisterHealthRoute(r)

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
			return
		}
		c.Status(http.StatusNotFound)
	})
}
