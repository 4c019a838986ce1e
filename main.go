package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"golang.org/x/time/rate"

	"counselbook/config"
	"counselbook/database"
	bookingRepo "counselbook/database/repository/booking"
	counselorRepo "counselbook/database/repository/counselor"
	userRepo "counselbook/database/repository/user"
	"counselbook/handlers"
	"counselbook/middleware"
	"counselbook/routes"
	"counselbook/services/auth"
	"counselbook/services/booking"
	"counselbook/services/session"
	"counselbook/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.GetLogger().Sugar().Fatalf("main: failed to load config: %v", err)
	}
	utils.InitLogger(cfg.Env)
	logger := utils.GetLogger()

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to open database: %v", err)
	}
	defer db.Close()

	seeded, err := database.SeedCounselors(db)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to seed counselors: %v", err)
	}
	if seeded > 0 {
		logger.Sugar().Infof("Seeded counselors table with %d rows", seeded)
	}

	// Session store: in-process by default, Redis when configured.
	var store session.Store
	if cfg.SessionStore == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisSessionDB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			logger.Sugar().Fatalf("main: failed to connect to Redis: %v", err)
		}
		store = session.NewRedisStore(client)
	} else {
		store = session.NewMemoryStore()
	}
	sessions := session.NewManager(store, time.Duration(cfg.SessionTTLMin)*time.Minute, cfg.SessionSecret)

	// Repositories.
	users := userRepo.NewSQLiteUserRepo(db)
	counselors := counselorRepo.NewSQLiteCounselorRepo(db)
	bookings := bookingRepo.NewSQLiteBookingRepo(db)

	// Services.
	authService := &auth.DefaultAuthService{
		Repo:             users,
		Hasher:           utils.NewArgon2(),
		MaxAccountsPerIP: cfg.MaxAccountsPerIP,
		Logger:           logger,
	}
	bookingService := booking.NewDefaultBookingService(bookings, counselors, logger)

	// Handlers.
	secureCookie := cfg.IsProduction()
	handlerBundle := &handlers.HandlerBundle{
		Auth:       handlers.NewAuthHandler(authService, sessions, secureCookie, logger),
		Counselors: handlers.NewCounselorHandler(counselors, bookingService, logger),
		Bookings:   handlers.NewBookingHandler(bookingService, logger),
	}

	// Create the Gin router.
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler(cfg.IsProduction()))
	router.Use(gin.Logger())
	router.Use(middleware.SecureHeaders())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.RateLimit(
		rate.Every(15*time.Minute/time.Duration(cfg.GlobalRatePer15Min)),
		cfg.GlobalRatePer15Min,
		"Too many requests from this IP, please try again later.",
	))
	router.Use(middleware.SessionGuard(sessions, secureCookie))

	limiters := routes.Limiters{
		Auth: middleware.RateLimit(
			rate.Every(15*time.Minute/time.Duration(cfg.AuthRatePer15Min)),
			cfg.AuthRatePer15Min,
			"Too many authentication attempts, please try again later.",
		),
		Booking: middleware.RateLimit(
			rate.Every(time.Minute/time.Duration(cfg.BookingRatePerMin)),
			cfg.BookingRatePerMin,
			"Too many booking requests, please try again later.",
		),
	}

	routes.RegisterRoutes(router, handlerBundle, limiters)

	// Start the HTTP server.
	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s (env=%s)...", srv.Addr, cfg.Env)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
