package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gokuljawahar87/move-more/handlers"
	"github.com/gokuljawahar87/move-more/initializers"
	"github.com/gokuljawahar87/move-more/middleware"
	"github.com/gokuljawahar87/move-more/pkg/notify"
	"github.com/gokuljawahar87/move-more/refresh"
	"github.com/gokuljawahar87/move-more/repository"
	"github.com/gokuljawahar87/move-more/strava"
	"github.com/gokuljawahar87/move-more/websocket"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

func main() {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if len(jwtSecret) < 32 {
		log.Fatal("JWT_SECRET must be set and at least 32 characters")
	}

	stravaClientID := os.Getenv("STRAVA_CLIENT_ID")
	stravaClientSecret := os.Getenv("STRAVA_CLIENT_SECRET")
	if stravaClientID == "" || stravaClientSecret == "" {
		log.Fatal("STRAVA_CLIENT_ID and STRAVA_CLIENT_SECRET must be set")
	}

	appURL := os.Getenv("APP_URL")
	if appURL == "" {
		appURL = "http://localhost:3000"
	}
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	var db *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sql.Open("postgres", dbURL)
		if err == nil {
			err = db.Ping()
			if err == nil {
				break
			}
		}
		log.Printf("DB connection failed: %v, retrying in 2s...", err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		log.Fatal("Could not connect to database:", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Fatal("Migration driver error:", err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		log.Fatal("Migration init error:", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal("Migration failed:", err)
	}

	challenge, err := initializers.LoadChallengeConfig()
	if err != nil {
		log.Fatal("Failed to load challenge config:", err)
	}

	if err := initializers.InitMinio(); err != nil {
		log.Fatal("Failed to initialize Minio:", err)
	}

	profilesRepo := repository.NewProfilesRepository(db)
	employeesRepo := repository.NewEmployeesRepository(db)
	activitiesRepo := repository.NewActivitiesRepository(db)
	reactionsRepo := repository.NewReactionsRepository(db)
	weightsRepo := repository.NewWeightsRepository(db)

	if err := initializers.SeedEmployeeMaster(employeesRepo); err != nil {
		log.Fatal("Failed to seed employee master:", err)
	}

	oauthCfg := strava.OAuthConfig(stravaClientID, stravaClientSecret, baseURL+"/api/strava/callback")
	stravaClient := strava.NewClient()
	refreshService := refresh.NewService(profilesRepo, activitiesRepo, stravaClient, oauthCfg, challenge)

	r := gin.New()
	// Structured request ID and JSON access logs
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	// Panic recovery
	r.Use(gin.Recovery())

	// Configure trusted proxies for correct client IP handling in production
	trustedProxies := os.Getenv("TRUSTED_PROXIES")
	if trustedProxies != "" {
		parts := strings.Split(trustedProxies, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if err := r.SetTrustedProxies(parts); err != nil {
			log.Fatalf("Invalid TRUSTED_PROXIES: %v", err)
		}
	} else {
		// Default to loopback only; override via TRUSTED_PROXIES in production
		_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})
	}

	r.Use(middleware.CORSMiddleware())
	// Apply rate limiting globally after CORS but before routes
	r.Use(middleware.RateLimitMiddleware())

	// Initialize WebSocket hub and notifier
	hub := websocket.NewHub()
	notifier := &notify.WSNotifier{Hub: hub}

	// Handlers
	profilesHandler := handlers.NewProfilesHandler(profilesRepo, employeesRepo, jwtSecret)
	stravaHandler := handlers.NewStravaHandler(profilesRepo, refreshService, oauthCfg, challenge, appURL, jwtSecret)
	leaderboardHandler := handlers.NewLeaderboardHandler(activitiesRepo, challenge)
	statsHandler := handlers.NewStatsHandler(activitiesRepo, challenge)
	activitiesHandler := handlers.NewActivitiesHandler(activitiesRepo, challenge)
	reactionsHandler := handlers.NewReactionsHandler(reactionsRepo, activitiesRepo, notifier)
	weightHandler := handlers.NewWeightHandler(weightsRepo)
	uploadsHandler := handlers.NewUploadsHandler(profilesRepo)
	adminHandler := handlers.NewAdminHandler(os.Getenv("ADMIN_PASSWORD_HASH"), jwtSecret)

	// Set Gin to release mode in production
	if os.Getenv("GIN_MODE") == "release" || strings.ToLower(os.Getenv("APP_ENV")) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Public endpoints
	r.GET("/health", handlers.HealthCheck)

	// Registration and admin login carry a stricter per-IP limit
	authPublic := r.Group("/api", middleware.RateLimitAuthMiddleware())
	authPublic.POST("/register", profilesHandler.Register)
	authPublic.POST("/restore-session", profilesHandler.RestoreSession)
	authPublic.POST("/admin/login", adminHandler.Login)

	// The OAuth callback arrives from Strava without a session cookie; the
	// state parameter carries the user.
	r.GET("/api/strava/callback", stravaHandler.Callback)

	auth := r.Group("/api", handlers.AuthMiddleware(jwtSecret))
	{
		auth.GET("/ws", websocket.ServeWS(hub))

		auth.GET("/profile", profilesHandler.GetProfile)
		auth.GET("/teams", profilesHandler.GetTeams)

		auth.GET("/strava/connect", stravaHandler.Connect)
		auth.POST("/strava/refresh-user", stravaHandler.RefreshUser)

		auth.GET("/leaderboard", leaderboardHandler.GetLeaderboard)
		auth.GET("/team-performance", leaderboardHandler.GetTeamPerformance)
		auth.GET("/user/stats", statsHandler.GetUserStats)
		auth.GET("/activities", activitiesHandler.GetActivities)
		auth.GET("/user/activities", activitiesHandler.GetUserActivities)

		auth.POST("/reactions", reactionsHandler.ToggleReaction)
		auth.GET("/reactions", reactionsHandler.GetReactions)

		auth.POST("/weight", weightHandler.LogWeight)
		auth.GET("/weight", weightHandler.GetWeightLog)

		auth.POST("/uploads/avatar", uploadsHandler.UploadAvatar)
		auth.GET("/files/:id", uploadsHandler.GetFile)
	}

	admin := r.Group("/api", handlers.AdminMiddleware(jwtSecret))
	{
		admin.POST("/refresh", stravaHandler.RefreshAll)
		admin.GET("/suspicious-activities", activitiesHandler.GetSuspiciousActivities)
		admin.POST("/activities/:id/validity", activitiesHandler.SetValidity)
		admin.DELETE("/activities/:id/derived-type", activitiesHandler.ClearDerivedType)
	}

	// Nightly sweep keeps leaderboards current without user action.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go refreshService.RunNightly(ctx, 24*time.Hour)

	r.Run(":8080")
}
