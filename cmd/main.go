package main

import (
	"org-service/internal/credential"
	"org-service/internal/handler"
	"org-service/internal/middleware"
	"org-service/internal/provisioning"
	"org-service/internal/store/postgres"
	"org-service/pkg/config"
	"org-service/pkg/jwtutil"
	"org-service/pkg/logger"
	"org-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	if err := logger.InitLogger(cfg); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	log.Info("Starting organization service...", cfg.LogConfig()...)

	// Open the master database. The store is the single storage handle; it is
	// passed to the components that need it instead of living in a global.
	st, err := postgres.Open(&cfg.DB)
	if err != nil {
		log.Fatal("Failed to connect to master database", zap.Error(err))
	}
	defer st.Close()

	if err := st.Migrate(); err != nil {
		log.Fatal("Failed to migrate registry tables", zap.Error(err))
	}
	log.Info("Master database connection established")

	// Initialize JWT utility
	jwtUtil, err := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{
		SigningKey:        cfg.JWT.SigningKey,
		Algorithm:         cfg.JWT.Algorithm,
		ExpirationSeconds: cfg.JWT.ExpirationSeconds,
	})
	if err != nil {
		log.Fatal("Failed to initialize JWT utility", zap.Error(err))
	}

	// Build the provisioning orchestrator and handlers
	creds := credential.NewStore(cfg.Auth.BcryptCost)
	orch := provisioning.NewOrchestrator(st, st, creds)
	orgHandler := handler.NewOrgHandler(orch)
	authHandler := handler.NewAuthHandler(orch, jwtUtil)

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.Middleware())
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	// Organization routes. Create and get are public; update and delete
	// require a bearer token.
	org := e.Group("/org")
	org.POST("/create", orgHandler.CreateOrg)
	org.GET("/get", orgHandler.GetOrg)

	protected := e.Group("/org", middleware.JWTAuthMiddleware(jwtUtil))
	protected.PUT("/update", orgHandler.UpdateOrg)
	protected.DELETE("/delete", orgHandler.DeleteOrg)

	// Admin authentication
	admin := e.Group("/admin")
	admin.POST("/login", authHandler.Login)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
