package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "tenant-admin-backend/docs" // registers the swagger document
	"tenant-admin-backend/internal/api/routes"
	"tenant-admin-backend/internal/auth"
	"tenant-admin-backend/internal/config"
	"tenant-admin-backend/internal/database"
	"tenant-admin-backend/internal/logger"
	"tenant-admin-backend/internal/metrics"
	"tenant-admin-backend/internal/store"
	"tenant-admin-backend/internal/tenant"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

//	@title			Tenant Admin Backend API
//	@version		1.0
//	@description	Admin API for a multi-tenant repair shop platform. Each tenant's repair tickets and team members live in tables private to that tenant.

//	@host		localhost:7008
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and JWT token.

const shutdownTimeout = 15 * time.Second

func main() {
	// Load environment variables from .env file in development
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger.Setup(cfg.LogLevel)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Initialize(cfg.DatabaseURL, nil)
	if err != nil {
		logrus.Fatal("Failed to initialize database: ", err)
	}

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, database.PoolOptions{
		MaxConns: cfg.DatabaseMaxConns,
		MinConns: cfg.DatabaseMinConns,
	})
	if err != nil {
		logrus.Fatal("Failed to create tenant connection pool: ", err)
	}
	defer pool.Close()

	m := metrics.New()
	if err := m.Register(store.NewPoolCollector(pool)); err != nil {
		logrus.Fatal("Failed to register pool metrics: ", err)
	}

	executor := store.NewExecutor(pool, store.Options{
		AcquireTimeout:   cfg.AcquireTimeout,
		StatementTimeout: cfg.StatementTimeout,
		MaxAttempts:      cfg.RetryMaxAttempts,
		InitialInterval:  cfg.RetryInitialInterval,
		MaxInterval:      cfg.RetryMaxInterval,
	}, m)
	provisioner := tenant.NewProvisioner(executor, m)

	authService, err := auth.NewAuthService(&auth.AuthConfig{JWTSecret: cfg.JWTSecret})
	if err != nil {
		logrus.Fatal("Failed to initialize auth: ", err)
	}

	router := routes.SetupRoutes(routes.Dependencies{
		Config:      cfg,
		DB:          db,
		TenantStore: store.NewTenantStore(executor, provisioner, m),
		Pool:        executor,
		Metrics:     m,
		Auth:        authService,
	})

	port := cfg.Port
	if port == "" {
		port = "7008"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.Infof("Starting server on port %s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal("Failed to start server: ", err)
		}
	}()

	<-ctx.Done()
	logrus.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Server shutdown did not complete")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
