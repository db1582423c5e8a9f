package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/justsurfingit/job-board/internal/auth"
	"github.com/justsurfingit/job-board/internal/config"
	"github.com/justsurfingit/job-board/internal/database"
	"github.com/justsurfingit/job-board/internal/handlers"
	"github.com/justsurfingit/job-board/internal/logging"
	"github.com/justsurfingit/job-board/internal/services"
)

func main() {
	// 1. Load Environment Variables
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	if envErr != nil {
		logger.Info("no .env file loaded, using process environment", "err", envErr)
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	// 2. Database Connection
	db, err := database.Connect(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal("database setup failed", "err", err)
	}

	// 3. Session revocation
	var revoker auth.Revoker = auth.NoopRevoker{}
	if cfg.Redis.Addr != "" {
		rr := auth.NewRedisRevoker(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rr.Ping(pingCtx)
		cancel()
		if err != nil {
			logger.Fatal("redis unreachable", "addr", cfg.Redis.Addr, "err", err)
		}
		defer func() { _ = rr.Close() }()
		revoker = rr
		logger.Info("token revocation enabled", "addr", cfg.Redis.Addr)
	} else {
		logger.Warn("REDIS_ADDR not set, logout will not revoke tokens")
	}

	// 4. Initialize Core Services (Dependencies)
	userStore := database.NewUserStore(db)
	jobService := services.NewJobService(database.NewJobStore(db), logger)
	userService := services.NewUserService(userStore, logger)

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Expire)
	session := auth.NewSession(tokens, cfg.CookieExpire(), gin.Mode() == gin.ReleaseMode)

	// 5. Initialize Handlers & Router
	router := handlers.NewRouter(handlers.RouterDeps{
		Jobs:        handlers.NewJobHandler(jobService),
		Users:       handlers.NewUserHandler(userService, session, revoker, logger),
		Tokens:      tokens,
		Revoker:     revoker,
		UserFinder:  userStore,
		Log:         logger,
		FrontendURL: cfg.FrontendURL,
	})

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed to start", "err", err)
		}
	}()

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()
	logger.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown completed with error", "err", err)
	} else {
		logger.Info("graceful shutdown completed successfully")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
