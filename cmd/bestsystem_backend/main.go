package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	portsrepo "github.com/bestcell/bestsystem_backend/internal/core/ports/repositories"
	"github.com/bestcell/bestsystem_backend/internal/core/services"
	"github.com/bestcell/bestsystem_backend/internal/handlers"
	"github.com/bestcell/bestsystem_backend/internal/middleware"
	"github.com/bestcell/bestsystem_backend/internal/platform/config"
	"github.com/bestcell/bestsystem_backend/internal/platform/sessionlock"
	"github.com/bestcell/bestsystem_backend/internal/repositories/database/pgsql"
	"github.com/bestcell/bestsystem_backend/internal/repositories/memory"
	"github.com/bestcell/bestsystem_backend/pkg/database"
)

// @title BestSystem Backend API
// @version 1.0
// @description Sales, installment and collections management for a phone store.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	repos, closeRepos, err := setupRepositories(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("driver", cfg.StorageDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeRepos()

	var redisClient *redis.Client
	if cfg.SessionLockBackend == config.LockBackendRedis {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Error("Failed to reach redis", slog.String("addr", cfg.RedisAddr), slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer redisClient.Close()
	}

	lock, err := setupSessionLock(cfg, redisClient)
	if err != nil {
		logger.Error("Failed to initialize session lock", slog.String("backend", cfg.SessionLockBackend), slog.String("error", err.Error()))
		os.Exit(1)
	}

	loginLimiter, err := middleware.NewLimiter(cfg.LoginRateLimit, redisClient)
	if err != nil {
		logger.Error("Failed to initialize login rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, headers)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.SecureHeaders(cfg.IsProduction),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	serviceContainer := services.NewServiceContainer(cfg, repos, lock)
	handlers.RegisterRoutes(r, cfg, serviceContainer, loginLimiter)

	logger.Info("Server starting",
		slog.String("port", cfg.Port),
		slog.String("storage", cfg.StorageDriver),
		slog.String("session_lock", cfg.SessionLockBackend),
	)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// setupRepositories opens the configured store. The returned func releases it.
func setupRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		logger.Warn("Using in-memory storage; data is lost on restart")
		return memory.NewRepositoryProvider(), func() {}, nil
	case config.StoragePostgres:
		if cfg.RunMigrations {
			if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
				return portsrepo.RepositoryProvider{}, nil, err
			}
		}
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("Database connection pool established.")
		return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil
	default:
		return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func setupSessionLock(cfg *config.Config, redisClient *redis.Client) (portsrepo.SessionLockStore, error) {
	switch cfg.SessionLockBackend {
	case config.LockBackendFile:
		lock, err := sessionlock.NewFileLock(cfg.SessionLockFile, sessionlock.WithTimeout(cfg.SessionLockTimeout))
		if err != nil {
			return nil, err
		}
		return lock, nil
	case config.LockBackendRedis:
		return sessionlock.NewRedisLock(redisClient, sessionlock.DefaultRedisKey, sessionlock.WithTimeout(cfg.SessionLockTimeout)), nil
	default:
		return nil, fmt.Errorf("unknown session lock backend %q", cfg.SessionLockBackend)
	}
}
