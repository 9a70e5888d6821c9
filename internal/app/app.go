package app

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/Satyam6458/HR-Management/internal/config"
	"github.com/Satyam6458/HR-Management/internal/middleware"
	"github.com/Satyam6458/HR-Management/internal/shared/apperror"
	"github.com/Satyam6458/HR-Management/internal/shared/connection"
	"github.com/Satyam6458/HR-Management/internal/shared/response"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const healthCheckTimeout = 2 * time.Second

// NewRouter returns an engine with recovery, CORS and request-scoped
// logging installed.
func NewRouter(cfg *config.Config, logger *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(cfg.CORS)))
	r.Use(middleware.RequestID())
	r.Use(middleware.ContextLogger(logger))
	return r
}

func corsConfig(cfg config.CORSConfig) cors.Config {
	c := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept", "Authorization",
			middleware.RequestIDHeader, middleware.IdempotencyHeader, "X-Client-Type",
		},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader, middleware.ReplayedHeader},
		MaxAge:        12 * time.Hour,
	}

	if len(cfg.AllowOrigins) == 0 || (len(cfg.AllowOrigins) == 1 && cfg.AllowOrigins[0] == "*") {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = cfg.AllowOrigins
	c.AllowCredentials = true
	return c
}

// BuildApp connects the database and Redis and mounts every module on
// router. The returned cleanup closes the connections.
func BuildApp(cfg *config.Config, router *gin.Engine, logger *zap.Logger) (func(), error) {
	log := logger.Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	log.Info("database connection established", zap.String("driver", cfg.Database.Driver))

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.Redis.MaxRetries)
		if err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		log.Info("redis connection established", zap.String("addr", cfg.Redis.Addr))
	} else {
		log.Warn("REDIS_ADDR not set, list caching and idempotency disabled")
	}

	cleanup := func() {
		if rdb != nil {
			_ = rdb.Close()
		}
		_ = sqlDB.Close()
	}

	policy, err := config.LoadLeavePolicy(cfg.Ledger.PolicyPath)
	if err != nil {
		cleanup()
		return nil, err
	}
	log.Info("leave policy loaded",
		zap.String("path", cfg.Ledger.PolicyPath),
		zap.Int("entitlements", len(policy.Entitlements)),
		zap.String("lock_mode", cfg.Ledger.LockMode),
	)

	router.Static("/uploads", cfg.Upload.Dir)
	router.GET("/healthz", healthHandler(sqlDB))

	err = registerModules(router, Dependencies{
		Config:       cfg,
		DB:           sqlDB,
		GormDB:       gormDB,
		Redis:        rdb,
		Entitlements: policy.Defaults(),
		Logger:       logger,
	})
	if err != nil {
		cleanup()
		return nil, err
	}

	return cleanup, nil
}

func healthHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			response.Error(c, http.StatusServiceUnavailable, apperror.CodeServiceUnavailable, "Database unreachable", nil)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"}, nil)
	}
}
