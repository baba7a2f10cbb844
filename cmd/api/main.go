package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitness-platform/internal/activity"
	"fitness-platform/internal/audit"
	"fitness-platform/internal/auth"
	"fitness-platform/internal/config"
	"fitness-platform/internal/exercise"
	"fitness-platform/internal/httpapi"
	"fitness-platform/internal/plan"
	"fitness-platform/internal/session"
	"fitness-platform/pkg/logger"
	"fitness-platform/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	tokens, err := auth.NewManager(cfg.Auth)
	if err != nil {
		log.Error("auth init failed", "err", err)
		os.Exit(1)
	}

	db, err := utils.OpenPostgres(rootCtx, "pgx", cfg.PostgresDSN(), utils.PostgresPoolConfig{})
	if err != nil {
		log.Error("postgres init failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb, err := utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: cfg.RedisAddr()})
	if err != nil {
		log.Error("redis init failed", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()

	// Services over Postgres repositories.
	auditSvc := audit.NewService(audit.NewPostgresRepo(db))

	var throttle session.Throttle
	if cfg.Auth.LoginThrottleLimit > 0 {
		throttle = session.NewRedisThrottle(rdb, cfg.Auth.LoginThrottleLimit, cfg.Auth.LoginThrottleWindow)
	}
	sessions := session.NewService(
		session.NewPostgresProvider(db),
		tokens,
		auditSvc,
		throttle,
		cfg.Auth.UpstreamTimeout,
	)

	activityRepo := activity.NewPostgresRepo(db)
	planRepo := plan.NewPostgresRepo(db)
	h := httpapi.Handlers{
		Sessions:   sessions,
		Activities: activity.NewService(activityRepo),
		Plans:      plan.NewService(planRepo, activityRepo),
		Exercises:  exercise.NewService(exercise.NewPostgresRepo(db), planRepo),
	}

	// Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))
	r.Use(corsMiddleware(cfg))

	// The gate runs on every request; only the public set bypasses it.
	r.Use(auth.Gate(tokens, auth.DefaultPublicPaths()))

	registerRoutes(r, h, healthzHandler(db, rdb))

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}
}

// healthzHandler reports readiness: both stores must answer.
func healthzHandler(db *sql.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if err := utils.HealthCheck(ctx, db, 2*time.Second); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "postgres": "down"})
			return
		}
		if err := rdb.Ping(ctx).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "redis": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func corsMiddleware(cfg config.Config) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Authorization", "Content-Type"},
		ExposeHeaders: []string{"X-Request-Id"},
		MaxAge:        12 * time.Hour,
	}
	if cfg.CORS.AllowedOrigin == "" || cfg.CORS.AllowedOrigin == "*" {
		// Validate() forbids this in production.
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORS.AllowedOrigin}
	}
	return cors.New(corsCfg)
}
