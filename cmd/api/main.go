package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbermall-scheduler/internal/audit"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/barbermall-scheduler/internal/db"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/logger"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/metrics"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/routes"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/timezone"
)

func main() {
	cfg := config.Load()

	log := logger.New(cfg.IsProduction())
	defer func() { _ = log.Sync() }()

	timezone.SetDefault(cfg.Timezone)
	metrics.Register()

	db := dbpkg.NewDB(cfg, log)

	availabilityCache, redisClient := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.AvailabilityCacheTTL)
	if redisClient != nil {
		defer redisClient.Close()
		log.Info("availability cache enabled", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.AvailabilityCacheTTL))
	}

	auditDispatcher := audit.NewDispatcher(audit.New(db), log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes.RegisterRoutes(r, routes.Deps{
		DB:     db,
		Config: cfg,
		Log:    log,
		Audit:  auditDispatcher,
		Cache:  availabilityCache,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}

	// handlers cut off by a failed shutdown may still dispatch; those events are dropped
	auditDispatcher.Close()
}
