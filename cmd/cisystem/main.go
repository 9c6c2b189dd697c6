package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/cisystem/cisystem/internal/app"
	"github.com/cisystem/cisystem/internal/cisapi"
	"github.com/cisystem/cisystem/internal/drafts"
	"github.com/cisystem/cisystem/internal/inventory"
	"github.com/cisystem/cisystem/internal/rbac"
	"github.com/cisystem/cisystem/internal/reports"
	reporthttp "github.com/cisystem/cisystem/internal/reports/http"
	"github.com/cisystem/cisystem/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	apiClient := cisapi.NewClient(cfg.CISAPIURL, cfg.CISAPIToken)

	resolver := rbac.NewResolver(apiClient, logger)
	resolver.Load(ctx)
	rbacMiddleware := rbac.Middleware{Resolver: resolver, Logger: logger}
	rbacHandler := rbac.NewHandler(logger, resolver)

	reportCache := reports.NewCache(redisClient, cfg.CacheTTL)
	if err := reportCache.ListenForInvalidation(ctx); err != nil {
		logger.Warn("cache invalidation listener", slog.Any("error", err))
	}
	reportService := reports.NewService(apiClient, reportCache, reports.ServiceConfig{
		FanOutLimit: cfg.ReportFanOut,
		Logger:      logger,
	})
	reportHandler := reporthttp.NewHandler(logger, reportService)

	inventoryService := inventory.NewService(apiClient)
	inventoryHandler := inventory.NewHandler(logger, inventoryService, cfg.LowStockThreshold, cfg.ExpiryAlertDays)

	draftStore := drafts.NewStore(redisClient, cfg.DraftTTL)
	draftsHandler := drafts.NewHandler(logger, draftStore)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		ReportHandler:    reportHandler,
		InventoryHandler: inventoryHandler,
		DraftsHandler:    draftsHandler,
		RBACHandler:      rbacHandler,
		RBACMiddleware:   rbacMiddleware,
		JobHandler:       jobHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
