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

	"github.com/meridian-ops/meridian/internal/app"
	"github.com/meridian-ops/meridian/internal/auth"
	"github.com/meridian-ops/meridian/internal/clients"
	"github.com/meridian-ops/meridian/internal/expenses"
	"github.com/meridian-ops/meridian/internal/invoices"
	"github.com/meridian-ops/meridian/internal/observability"
	"github.com/meridian-ops/meridian/internal/platform/cache"
	"github.com/meridian-ops/meridian/internal/platform/db"
	"github.com/meridian-ops/meridian/internal/projects"
	"github.com/meridian-ops/meridian/internal/shared"
	"github.com/meridian-ops/meridian/internal/subscriptions"
	"github.com/meridian-ops/meridian/internal/trends"
	trendshttp "github.com/meridian-ops/meridian/internal/trends/http"
	"github.com/meridian-ops/meridian/jobs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, cfg.SessionCookie, cfg.SessionTTL, cfg.IsProduction())

	authRepo := auth.NewRepository(pool)
	authService := auth.NewService(authRepo)
	authHandler := auth.NewHandler(logger, authService, sessionManager)

	trendsRepo := trends.NewRepository(pool)
	trendsCache := trends.NewCache(redisClient, cfg.TrendsCacheTTL)
	trendsService := trends.NewService(trendsRepo, trendsCache)
	trendsHandler := trendshttp.NewHandler(logger, trendsService)

	go func() {
		if err := trendsCache.ListenForInvalidation(ctx, ""); err != nil && ctx.Err() == nil {
			logger.Warn("trend cache invalidation listener", slog.Any("error", err))
		}
	}()

	clientsRepo := clients.NewRepository(pool)
	clientsService := clients.NewService(clientsRepo, trendsService, logger)
	clientsHandler := clients.NewHandler(logger, clientsService)

	projectsRepo := projects.NewRepository(pool)
	projectsService := projects.NewService(projectsRepo)
	projectsHandler := projects.NewHandler(logger, projectsService)

	invoicesRepo := invoices.NewRepository(pool)
	invoicesService := invoices.NewService(invoicesRepo, trendsService, logger)
	invoicesHandler := invoices.NewHandler(logger, invoicesService)

	expensesRepo := expenses.NewRepository(pool)
	expensesService := expenses.NewService(expensesRepo, trendsService, logger)
	expensesHandler := expenses.NewHandler(logger, expensesService)

	subscriptionsRepo := subscriptions.NewRepository(pool)
	subscriptionsService := subscriptions.NewService(subscriptionsRepo, trendsService, logger)
	subscriptionsHandler := subscriptions.NewHandler(logger, subscriptionsService)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobsHandler := jobs.NewHandler(inspector, logger)
	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:               logger,
		Config:               cfg,
		SessionManager:       sessionManager,
		AuthHandler:          authHandler,
		ClientsHandler:       clientsHandler,
		ProjectsHandler:      projectsHandler,
		InvoicesHandler:      invoicesHandler,
		ExpensesHandler:      expensesHandler,
		SubscriptionsHandler: subscriptionsHandler,
		TrendsHandler:        trendsHandler,
		JobsHandler:          jobsHandler,
		Metrics:              metrics,
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
