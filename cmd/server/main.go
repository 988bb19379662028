package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/segyhp/edu-backoffice/internal/cache"
	"github.com/segyhp/edu-backoffice/internal/config"
	"github.com/segyhp/edu-backoffice/internal/handler"
	"github.com/segyhp/edu-backoffice/internal/middleware"
	"github.com/segyhp/edu-backoffice/internal/repository"
	"github.com/segyhp/edu-backoffice/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server terminated with error", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repository.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := repository.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	// Repositories
	tx := repository.NewTransactor(db)
	users := repository.NewUserRepository(db)
	catalog := repository.NewCatalogRepository(db)
	invoices := repository.NewInvoiceRepository(db)
	payments := repository.NewPaymentRepository(db)
	schedules := repository.NewScheduleRepository(db)
	payroll := repository.NewPayrollRepository(db)
	leads := repository.NewLeadRepository(db)

	reports := cache.NewReportCache(redisClient, cfg.Business.ReportCacheTTL)

	// Services
	billingService := service.NewBillingService(tx, invoices, payments, users, catalog, reports, logger)
	scheduleService := service.NewScheduleService(tx, schedules, catalog, users, logger)
	payrollService := service.NewPayrollService(users, payroll, cfg.Business.PayrollPreserveBonus, cfg.Location(), logger)
	catalogService := service.NewCatalogService(users, catalog, logger)
	leadService := service.NewLeadService(leads, reports, logger)

	validate := handler.NewValidator()
	router := handler.NewRouter(handler.Handlers{
		Billing:  handler.NewBillingHandler(billingService, validate, logger),
		Schedule: handler.NewScheduleHandler(scheduleService, validate, logger),
		Payroll:  handler.NewPayrollHandler(payrollService, validate, logger),
		Catalog:  handler.NewCatalogHandler(catalogService, validate, logger),
		Leads:    handler.NewLeadHandler(leadService, validate, logger),
		Health:   handler.NewHealthHandler(db, redisClient, cfg.Health.Timeout, logger),
	}, middleware.NewAuthenticator(cfg.Auth.JWTSecret, logger), logger)

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting", zap.String("addr", server.Addr), zap.String("env", cfg.Server.Env))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listening: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		logger.Info("server exited")
		return nil
	})

	return g.Wait()
}
