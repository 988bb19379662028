package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/segyhp/edu-backoffice/internal/cache"
	"github.com/segyhp/edu-backoffice/internal/config"
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

	if err := run(cfg, logger); err != nil {
		logger.Fatal("scheduler terminated with error", zap.Error(err))
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

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	users := repository.NewUserRepository(db)
	reports := cache.NewReportCache(redisClient, cfg.Business.ReportCacheTTL)

	j := &jobs{
		payroll: service.NewPayrollService(users, repository.NewPayrollRepository(db),
			cfg.Business.PayrollPreserveBonus, cfg.Location(), logger),
		billing: service.NewBillingService(repository.NewTransactor(db), repository.NewInvoiceRepository(db),
			repository.NewPaymentRepository(db), users, repository.NewCatalogRepository(db), reports, logger),
		locks:   redisLocker{cache.NewLocker(redisClient)},
		lockTTL: cfg.Scheduler.LockTTL,
		loc:     cfg.Location(),
		logger:  logger,
		now:     time.Now,
	}

	c := cron.New(
		cron.WithSeconds(),
		cron.WithLocation(cfg.Location()),
		cron.WithLogger(cronLogger{logger.Sugar()}),
	)

	if _, err := c.AddFunc(cfg.Scheduler.PayrollCron, j.exclusive("payroll", j.monthlyPayroll)); err != nil {
		return fmt.Errorf("scheduling payroll job: %w", err)
	}
	if _, err := c.AddFunc(cfg.Scheduler.OverdueCron, j.exclusive("overdue-invoices", j.overdueSweep)); err != nil {
		return fmt.Errorf("scheduling overdue job: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		c.Start()
		logger.Info("scheduler started",
			zap.String("timezone", cfg.Scheduler.Timezone),
			zap.String("payroll_cron", cfg.Scheduler.PayrollCron),
			zap.String("overdue_cron", cfg.Scheduler.OverdueCron),
		)

		<-ctx.Done()
		logger.Info("shutting down scheduler")

		// wait for running jobs
		<-c.Stop().Done()
		logger.Info("scheduler stopped")
		return nil
	})

	return g.Wait()
}

// redisLocker hides the concrete lock type so a missing lock stays a nil interface
type redisLocker struct {
	*cache.Locker
}

func (l redisLocker) TryLock(ctx context.Context, name string, ttl time.Duration) (unlocker, error) {
	lock, err := l.Locker.TryLock(ctx, name, ttl)
	if err != nil || lock == nil {
		return nil, err
	}
	return lock, nil
}

type cronLogger struct {
	sugar *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, append(keysAndValues, "error", err)...)
}
