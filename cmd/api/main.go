package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Fcatilizer/bookkeep-sub001/internal/backup"
	"github.com/Fcatilizer/bookkeep-sub001/internal/config"
	"github.com/Fcatilizer/bookkeep-sub001/internal/export"
	"github.com/Fcatilizer/bookkeep-sub001/internal/handlers"
	"github.com/Fcatilizer/bookkeep-sub001/internal/queue"
	"github.com/Fcatilizer/bookkeep-sub001/internal/repository"
	"github.com/Fcatilizer/bookkeep-sub001/internal/schema"
	"github.com/Fcatilizer/bookkeep-sub001/internal/services"
	xhttp "github.com/Fcatilizer/bookkeep-sub001/pkg/http"
	"github.com/Fcatilizer/bookkeep-sub001/pkg/logger"
	"github.com/Fcatilizer/bookkeep-sub001/pkg/prom"
	"github.com/Fcatilizer/bookkeep-sub001/pkg/redis"
	"github.com/Fcatilizer/bookkeep-sub001/pkg/store"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	defer func() { _ = logger.Sync() }()

	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}
	cfg := config.Get()
	logger.Info("starting api", "version", version, "commit", commit, "date", date, "env", cfg.AppEnv)

	if cfg.AppDebugMetricsAddr != "" {
		host, _ := os.Hostname()
		if err := prom.Create(host, cfg.AppEnv, cfg.PromNamespace); err != nil {
			logger.Error("failed registering metrics", "error", err)
			return
		}
		go prom.ListenAndServer(cfg.AppDebugMetricsAddr, cfg.AppDebugMetricsURI)
	}

	db, err := store.Open(cfg.Store())
	if err != nil {
		logger.Error("failed opening store", "error", err, "path", cfg.DBPath)
		return
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := schema.Open(ctx, db, cfg.DBSchemaVersion); err != nil {
		logger.Error("failed migrating store", "error", err)
		return
	}

	// exports are optional; without redis the export endpoint answers 503.
	var publisher services.DocumentPublisher
	if cfg.RedisEnabled() {
		redisAdap, err := redis.NewRedisAdapter("default", cfg.RedisUniversalKeyPrefix, cfg.RedisOptions())
		if err != nil {
			logger.Error("failed connecting to redis", "error", err)
			return
		}
		defer redisAdap.Close()

		q, err := queue.NewQueue(redisAdap, cfg.ExportQueue(cfg.AppName+"-api"))
		if err != nil {
			logger.Error("failed creating export queue", "error", err)
			return
		}
		publisher = export.NewPublisher(q)
	}

	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	eventRepo := repository.NewCustomerEventRepository(db)
	expenseRepo := repository.NewDailyEventRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	s := xhttp.NewServer(xhttp.DefaultServerOption)
	s.Use(xhttp.RecoverMiddleware)
	s.Use(xhttp.RequestIDMiddleware)
	s.Use(xhttp.RequestLoggerMiddleware)
	s.Use(handlers.MetricsMiddleware)
	s.Use(xhttp.CompressMiddleware(6))
	s.Use(xhttp.TimeoutMiddleware(cfg.HttpRequestTimeout))

	handlers.RegisterRoutes(s.Router, handlers.Services{
		Health:         schema.NewMigrator(db),
		Customers:      services.NewCustomerService(customerRepo),
		Products:       services.NewProductService(productRepo),
		CustomerEvents: services.NewCustomerEventService(eventRepo, customerRepo, productRepo, expenseRepo, paymentRepo),
		DailyEvents:    services.NewDailyEventService(expenseRepo, customerRepo, eventRepo),
		Payments:       services.NewPaymentService(paymentRepo, eventRepo),
		ExpenseTypes:   services.NewExpenseTypeService(repository.NewExpenseTypeRepository(db)),
		PaymentModes:   services.NewPaymentModeService(repository.NewPaymentModeRepository(db)),
		Exports:        services.NewExportService(eventRepo, customerRepo, productRepo, expenseRepo, paymentRepo, publisher),
		Backup:         backup.New(db),
	})

	go func() {
		if err := s.ListenAndServe(cfg.HttpListenAddr); err != nil {
			logger.Error("error in running http-server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	s.Shutdown()
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.HasPrefix(v, "--env=") {
			path := strings.TrimPrefix(v, "--env=")
			if _, err := os.Stat(path); err != nil {
				logger.Error("failed to open the passed env file", "error", err)
				return ""
			}
			return path
		}
	}
	return ""
}
