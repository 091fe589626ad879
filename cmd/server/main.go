package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/retailpos/backoffice/internal/application/bulk"
	"github.com/retailpos/backoffice/internal/application/ledger"
	appprch "github.com/retailpos/backoffice/internal/application/purchasing"
	appsales "github.com/retailpos/backoffice/internal/application/sales"
	"github.com/retailpos/backoffice/internal/infrastructure/config"
	"github.com/retailpos/backoffice/internal/infrastructure/logger"
	"github.com/retailpos/backoffice/internal/infrastructure/persistence"
	"github.com/retailpos/backoffice/internal/interfaces/http/handler"
	"github.com/retailpos/backoffice/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	db, err := persistence.NewDatabase(&cfg.Database, logger.NewGormLogger(log.Named("gorm")))
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	scope := persistence.NewGormTransactionScope(db.DB)

	defaultImportLocation := uuid.Nil
	if name := cfg.Import.DefaultLocation; name != "" {
		location, err := persistence.NewGormLocationRepository(db.DB).FindByName(context.Background(), name)
		if err != nil {
			log.Fatal("configured import default location not found",
				zap.String("name", name), zap.Error(err))
		}
		defaultImportLocation = location.ID
	}

	ledgerService := ledger.NewService(scope, log.Named("ledger"))
	salesService := appsales.NewService(scope, log.Named("sales"))
	purchasingService := appprch.NewService(scope, log.Named("purchasing"))
	importer := bulk.NewImporter(scope, log.Named("import"))
	exporter := bulk.NewExporter(scope, log.Named("export"))

	engine := router.New(router.Handlers{
		Inventory:  handler.NewInventoryHandler(ledgerService),
		Sales:      handler.NewSalesHandler(salesService),
		Purchasing: handler.NewPurchasingHandler(purchasingService),
		Bulk:       handler.NewBulkHandler(importer, exporter, cfg.Import.MaxFileSize, defaultImportLocation),
	}, log, cfg.App.Env)

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("server starting",
			zap.String("addr", server.Addr),
			zap.String("env", cfg.App.Env))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
