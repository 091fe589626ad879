package main

import (
	"go.uber.org/zap"

	"github.com/retailpos/backoffice/internal/infrastructure/config"
	"github.com/retailpos/backoffice/internal/infrastructure/logger"
	"github.com/retailpos/backoffice/internal/infrastructure/persistence"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.NewForEnvironment(cfg.App.Env)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	db, err := persistence.NewDatabase(&cfg.Database, logger.NewGormLogger(log.Named("gorm")))
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	if err := db.Migrate(); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
	log.Info("migration complete", zap.String("database", cfg.Database.DBName))
}
