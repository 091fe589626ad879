package persistence

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/retailpos/backoffice/internal/domain/customer"
	"github.com/retailpos/backoffice/internal/domain/inventory"
	"github.com/retailpos/backoffice/internal/domain/purchasing"
	"github.com/retailpos/backoffice/internal/domain/reference"
	"github.com/retailpos/backoffice/internal/domain/sales"
	"github.com/retailpos/backoffice/internal/infrastructure/config"
)

// Database holds the database connection
type Database struct {
	DB *gorm.DB
}

// NewDatabase creates a new database connection with the given configuration.
// The gormLogger argument routes driver logs into the application logger;
// nil silences them.
func NewDatabase(cfg *config.DatabaseConfig, gormLogger logger.Interface) (*Database, error) {
	if gormLogger == nil {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{DB: db}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Ping checks if the database connection is alive
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Ping()
}

// Migrate creates or updates the schema for every persisted aggregate
func (d *Database) Migrate() error {
	return AutoMigrate(d.DB)
}

// AutoMigrate runs schema migration on an existing GORM handle. Exposed
// separately so tests can migrate their in-memory databases.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&reference.Location{},
		&reference.Category{},
		&reference.Supplier{},
		&inventory.InventoryItem{},
		&inventory.StockMovement{},
		&customer.CustomerAccount{},
		&sales.Sale{},
		&sales.SaleItem{},
		&purchasing.PurchaseOrder{},
		&purchasing.PurchaseOrderItem{},
	)
}
