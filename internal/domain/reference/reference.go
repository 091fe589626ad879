// Package reference holds the read-mostly lookup entities the core
// depends on. Their CRUD surfaces live outside the core; the ledger,
// sale processor and bulk reconciler only ever resolve them by id or
// case-insensitive name.
package reference

import (
	"context"

	"github.com/google/uuid"

	"github.com/retailpos/backoffice/internal/domain/shared"
)

// Location is a store or warehouse holding inventory
type Location struct {
	shared.BaseEntity
	Name     string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Code     string `gorm:"type:varchar(20);not null;uniqueIndex"`
	IsActive bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Location) TableName() string {
	return "locations"
}

// Category organizes inventory items
type Category struct {
	shared.BaseEntity
	Name     string `gorm:"type:varchar(100);not null;uniqueIndex"`
	IsActive bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// Supplier provides purchase order targets
type Supplier struct {
	shared.BaseEntity
	Name     string `gorm:"type:varchar(200);not null;uniqueIndex"`
	IsActive bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// LocationRepository resolves locations
type LocationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Location, error)
	// FindByName resolves a location by case-insensitive name match.
	FindByName(ctx context.Context, name string) (*Location, error)
	ListActive(ctx context.Context) ([]Location, error)
	Create(ctx context.Context, location *Location) error
}

// CategoryRepository resolves categories
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindByName(ctx context.Context, name string) (*Category, error)
	ListActive(ctx context.Context) ([]Category, error)
	Create(ctx context.Context, category *Category) error
}

// SupplierRepository resolves suppliers
type SupplierRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)
	FindByName(ctx context.Context, name string) (*Supplier, error)
	ListActive(ctx context.Context) ([]Supplier, error)
	Create(ctx context.Context, supplier *Supplier) error
}
