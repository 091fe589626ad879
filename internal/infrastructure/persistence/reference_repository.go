package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailpos/backoffice/internal/domain/reference"
)

// GormLocationRepository implements reference.LocationRepository using GORM
type GormLocationRepository struct {
	db *gorm.DB
}

// NewGormLocationRepository creates a new GormLocationRepository
func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// FindByID loads one location
func (r *GormLocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reference.Location, error) {
	var location reference.Location
	if err := r.db.WithContext(ctx).First(&location, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &location, nil
}

// FindByName resolves a location by case-insensitive name match
func (r *GormLocationRepository) FindByName(ctx context.Context, name string) (*reference.Location, error) {
	var location reference.Location
	if err := r.db.WithContext(ctx).First(&location, "lower(name) = lower(?)", name).Error; err != nil {
		return nil, translateError(err)
	}
	return &location, nil
}

// ListActive lists active locations
func (r *GormLocationRepository) ListActive(ctx context.Context) ([]reference.Location, error) {
	var locations []reference.Location
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).
		Order("name asc").Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// Create inserts a new location
func (r *GormLocationRepository) Create(ctx context.Context, location *reference.Location) error {
	if err := r.db.WithContext(ctx).Create(location).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// GormCategoryRepository implements reference.CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByID loads one category
func (r *GormCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*reference.Category, error) {
	var category reference.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &category, nil
}

// FindByName resolves a category by case-insensitive name match
func (r *GormCategoryRepository) FindByName(ctx context.Context, name string) (*reference.Category, error) {
	var category reference.Category
	if err := r.db.WithContext(ctx).First(&category, "lower(name) = lower(?)", name).Error; err != nil {
		return nil, translateError(err)
	}
	return &category, nil
}

// ListActive lists active categories
func (r *GormCategoryRepository) ListActive(ctx context.Context) ([]reference.Category, error) {
	var categories []reference.Category
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).
		Order("name asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Create inserts a new category
func (r *GormCategoryRepository) Create(ctx context.Context, category *reference.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// GormSupplierRepository implements reference.SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// FindByID loads one supplier
func (r *GormSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*reference.Supplier, error) {
	var supplier reference.Supplier
	if err := r.db.WithContext(ctx).First(&supplier, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &supplier, nil
}

// FindByName resolves a supplier by case-insensitive name match
func (r *GormSupplierRepository) FindByName(ctx context.Context, name string) (*reference.Supplier, error) {
	var supplier reference.Supplier
	if err := r.db.WithContext(ctx).First(&supplier, "lower(name) = lower(?)", name).Error; err != nil {
		return nil, translateError(err)
	}
	return &supplier, nil
}

// ListActive lists active suppliers
func (r *GormSupplierRepository) ListActive(ctx context.Context) ([]reference.Supplier, error) {
	var suppliers []reference.Supplier
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).
		Order("name asc").Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

// Create inserts a new supplier
func (r *GormSupplierRepository) Create(ctx context.Context, supplier *reference.Supplier) error {
	if err := r.db.WithContext(ctx).Create(supplier).Error; err != nil {
		return translateError(err)
	}
	return nil
}

var (
	_ reference.LocationRepository = (*GormLocationRepository)(nil)
	_ reference.CategoryRepository = (*GormCategoryRepository)(nil)
	_ reference.SupplierRepository = (*GormSupplierRepository)(nil)
)
