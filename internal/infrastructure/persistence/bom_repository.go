package persistence

import (
	"context"

	"github.com/oms/backend/internal/domain/bom"
	"github.com/oms/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormKitBOMRepository implements bom.KitBOMRepository using GORM
type GormKitBOMRepository struct {
	db *gorm.DB
}

// NewGormKitBOMRepository creates a new GormKitBOMRepository
func NewGormKitBOMRepository(db *gorm.DB) *GormKitBOMRepository {
	return &GormKitBOMRepository{db: db}
}

// FindAll returns every BOM row
func (r *GormKitBOMRepository) FindAll(ctx context.Context) ([]bom.KitBOMItem, error) {
	var ms []models.KitBOMItemModel
	if err := r.db.WithContext(ctx).Find(&ms).Error; err != nil {
		return nil, err
	}
	return toDomainBOMItems(ms), nil
}

// FindByKitIDs returns BOM rows for the given kit ids
func (r *GormKitBOMRepository) FindByKitIDs(ctx context.Context, kitIDs []string) ([]bom.KitBOMItem, error) {
	if len(kitIDs) == 0 {
		return nil, nil
	}
	var ms []models.KitBOMItemModel
	if err := r.db.WithContext(ctx).Where("kit_id IN ?", kitIDs).Find(&ms).Error; err != nil {
		return nil, err
	}
	return toDomainBOMItems(ms), nil
}

func toDomainBOMItems(ms []models.KitBOMItemModel) []bom.KitBOMItem {
	items := make([]bom.KitBOMItem, len(ms))
	for i := range ms {
		items[i] = ms[i].ToDomain()
	}
	return items
}

// GormProductRepository implements bom.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindAll returns every product master row
func (r *GormProductRepository) FindAll(ctx context.Context) ([]bom.Product, error) {
	var ms []models.ProductModel
	if err := r.db.WithContext(ctx).Find(&ms).Error; err != nil {
		return nil, err
	}
	products := make([]bom.Product, len(ms))
	for i := range ms {
		products[i] = ms[i].ToDomain()
	}
	return products, nil
}
