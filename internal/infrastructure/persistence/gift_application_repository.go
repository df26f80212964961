package persistence

import (
	"context"

	"github.com/oms/backend/internal/domain/promotion"
	"github.com/oms/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormGiftApplicationRepository implements promotion.GiftApplicationRepository
// using GORM
type GormGiftApplicationRepository struct {
	db *gorm.DB
}

// NewGormGiftApplicationRepository creates a new GormGiftApplicationRepository
func NewGormGiftApplicationRepository(db *gorm.DB) *GormGiftApplicationRepository {
	return &GormGiftApplicationRepository{db: db}
}

// Save creates a gift application record
func (r *GormGiftApplicationRepository) Save(ctx context.Context, record *promotion.GiftApplicationRecord) error {
	var m models.GiftApplicationModel
	if err := m.FromDomain(record); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	record.ID = m.ID
	return nil
}

// FindByGeneratedOrderIDs returns records whose generated order id is in
// the given set
func (r *GormGiftApplicationRepository) FindByGeneratedOrderIDs(ctx context.Context, orderIDs []int64) ([]promotion.GiftApplicationRecord, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}
	var ms []models.GiftApplicationModel
	if err := r.db.WithContext(ctx).
		Where("generated_order_id IN ?", orderIDs).
		Find(&ms).Error; err != nil {
		return nil, err
	}
	records := make([]promotion.GiftApplicationRecord, 0, len(ms))
	for i := range ms {
		record, err := ms[i].ToDomain()
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, nil
}

// DeleteByGeneratedOrderIDs deletes records whose generated order id is in
// the given set
func (r *GormGiftApplicationRepository) DeleteByGeneratedOrderIDs(ctx context.Context, orderIDs []int64) error {
	if len(orderIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("generated_order_id IN ?", orderIDs).
		Delete(&models.GiftApplicationModel{}).Error
}
