package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/oms/backend/internal/domain/promotion"
	"github.com/oms/backend/internal/domain/shared"
	"github.com/oms/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPromoRuleRepository implements promotion.RuleRepository using GORM
type GormPromoRuleRepository struct {
	db *gorm.DB
}

// NewGormPromoRuleRepository creates a new GormPromoRuleRepository
func NewGormPromoRuleRepository(db *gorm.DB) *GormPromoRuleRepository {
	return &GormPromoRuleRepository{db: db}
}

// FindByID finds a rule by its ID
func (r *GormPromoRuleRepository) FindByID(ctx context.Context, id int64) (*promotion.Rule, error) {
	var m models.PromoRuleModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain()
}

// FindCandidates returns rules of the given type whose inclusive window
// overlaps [minDate, maxDate], newest first
func (r *GormPromoRuleRepository) FindCandidates(ctx context.Context, minDate, maxDate time.Time, promoType promotion.PromoType) ([]promotion.Rule, error) {
	var ms []models.PromoRuleModel
	if err := r.db.WithContext(ctx).
		Where("promo_type = ?", promoType.String()).
		Where("start_date <= ? AND end_date >= ?", maxDate, minDate).
		Order("created_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	rules := make([]promotion.Rule, 0, len(ms))
	for i := range ms {
		rule, err := ms[i].ToDomain()
		if err != nil {
			return nil, err
		}
		rules = append(rules, *rule)
	}
	return rules, nil
}

// Save creates or updates a rule
func (r *GormPromoRuleRepository) Save(ctx context.Context, rule *promotion.Rule) error {
	var m models.PromoRuleModel
	if err := m.FromDomain(rule); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Save(&m).Error; err != nil {
		return err
	}
	rule.ID = m.ID
	return nil
}

// Delete deletes a rule by its ID
func (r *GormPromoRuleRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.PromoRuleModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
