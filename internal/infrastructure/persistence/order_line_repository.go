package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/oms/backend/internal/domain/order"
	"github.com/oms/backend/internal/domain/shared"
	"github.com/oms/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOrderLineRepository implements order.OrderLineRepository using GORM
type GormOrderLineRepository struct {
	db *gorm.DB
}

// NewGormOrderLineRepository creates a new GormOrderLineRepository
func NewGormOrderLineRepository(db *gorm.DB) *GormOrderLineRepository {
	return &GormOrderLineRepository{db: db}
}

// FindByID finds an order line by its ID
func (r *GormOrderLineRepository) FindByID(ctx context.Context, id int64) (*order.OrderLine, error) {
	var m models.OrderLineModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindByIDs finds order lines by an ID list
func (r *GormOrderLineRepository) FindByIDs(ctx context.Context, ids []int64) ([]order.OrderLine, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var ms []models.OrderLineModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ms).Error; err != nil {
		return nil, err
	}
	return toDomainLines(ms), nil
}

// FindUnprocessed returns all pending lines ordered ascending by paid-at
func (r *GormOrderLineRepository) FindUnprocessed(ctx context.Context) ([]order.OrderLine, error) {
	var ms []models.OrderLineModel
	if err := r.db.WithContext(ctx).
		Where("process_status IS NULL").
		Order("paid_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return toDomainLines(ms), nil
}

// FindByCorrelationIDs looks up synthetic lines by correlation id
func (r *GormOrderLineRepository) FindByCorrelationIDs(ctx context.Context, correlationIDs []string) ([]order.OrderLine, error) {
	if len(correlationIDs) == 0 {
		return nil, nil
	}
	var ms []models.OrderLineModel
	if err := r.db.WithContext(ctx).
		Where("correlation_id IN ?", correlationIDs).
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return toDomainLines(ms), nil
}

// BulkInsert inserts the given lines in one request
func (r *GormOrderLineRepository) BulkInsert(ctx context.Context, lines []order.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}
	ms := make([]models.OrderLineModel, len(lines))
	for i := range lines {
		ms[i].FromDomain(&lines[i])
	}
	return r.db.WithContext(ctx).Create(&ms).Error
}

// MarkGiftApplied conditionally transitions pending lines to GIFT_APPLIED.
// The status predicate makes the transition a compare-and-set: a line
// already consumed by another run is left alone and not counted.
func (r *GormOrderLineRepository) MarkGiftApplied(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Model(&models.OrderLineModel{}).
		Where("id IN ? AND process_status IS NULL", ids).
		Update("process_status", order.ProcessStatusGiftApplied.String())
	return result.RowsAffected, result.Error
}

// RevertGiftApplied transitions GIFT_APPLIED lines back to pending
func (r *GormOrderLineRepository) RevertGiftApplied(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Model(&models.OrderLineModel{}).
		Where("id IN ? AND process_status = ?", ids, order.ProcessStatusGiftApplied.String()).
		Update("process_status", nil)
	return result.RowsAffected, result.Error
}

// MarkAllDone finalizes every non-DONE line
func (r *GormOrderLineRepository) MarkAllDone(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.OrderLineModel{}).
		Where("process_status IS NULL OR process_status <> ?", order.ProcessStatusDone.String()).
		Update("process_status", order.ProcessStatusDone.String())
	return result.RowsAffected, result.Error
}

// DeleteByIDs deletes order lines by an ID list
func (r *GormOrderLineRepository) DeleteByIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&models.OrderLineModel{}).Error
}

// FindDispatchable returns DONE lines with a kit id created in [from, to]
func (r *GormOrderLineRepository) FindDispatchable(ctx context.Context, from, to time.Time) ([]order.OrderLine, error) {
	var ms []models.OrderLineModel
	if err := r.db.WithContext(ctx).
		Where("process_status = ?", order.ProcessStatusDone.String()).
		Where("matched_kit_id IS NOT NULL").
		Where("created_at >= ? AND created_at <= ?", from, to).
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return toDomainLines(ms), nil
}

func toDomainLines(ms []models.OrderLineModel) []order.OrderLine {
	lines := make([]order.OrderLine, len(ms))
	for i := range ms {
		lines[i] = *ms[i].ToDomain()
	}
	return lines
}
