package promotion

import (
	"context"
	"fmt"

	"github.com/oms/backend/internal/domain/order"
	"github.com/oms/backend/internal/domain/promotion"
	"go.uber.org/zap"
)

// StatusTransitionManager owns the process_status transitions around
// gift application: consuming source lines after gifts are generated,
// and restoring them when a generated gift order is deleted.
type StatusTransitionManager struct {
	orders    order.OrderLineRepository
	records   promotion.GiftApplicationRepository
	batchSize int
	logger    *zap.Logger
}

// NewStatusTransitionManager creates a StatusTransitionManager
func NewStatusTransitionManager(orders order.OrderLineRepository, records promotion.GiftApplicationRepository, batchSize int, logger *zap.Logger) *StatusTransitionManager {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &StatusTransitionManager{
		orders:    orders,
		records:   records,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Apply marks the given source lines GIFT_APPLIED in bounded batches.
// The update is conditional on the line still being pending, so a line
// another run consumed first is not double-counted. Batch failures are
// logged and skipped rather than rolling back generated gifts: a gift
// that exists with an unmarked source is reconcilable, a lost gift is
// not. Returns the number of lines actually marked.
func (m *StatusTransitionManager) Apply(ctx context.Context, sourceIDs []int64) int64 {
	var marked int64

	for start := 0; start < len(sourceIDs); start += m.batchSize {
		end := start + m.batchSize
		if end > len(sourceIDs) {
			end = len(sourceIDs)
		}
		batch := sourceIDs[start:end]

		affected, err := m.orders.MarkGiftApplied(ctx, batch)
		if err != nil {
			m.logger.Error("status update batch failed",
				zap.Int("batch_start", start),
				zap.Int("batch_size", len(batch)),
				zap.Error(err),
			)
			continue
		}
		if affected != int64(len(batch)) {
			m.logger.Warn("some source orders were no longer pending",
				zap.Int("requested", len(batch)),
				zap.Int64("marked", affected),
			)
		}
		marked += affected
	}

	return marked
}

// Revert runs before any order deletion, bulk or single. If any of the
// ids being deleted is a generated gift order, the union of its source
// lines goes back to pending and the audit records are removed. Ids
// without a record are not gift orders and are left alone.
func (m *StatusTransitionManager) Revert(ctx context.Context, deletingIDs []int64) error {
	if len(deletingIDs) == 0 {
		return nil
	}

	records, err := m.records.FindByGeneratedOrderIDs(ctx, deletingIDs)
	if err != nil {
		return fmt.Errorf("looking up gift records for deletion: %w", err)
	}
	if len(records) == 0 {
		return nil
	}

	seen := make(map[int64]bool)
	var sourceIDs []int64
	for _, rec := range records {
		for _, id := range rec.SourceOrderIDs {
			if !seen[id] {
				seen[id] = true
				sourceIDs = append(sourceIDs, id)
			}
		}
	}

	if len(sourceIDs) > 0 {
		restored, err := m.orders.RevertGiftApplied(ctx, sourceIDs)
		if err != nil {
			// Non-fatal: the gift order is going away either way and
			// a stuck GIFT_APPLIED source is reconcilable.
			m.logger.Error("failed to restore source orders",
				zap.Int("source_count", len(sourceIDs)),
				zap.Error(err),
			)
		} else {
			m.logger.Info("restored source orders to pending",
				zap.Int64("restored", restored),
			)
		}
	}

	if err := m.records.DeleteByGeneratedOrderIDs(ctx, deletingIDs); err != nil {
		m.logger.Error("failed to delete gift application records", zap.Error(err))
	}

	return nil
}
