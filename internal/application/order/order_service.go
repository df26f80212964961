package order

import (
	"context"
	"fmt"

	promoapp "github.com/oms/backend/internal/application/promotion"
	"github.com/oms/backend/internal/domain/order"
	"go.uber.org/zap"
)

// Service handles order ledger operations that sit outside the gift
// engine proper: deletion (with the mandatory gift reversal check) and
// batch finalization.
type Service struct {
	orders order.OrderLineRepository
	status *promoapp.StatusTransitionManager
	logger *zap.Logger
}

// NewService creates an order Service
func NewService(orders order.OrderLineRepository, status *promoapp.StatusTransitionManager, logger *zap.Logger) *Service {
	return &Service{
		orders: orders,
		status: status,
		logger: logger,
	}
}

// Delete removes a single order line. The reversal check runs
// unconditionally first: if the line is a generated gift order, its
// source lines go back to pending before the line disappears.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.BulkDelete(ctx, []int64{id})
}

// BulkDelete removes order lines by id, reverting any generated gift
// orders among them first.
func (s *Service) BulkDelete(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	if err := s.status.Revert(ctx, ids); err != nil {
		return fmt.Errorf("reverting gift status before deletion: %w", err)
	}

	if err := s.orders.DeleteByIDs(ctx, ids); err != nil {
		return fmt.Errorf("deleting order lines: %w", err)
	}

	s.logger.Info("order lines deleted", zap.Int("count", len(ids)))
	return nil
}

// MarkBatchDone finalizes the current batch: every line not yet DONE
// becomes DONE. Finalization owns the terminal state; the gift engine
// never touches DONE lines again.
func (s *Service) MarkBatchDone(ctx context.Context) (int64, error) {
	finalized, err := s.orders.MarkAllDone(ctx)
	if err != nil {
		return 0, fmt.Errorf("finalizing batch: %w", err)
	}
	s.logger.Info("batch finalized", zap.Int64("lines", finalized))
	return finalized, nil
}
