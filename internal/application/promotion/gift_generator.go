package promotion

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oms/backend/internal/domain/order"
	"github.com/oms/backend/internal/domain/promotion"
	"github.com/oms/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// GiftGenerator materializes qualified targets as synthetic order
// lines plus one audit record each. Writes go out in small batches
// separated by a delay; the store behind the order ledger is rate
// limited.
type GiftGenerator struct {
	orders    order.OrderLineRepository
	records   promotion.GiftApplicationRepository
	idem      shared.IdempotencyStore
	batchSize int
	delay     time.Duration
	keyTTL    time.Duration
	logger    *zap.Logger
}

// NewGiftGenerator creates a GiftGenerator
func NewGiftGenerator(orders order.OrderLineRepository, records promotion.GiftApplicationRepository, idem shared.IdempotencyStore, batchSize int, delay time.Duration, keyTTL time.Duration, logger *zap.Logger) *GiftGenerator {
	if batchSize <= 0 {
		batchSize = 5
	}
	return &GiftGenerator{
		orders:    orders,
		records:   records,
		idem:      idem,
		batchSize: batchSize,
		delay:     delay,
		keyTTL:    keyTTL,
		logger:    logger,
	}
}

// Generate creates gift order lines and audit records for every target.
// Each target's idempotency key is marked only after its line and
// record are committed, so failed targets stay retryable.
// An insert failure aborts the remaining batches; earlier batches stay
// committed. A record-insert failure after its order was created is the
// orphan case and is surfaced as shared.ErrOrphanGiftOrder so
// reconciliation can find and repair it.
func (g *GiftGenerator) Generate(ctx context.Context, runID string, targets []Target) (*GenerateResult, error) {
	result := &GenerateResult{}
	seenSources := make(map[int64]bool)

	for start := 0; start < len(targets); start += g.batchSize {
		end := start + g.batchSize
		if end > len(targets) {
			end = len(targets)
		}
		batch := targets[start:end]

		if start > 0 && g.delay > 0 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(g.delay):
			}
		}

		if err := g.generateBatch(ctx, runID, batch, result, seenSources); err != nil {
			return result, err
		}

		g.logger.Info("gift batch written",
			zap.String("run_id", runID),
			zap.Int("batch_start", start),
			zap.Int("batch_size", len(batch)),
		)
	}

	return result, nil
}

func (g *GiftGenerator) generateBatch(ctx context.Context, runID string, batch []Target, result *GenerateResult, seenSources map[int64]bool) error {
	lines := make([]order.OrderLine, 0, len(batch))
	correlationIDs := make([]string, 0, len(batch))
	byCorrelation := make(map[string]Target, len(batch))

	for _, t := range batch {
		correlationID := uuid.NewString()
		orderNo := promotion.GiftOrderNo(t.Rule.ID, t.Group.Key, runID)

		line, err := order.NewGiftOrderLine(orderNo, t.Rule.GiftKitID, t.Group.GiftQty, t.Group.Destination, correlationID)
		if err != nil {
			return fmt.Errorf("constructing gift line for rule %d: %w", t.Rule.ID, err)
		}

		lines = append(lines, *line)
		correlationIDs = append(correlationIDs, correlationID)
		byCorrelation[correlationID] = t
	}

	if err := g.orders.BulkInsert(ctx, lines); err != nil {
		return fmt.Errorf("inserting gift order batch: %w", err)
	}

	// Two-phase correlation: look the inserted lines back up by the
	// embedded correlation id rather than trusting the store to return
	// ids in insertion order.
	created, err := g.orders.FindByCorrelationIDs(ctx, correlationIDs)
	if err != nil {
		return fmt.Errorf("%w: reading back gift order batch: %v", shared.ErrOrphanGiftOrder, err)
	}
	if len(created) != len(batch) {
		return fmt.Errorf("%w: inserted %d gift orders but found %d by correlation id", shared.ErrOrphanGiftOrder, len(batch), len(created))
	}

	for _, line := range created {
		if line.CorrelationID == nil {
			return fmt.Errorf("%w: created gift order %d has no correlation id", shared.ErrOrphanGiftOrder, line.ID)
		}
		t, ok := byCorrelation[*line.CorrelationID]
		if !ok {
			return fmt.Errorf("%w: created gift order %d matches no requested target", shared.ErrOrphanGiftOrder, line.ID)
		}

		record, err := promotion.NewGiftApplicationRecord(t.Rule.ID, t.Group, t.Rule.GiftKitID, line.ID)
		if err != nil {
			return fmt.Errorf("%w: building record for gift order %d: %v", shared.ErrOrphanGiftOrder, line.ID, err)
		}
		if err := record.Validate(&line); err != nil {
			return fmt.Errorf("%w: validating record for gift order %d: %v", shared.ErrOrphanGiftOrder, line.ID, err)
		}
		if err := g.records.Save(ctx, record); err != nil {
			g.logger.Error("orphan gift order: created but unrecorded",
				zap.Int64("gift_order_id", line.ID),
				zap.Int64("rule_id", t.Rule.ID),
				zap.Error(err),
			)
			return fmt.Errorf("%w: gift order %d: %v", shared.ErrOrphanGiftOrder, line.ID, err)
		}

		// The target's line and record are committed; only now does
		// its idempotency key get marked. A target the run never
		// reached stays unmarked, so a retry with the same run id
		// picks it up instead of skipping it.
		key := promotion.TargetKey(t.Rule.ID, t.Group.Key, runID)
		if _, err := g.idem.MarkProcessed(ctx, key, g.keyTTL); err != nil {
			g.logger.Warn("failed to mark applied target, a retried run may duplicate it",
				zap.Int64("gift_order_id", line.ID),
				zap.Int64("rule_id", t.Rule.ID),
				zap.Error(err),
			)
		}

		result.GiftOrderIDs = append(result.GiftOrderIDs, line.ID)
		for _, srcID := range t.Group.OrderIDs {
			if !seenSources[srcID] {
				seenSources[srcID] = true
				result.SourceOrderIDs = append(result.SourceOrderIDs, srcID)
			}
		}
	}

	return nil
}
