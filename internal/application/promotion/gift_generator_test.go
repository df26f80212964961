package promotion

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oms/backend/internal/domain/order"
	"github.com/oms/backend/internal/domain/promotion"
	"github.com/oms/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func target(ruleID int64, destKey string, giftQty int, sourceIDs ...int64) Target {
	rule := testRule()
	rule.ID = ruleID
	return Target{
		Rule: rule,
		Group: &promotion.DestinationGroup{
			RuleID:      ruleID,
			Key:         destKey,
			Destination: order.Destination{Name: "홍길동", Addr: destKey},
			OrderIDs:    sourceIDs,
			IsQualified: true,
			GiftQty:     giftQty,
		},
	}
}

func newTestGenerator(orders *MockOrderLineRepository, records *MockGiftApplicationRepository, idem *MockIdempotencyStore, batchSize int, delay time.Duration) *GiftGenerator {
	return NewGiftGenerator(orders, records, idem, batchSize, delay, time.Hour, zap.NewNop())
}

func TestGiftGenerator_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates one gift line and record per target", func(t *testing.T) {
		orders := new(MockOrderLineRepository)
		records := new(MockGiftApplicationRepository)
		idem := new(MockIdempotencyStore)
		gen := newTestGenerator(orders, records, idem, 5, 0)
		idem.On("MarkProcessed", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)

		replayInserted(orders, 100)
		var saved []*promotion.GiftApplicationRecord
		records.On("Save", mock.Anything, mock.AnythingOfType("*promotion.GiftApplicationRecord")).
			Run(func(args mock.Arguments) {
				saved = append(saved, args.Get(1).(*promotion.GiftApplicationRecord))
			}).
			Return(nil)

		targets := []Target{
			target(1, "서울시 강남구 1", 1, 10, 11),
			target(1, "부산시 해운대구 2", 2, 12),
		}

		result, err := gen.Generate(ctx, "run-1", targets)
		require.NoError(t, err)

		assert.Equal(t, []int64{100, 101}, result.GiftOrderIDs)
		assert.Equal(t, []int64{10, 11, 12}, result.SourceOrderIDs)

		require.Len(t, saved, 2)
		assert.Equal(t, int64(100), saved[0].GeneratedOrderID)
		assert.Equal(t, []int64{10, 11}, saved[0].SourceOrderIDs)
		assert.Equal(t, "KIT-GIFT-01", saved[0].GiftKitID)

		// One key per committed target
		idem.AssertNumberOfCalls(t, "MarkProcessed", 2)
		idem.AssertCalled(t, "MarkProcessed", mock.Anything,
			promotion.TargetKey(1, "서울시 강남구 1", "run-1"), mock.Anything)
	})

	t.Run("deduplicates shared source lines across targets", func(t *testing.T) {
		orders := new(MockOrderLineRepository)
		records := new(MockGiftApplicationRepository)
		idem := new(MockIdempotencyStore)
		gen := newTestGenerator(orders, records, idem, 5, 0)
		idem.On("MarkProcessed", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)

		replayInserted(orders, 100)
		records.On("Save", mock.Anything, mock.Anything).Return(nil)

		targets := []Target{
			target(1, "A", 1, 10, 11),
			target(2, "A", 1, 11, 12),
		}

		result, err := gen.Generate(ctx, "run-1", targets)
		require.NoError(t, err)
		assert.Equal(t, []int64{10, 11, 12}, result.SourceOrderIDs)
	})

	t.Run("insert failure aborts remaining batches", func(t *testing.T) {
		orders := new(MockOrderLineRepository)
		records := new(MockGiftApplicationRepository)
		idem := new(MockIdempotencyStore)
		gen := newTestGenerator(orders, records, idem, 1, 0)

		orders.On("BulkInsert", mock.Anything, mock.Anything).Return(errors.New("store unavailable"))

		result, err := gen.Generate(ctx, "run-1", []Target{target(1, "A", 1, 10)})
		require.Error(t, err)
		assert.Empty(t, result.GiftOrderIDs)
		records.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		// Unwritten targets stay unmarked so a retry regenerates them
		idem.AssertNotCalled(t, "MarkProcessed", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("read-back count mismatch is an orphan", func(t *testing.T) {
		orders := new(MockOrderLineRepository)
		records := new(MockGiftApplicationRepository)
		idem := new(MockIdempotencyStore)
		gen := newTestGenerator(orders, records, idem, 5, 0)

		orders.On("BulkInsert", mock.Anything, mock.Anything).Return(nil)
		orders.On("FindByCorrelationIDs", mock.Anything, mock.Anything).Return([]order.OrderLine{}, nil)

		_, err := gen.Generate(ctx, "run-1", []Target{target(1, "A", 1, 10)})
		assert.ErrorIs(t, err, shared.ErrOrphanGiftOrder)
	})

	t.Run("record save failure is an orphan", func(t *testing.T) {
		orders := new(MockOrderLineRepository)
		records := new(MockGiftApplicationRepository)
		idem := new(MockIdempotencyStore)
		gen := newTestGenerator(orders, records, idem, 5, 0)

		replayInserted(orders, 100)
		records.On("Save", mock.Anything, mock.Anything).Return(errors.New("insert failed"))

		_, err := gen.Generate(ctx, "run-1", []Target{target(1, "A", 1, 10)})
		assert.ErrorIs(t, err, shared.ErrOrphanGiftOrder)
		idem.AssertNotCalled(t, "MarkProcessed", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cancelled context stops between batches", func(t *testing.T) {
		orders := new(MockOrderLineRepository)
		records := new(MockGiftApplicationRepository)
		idem := new(MockIdempotencyStore)
		gen := newTestGenerator(orders, records, idem, 1, time.Second)

		replayInserted(orders, 100)
		records.On("Save", mock.Anything, mock.Anything).Return(nil)
		idem.On("MarkProcessed", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		targets := []Target{
			target(1, "A", 1, 10),
			target(2, "B", 1, 11),
		}

		result, err := gen.Generate(cancelled, "run-1", targets)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Len(t, result.GiftOrderIDs, 1, "first batch commits before the delay")
	})

	t.Run("gift order numbers are deterministic per target and run", func(t *testing.T) {
		orders := new(MockOrderLineRepository)
		records := new(MockGiftApplicationRepository)
		idem := new(MockIdempotencyStore)
		gen := newTestGenerator(orders, records, idem, 5, 0)

		var inserted []order.OrderLine
		orders.On("BulkInsert", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				inserted = append(inserted, args.Get(1).([]order.OrderLine)...)
			}).
			Return(errors.New("stop after capture"))

		_, _ = gen.Generate(ctx, "run-1", []Target{target(1, "A", 1, 10)})
		_, _ = gen.Generate(ctx, "run-1", []Target{target(1, "A", 1, 10)})

		require.Len(t, inserted, 2)
		assert.Equal(t, inserted[0].SiteOrderNo, inserted[1].SiteOrderNo)
		assert.Equal(t, promotion.GiftOrderNo(1, "A", "run-1"), inserted[0].SiteOrderNo)
	})
}
