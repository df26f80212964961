package promotion

import (
	"testing"

	"github.com/oms/backend/internal/domain/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func qualifiedGroup() *DestinationGroup {
	return &DestinationGroup{
		RuleID:      1,
		Key:         "서울시 강남구 1",
		Destination: order.Destination{Name: "홍길동", Phone: "010-1234-5678", Addr: "서울시 강남구 1"},
		TotalQty:    6,
		OrderIDs:    []int64{10, 11},
		IsQualified: true,
		GiftQty:     2,
	}
}

func TestNewGiftApplicationRecord(t *testing.T) {
	t.Run("valid record", func(t *testing.T) {
		record, err := NewGiftApplicationRecord(1, qualifiedGroup(), "KIT-GIFT-01", 99)
		require.NoError(t, err)

		assert.Equal(t, int64(1), record.RuleID)
		assert.Equal(t, "KIT-GIFT-01", record.GiftKitID)
		assert.Equal(t, 2, record.GiftQty)
		assert.Equal(t, []int64{10, 11}, record.SourceOrderIDs)
		assert.Equal(t, int64(99), record.GeneratedOrderID)
		assert.False(t, record.IsConfirmed)
		assert.Equal(t, "홍길동", record.ReceiverName)
	})

	t.Run("copies source ids", func(t *testing.T) {
		group := qualifiedGroup()
		record, err := NewGiftApplicationRecord(1, group, "KIT-GIFT-01", 99)
		require.NoError(t, err)

		group.OrderIDs[0] = 777
		assert.Equal(t, int64(10), record.SourceOrderIDs[0])
	})

	t.Run("rejects missing generated order id", func(t *testing.T) {
		_, err := NewGiftApplicationRecord(1, qualifiedGroup(), "KIT-GIFT-01", 0)
		assert.Error(t, err)
	})

	t.Run("rejects group without sources", func(t *testing.T) {
		group := qualifiedGroup()
		group.OrderIDs = nil
		_, err := NewGiftApplicationRecord(1, group, "KIT-GIFT-01", 99)
		assert.Error(t, err)
	})

	t.Run("rejects unqualified group", func(t *testing.T) {
		group := qualifiedGroup()
		group.IsQualified = false
		_, err := NewGiftApplicationRecord(1, group, "KIT-GIFT-01", 99)
		assert.Error(t, err)
	})
}

func TestGiftApplicationRecord_Validate(t *testing.T) {
	record, err := NewGiftApplicationRecord(1, qualifiedGroup(), "KIT-GIFT-01", 99)
	require.NoError(t, err)

	kitID := "KIT-GIFT-01"
	generated := &order.OrderLine{ID: 99, MatchedKitID: &kitID}
	assert.NoError(t, record.Validate(generated))

	t.Run("rejects nil or mismatched order", func(t *testing.T) {
		assert.Error(t, record.Validate(nil))
		assert.Error(t, record.Validate(&order.OrderLine{ID: 100, MatchedKitID: &kitID}))
	})

	t.Run("rejects wrong kit id", func(t *testing.T) {
		wrong := "KIT-OTHER"
		assert.Error(t, record.Validate(&order.OrderLine{ID: 99, MatchedKitID: &wrong}))
		assert.Error(t, record.Validate(&order.OrderLine{ID: 99}))
	})
}
