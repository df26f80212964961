package promotion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQualify(t *testing.T) {
	tests := []struct {
		name         string
		conditionQty int
		ruleGiftQty  int
		totalQty     int
		qualified    bool
		giftQty      int
	}{
		{"exactly at threshold", 3, 1, 3, true, 1},
		{"below threshold", 3, 1, 2, false, 0},
		{"double threshold doubles gifts", 3, 1, 6, true, 2},
		{"remainder is floored", 3, 1, 7, true, 2},
		{"multi-gift rule scales", 3, 2, 7, true, 4},
		{"buy one get one", 1, 1, 4, true, 4},
		{"zero total", 3, 1, 0, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := &Rule{ConditionQty: tt.conditionQty, GiftQty: tt.ruleGiftQty}
			group := &DestinationGroup{TotalQty: tt.totalQty}

			got := Qualify(rule, group)

			assert.Equal(t, tt.qualified, got.IsQualified)
			assert.Equal(t, tt.giftQty, got.GiftQty)
		})
	}
}

func TestQualify_ZeroConditionNeverQualifies(t *testing.T) {
	rule := &Rule{ConditionQty: 0, GiftQty: 1}
	got := Qualify(rule, &DestinationGroup{TotalQty: 10})
	assert.False(t, got.IsQualified)
}

func TestQualifyAll_DropsNonQualifying(t *testing.T) {
	rule := &Rule{ConditionQty: 3, GiftQty: 1}
	groups := []*DestinationGroup{
		{Key: "A", TotalQty: 5},
		{Key: "B", TotalQty: 2},
		{Key: "C", TotalQty: 3},
	}

	qualified := QualifyAll(rule, groups)
	require.Len(t, qualified, 2)
	assert.Equal(t, "A", qualified[0].Key)
	assert.Equal(t, "C", qualified[1].Key)
	assert.Equal(t, 1, qualified[0].GiftQty)
}
