package promotion

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

func TestPromoType_IsValid(t *testing.T) {
	tests := []struct {
		promoType PromoType
		isValid   bool
	}{
		{PromoTypePriceOnly, true},
		{PromoTypeQBased, true},
		{PromoTypeAllGift, true},
		{PromoType("COUPON"), false},
		{PromoType(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.promoType), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.promoType.IsValid())
		})
	}
}

func TestNewRule(t *testing.T) {
	start := d(2025, 3, 1)
	end := d(2025, 3, 31)

	t.Run("valid rule", func(t *testing.T) {
		rule, err := NewRule("3월 사은품", PromoTypeQBased, []string{"KIT-001", " KIT-002 "}, 3, 1, "KIT-GIFT-01", start, end)
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(rule.PromoGroupID, "PROMO_"))
		assert.Equal(t, []string{"KIT-001", "KIT-002"}, rule.TargetCodes)
		assert.Equal(t, 3, rule.ConditionQty)
		assert.Equal(t, 1, rule.GiftQty)
		assert.True(t, rule.HasTargets())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewRule("", PromoTypeQBased, []string{"KIT-001"}, 3, 1, "KIT-GIFT-01", start, end)
		assert.Error(t, err)
	})

	t.Run("rejects unknown promo type", func(t *testing.T) {
		_, err := NewRule("rule", PromoType("COUPON"), []string{"KIT-001"}, 3, 1, "KIT-GIFT-01", start, end)
		assert.Error(t, err)
	})

	t.Run("rejects blank-only targets", func(t *testing.T) {
		_, err := NewRule("rule", PromoTypeQBased, []string{"  ", ""}, 3, 1, "KIT-GIFT-01", start, end)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive condition qty", func(t *testing.T) {
		_, err := NewRule("rule", PromoTypeQBased, []string{"KIT-001"}, 0, 1, "KIT-GIFT-01", start, end)
		assert.Error(t, err)
	})

	t.Run("rejects inverted date range", func(t *testing.T) {
		_, err := NewRule("rule", PromoTypeQBased, []string{"KIT-001"}, 3, 1, "KIT-GIFT-01", end, start)
		assert.Error(t, err)
	})
}

func TestRule_ContainsDate(t *testing.T) {
	rule := Rule{StartDate: d(2025, 3, 1), EndDate: d(2025, 3, 31)}

	assert.True(t, rule.ContainsDate(d(2025, 3, 1)), "start date is inclusive")
	assert.True(t, rule.ContainsDate(d(2025, 3, 31)), "end date is inclusive")
	assert.True(t, rule.ContainsDate(d(2025, 3, 15)))
	assert.False(t, rule.ContainsDate(d(2025, 2, 28)))
	assert.False(t, rule.ContainsDate(d(2025, 4, 1)))

	// Time-of-day must not affect the comparison
	assert.True(t, rule.ContainsDate(time.Date(2025, 3, 31, 23, 59, 59, 0, time.Local)))
}

func TestRule_MatchesTarget(t *testing.T) {
	rule := Rule{TargetCodes: []string{"KIT-001", " KIT-002 "}}

	assert.True(t, rule.MatchesTarget("KIT-001"))
	assert.True(t, rule.MatchesTarget("  KIT-001  "), "site code is trimmed before comparing")
	assert.True(t, rule.MatchesTarget("KIT-002"), "targets are trimmed before comparing")

	assert.False(t, rule.MatchesTarget("KIT-0011"), "no substring matching")
	assert.False(t, rule.MatchesTarget("KIT-00"), "no prefix matching")
	assert.False(t, rule.MatchesTarget(""))
	assert.False(t, rule.MatchesTarget("   "))
}

func TestRule_AppliesToPlatform(t *testing.T) {
	all := Rule{}
	assert.True(t, all.AppliesToPlatform("smartstore"))

	platform := "smartstore"
	scoped := Rule{PlatformName: &platform}
	assert.True(t, scoped.AppliesToPlatform("smartstore"))
	assert.False(t, scoped.AppliesToPlatform("coupang"))

	empty := ""
	unscoped := Rule{PlatformName: &empty}
	assert.True(t, unscoped.AppliesToPlatform("coupang"), "empty platform restriction means all platforms")
}
