package promotion

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/oms/backend/internal/domain/order"
)

// TargetKey derives the deterministic idempotency key for one
// (rule, destination, run) combination. Retried or concurrent runs
// produce the same key for the same target and can detect duplicates
// instead of relying on random order numbers staying unique.
func TargetKey(ruleID int64, destinationKey, runID string) string {
	sum := sha256.Sum256([]byte(destinationKey))
	return fmt.Sprintf("gift:%d:%s:%s", ruleID, hex.EncodeToString(sum[:8]), runID)
}

// GiftOrderNo derives the synthetic order number for a gift line from
// the same inputs as TargetKey, keeping the reserved prefix that
// distinguishes generated numbers from vendor order numbers.
func GiftOrderNo(ruleID int64, destinationKey, runID string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d|%s|%s", ruleID, destinationKey, runID)))
	return order.GiftOrderNoPrefix + hex.EncodeToString(sum[:10])
}
