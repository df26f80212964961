package promotion

import (
	"time"

	"github.com/oms/backend/internal/domain/order"
	"github.com/oms/backend/internal/domain/shared"
)

// GiftApplicationRecord is the audit trail row linking one generated
// gift order to the rule that produced it and the source lines it
// consumed. Deleted when the generated order is deleted, at which point
// the sources revert to pending.
type GiftApplicationRecord struct {
	ID               int64
	RuleID           int64
	GiftKitID        string
	GiftQty          int
	ReceiverName     string
	ReceiverPhone    string
	ReceiverAddr     string
	SourceOrderIDs   []int64
	GeneratedOrderID int64
	IsConfirmed      bool
	CreatedAt        time.Time
}

// NewGiftApplicationRecord creates a validated audit record for a
// generated gift order.
func NewGiftApplicationRecord(ruleID int64, group *DestinationGroup, giftKitID string, generatedOrderID int64) (*GiftApplicationRecord, error) {
	if generatedOrderID == 0 {
		return nil, shared.NewDomainError("INVALID_GENERATED_ORDER", "Record requires the generated order id")
	}
	if len(group.OrderIDs) == 0 {
		return nil, shared.NewDomainError("INVALID_SOURCE_ORDERS", "Record requires at least one source order id")
	}
	if !group.IsQualified || group.GiftQty <= 0 {
		return nil, shared.NewDomainError("INVALID_STATE", "Record can only be created from a qualified group")
	}

	sourceIDs := make([]int64, len(group.OrderIDs))
	copy(sourceIDs, group.OrderIDs)

	return &GiftApplicationRecord{
		RuleID:           ruleID,
		GiftKitID:        giftKitID,
		GiftQty:          group.GiftQty,
		ReceiverName:     group.Destination.Name,
		ReceiverPhone:    group.Destination.Phone,
		ReceiverAddr:     group.Destination.Addr,
		SourceOrderIDs:   sourceIDs,
		GeneratedOrderID: generatedOrderID,
		CreatedAt:        time.Now(),
	}, nil
}

// Validate checks the record invariants against the generated order line
func (r *GiftApplicationRecord) Validate(generated *order.OrderLine) error {
	if generated == nil || generated.ID != r.GeneratedOrderID {
		return shared.NewDomainError("INVALID_GENERATED_ORDER", "Record does not reference the generated order")
	}
	if generated.MatchedKitID == nil || *generated.MatchedKitID != r.GiftKitID {
		return shared.NewDomainError("INVALID_GIFT_KIT", "Generated order must carry the gift kit id")
	}
	if len(r.SourceOrderIDs) == 0 {
		return shared.NewDomainError("INVALID_SOURCE_ORDERS", "Record requires at least one source order id")
	}
	return nil
}
