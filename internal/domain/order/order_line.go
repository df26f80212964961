package order

import (
	"strings"
	"time"

	"github.com/oms/backend/internal/domain/shared"
)

// ProcessStatus represents the lifecycle flag of an order line.
// The zero value means the line is pending and has not been consumed
// by gift application or finalization yet; it is stored as NULL.
type ProcessStatus string

const (
	ProcessStatusPending     ProcessStatus = ""
	ProcessStatusGiftApplied ProcessStatus = "GIFT_APPLIED"
	ProcessStatusDone        ProcessStatus = "DONE"
)

// IsValid checks if the status is a valid ProcessStatus
func (s ProcessStatus) IsValid() bool {
	switch s {
	case ProcessStatusPending, ProcessStatusGiftApplied, ProcessStatusDone:
		return true
	}
	return false
}

// String returns the string representation of ProcessStatus
func (s ProcessStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// Pending lines may be consumed by gift application or finalized directly;
// deleting a generated gift order reverts its sources to pending.
// DONE is terminal.
func (s ProcessStatus) CanTransitionTo(target ProcessStatus) bool {
	switch s {
	case ProcessStatusPending:
		return target == ProcessStatusGiftApplied || target == ProcessStatusDone
	case ProcessStatusGiftApplied:
		return target == ProcessStatusDone || target == ProcessStatusPending
	case ProcessStatusDone:
		return false
	}
	return false
}

// GiftOrderNoPrefix is the reserved prefix for synthetic gift order
// numbers so they can never collide with vendor order numbers.
const GiftOrderNoPrefix = "GIFT-"

// OrderLine represents one purchased item line in the raw order ledger.
// Timestamps arrive in vendor-local string formats and are kept as-is;
// range comparisons go through the vendortime normalizer.
type OrderLine struct {
	ID              int64
	PlatformName    string
	SiteOrderNo     string
	ProductName     string
	OptionText      string
	SiteProductCode *string
	MatchedKitID    *string
	Qty             int
	OrderedAt       string
	PaidAt          string
	CollectedAt     string
	ReceiverName    string
	ReceiverPhone   string
	ReceiverAddr    string
	ProcessStatus   ProcessStatus
	// CorrelationID is set only on synthetic gift lines. It is a
	// client-generated UUID used to look the line back up after a bulk
	// insert instead of relying on positional id alignment.
	CorrelationID *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Destination holds the shipping contact fields copied onto gift lines.
type Destination struct {
	Name  string
	Phone string
	Addr  string
}

// IsGiftOrder reports whether the line was generated by the gift engine.
func (o *OrderLine) IsGiftOrder() bool {
	return strings.HasPrefix(o.SiteOrderNo, GiftOrderNoPrefix)
}

// TrimmedSiteCode returns the site product code with surrounding
// whitespace removed, or "" when the code is absent.
func (o *OrderLine) TrimmedSiteCode() string {
	if o.SiteProductCode == nil {
		return ""
	}
	return strings.TrimSpace(*o.SiteProductCode)
}

// OrderedDate returns the normalized calendar date of the ordered-at
// timestamp.
func (o *OrderLine) OrderedDate() time.Time {
	return VendorDate(o.OrderedAt)
}

// PaidDate returns the normalized calendar date of the paid-at timestamp.
func (o *OrderLine) PaidDate() time.Time {
	return VendorDate(o.PaidAt)
}

// NewGiftOrderLine constructs a synthetic gift order line. The line
// starts pending so it flows through normal fulfillment, and carries
// the gift kit id as both matched kit and product name so downstream
// BOM explosion can resolve it.
func NewGiftOrderLine(orderNo, giftKitID string, qty int, dest Destination, correlationID string) (*OrderLine, error) {
	if !strings.HasPrefix(orderNo, GiftOrderNoPrefix) {
		return nil, shared.NewDomainError("INVALID_ORDER_NO", "Gift order number must carry the reserved prefix")
	}
	if giftKitID == "" {
		return nil, shared.NewDomainError("INVALID_GIFT_KIT", "Gift kit id cannot be empty")
	}
	if qty <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Gift quantity must be positive")
	}
	if correlationID == "" {
		return nil, shared.NewDomainError("INVALID_CORRELATION_ID", "Correlation id cannot be empty")
	}

	kitID := giftKitID
	corrID := correlationID
	now := time.Now()
	return &OrderLine{
		SiteOrderNo:   orderNo,
		ProductName:   giftKitID,
		MatchedKitID:  &kitID,
		Qty:           qty,
		ReceiverName:  dest.Name,
		ReceiverPhone: dest.Phone,
		ReceiverAddr:  dest.Addr,
		ProcessStatus: ProcessStatusPending,
		CorrelationID: &corrID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}
