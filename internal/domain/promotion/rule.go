package promotion

import (
	"strings"
	"time"

	"github.com/oms/backend/internal/domain/shared"
)

// PromoType represents the kind of benefit a rule grants
type PromoType string

const (
	// PromoTypePriceOnly is a price discount with no physical gift
	PromoTypePriceOnly PromoType = "PRICE_ONLY"
	// PromoTypeQBased is "buy N get M": gifts scale with multiples of
	// the condition quantity
	PromoTypeQBased PromoType = "Q_BASED"
	// PromoTypeAllGift grants a gift per unit regardless of threshold
	PromoTypeAllGift PromoType = "ALL_GIFT"
)

// IsValid checks if the type is a valid PromoType
func (t PromoType) IsValid() bool {
	switch t {
	case PromoTypePriceOnly, PromoTypeQBased, PromoTypeAllGift:
		return true
	}
	return false
}

// String returns the string representation of PromoType
func (t PromoType) String() string {
	return string(t)
}

// Rule is a gift condition configured by operators. Read-only to the
// engine. Start and end dates are inclusive calendar dates.
type Rule struct {
	ID           int64
	PromoGroupID string
	PromoName    string
	PromoType    PromoType
	// TargetCodes are the site product codes that qualify. A rule with
	// no targets is skipped by candidate selection.
	TargetCodes  []string
	ConditionQty int
	GiftQty      int
	GiftKitID    string
	// PlatformName restricts matching to one platform; nil means all.
	PlatformName *string
	StartDate    time.Time
	EndDate      time.Time
	CreatedAt    time.Time
}

// NewRule creates a validated promotion rule
func NewRule(name string, promoType PromoType, targetCodes []string, conditionQty, giftQty int, giftKitID string, startDate, endDate time.Time) (*Rule, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PROMO_NAME", "Promotion name cannot be empty")
	}
	if !promoType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PROMO_TYPE", "Unknown promotion type")
	}
	targets := normalizeTargets(targetCodes)
	if len(targets) == 0 {
		return nil, shared.NewDomainError("INVALID_TARGETS", "Rule requires at least one target product code")
	}
	if conditionQty <= 0 {
		return nil, shared.NewDomainError("INVALID_CONDITION_QTY", "Condition quantity must be positive")
	}
	if giftQty <= 0 {
		return nil, shared.NewDomainError("INVALID_GIFT_QTY", "Gift quantity must be positive")
	}
	if giftKitID == "" {
		return nil, shared.NewDomainError("INVALID_GIFT_KIT", "Gift kit id cannot be empty")
	}
	if endDate.Before(startDate) {
		return nil, shared.NewDomainError("INVALID_DATE_RANGE", "End date cannot precede start date")
	}

	now := time.Now()
	return &Rule{
		PromoGroupID: "PROMO_" + now.Format("20060102150405"),
		PromoName:    name,
		PromoType:    promoType,
		TargetCodes:  targets,
		ConditionQty: conditionQty,
		GiftQty:      giftQty,
		GiftKitID:    giftKitID,
		StartDate:    dateOnly(startDate),
		EndDate:      dateOnly(endDate),
		CreatedAt:    now,
	}, nil
}

// HasTargets reports whether the rule names at least one usable target
// code after trimming.
func (r *Rule) HasTargets() bool {
	for _, t := range r.TargetCodes {
		if strings.TrimSpace(t) != "" {
			return true
		}
	}
	return false
}

// ContainsDate reports whether the given calendar date lies inside the
// rule's inclusive window.
func (r *Rule) ContainsDate(d time.Time) bool {
	d = dateOnly(d)
	return !d.Before(dateOnly(r.StartDate)) && !d.After(dateOnly(r.EndDate))
}

// MatchesTarget reports whether the trimmed site product code exactly
// equals one of the rule's trimmed targets. Strict-code-only by
// contract: substring matching against product names or kit ids
// produces false positives across similarly-named SKUs.
func (r *Rule) MatchesTarget(siteCode string) bool {
	siteCode = strings.TrimSpace(siteCode)
	if siteCode == "" {
		return false
	}
	for _, t := range r.TargetCodes {
		if strings.TrimSpace(t) == siteCode {
			return true
		}
	}
	return false
}

// AppliesToPlatform reports whether the rule covers the given platform
func (r *Rule) AppliesToPlatform(platform string) bool {
	if r.PlatformName == nil || *r.PlatformName == "" {
		return true
	}
	return *r.PlatformName == platform
}

func normalizeTargets(codes []string) []string {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
