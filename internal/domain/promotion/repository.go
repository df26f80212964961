package promotion

import (
	"context"
	"time"
)

// RuleRepository defines the interface for promotion rule persistence
type RuleRepository interface {
	// FindByID finds a rule by ID
	FindByID(ctx context.Context, id int64) (*Rule, error)

	// FindCandidates returns rules of the given type whose inclusive
	// window overlaps [minDate, maxDate]
	// (start_date <= maxDate AND end_date >= minDate),
	// ordered by creation time descending
	FindCandidates(ctx context.Context, minDate, maxDate time.Time, promoType PromoType) ([]Rule, error)

	// Save creates or updates a rule
	Save(ctx context.Context, rule *Rule) error

	// Delete deletes a rule
	Delete(ctx context.Context, id int64) error
}

// GiftApplicationRepository defines the interface for gift application
// record persistence
type GiftApplicationRepository interface {
	// Save creates a gift application record
	Save(ctx context.Context, record *GiftApplicationRecord) error

	// FindByGeneratedOrderIDs returns records whose generated order id
	// is in the given set
	FindByGeneratedOrderIDs(ctx context.Context, orderIDs []int64) ([]GiftApplicationRecord, error)

	// DeleteByGeneratedOrderIDs deletes records whose generated order id
	// is in the given set
	DeleteByGeneratedOrderIDs(ctx context.Context, orderIDs []int64) error
}
