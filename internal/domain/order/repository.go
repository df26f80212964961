package order

import (
	"context"
	"time"
)

// OrderLineRepository defines the interface for order line persistence
type OrderLineRepository interface {
	// FindByID finds an order line by ID
	FindByID(ctx context.Context, id int64) (*OrderLine, error)

	// FindByIDs finds order lines by an ID list
	FindByIDs(ctx context.Context, ids []int64) ([]OrderLine, error)

	// FindUnprocessed returns all pending lines (process_status IS NULL)
	// ordered ascending by the paid-at timestamp
	FindUnprocessed(ctx context.Context) ([]OrderLine, error)

	// FindByCorrelationIDs looks up synthetic lines by the client-generated
	// correlation IDs embedded at insert time
	FindByCorrelationIDs(ctx context.Context, correlationIDs []string) ([]OrderLine, error)

	// BulkInsert inserts the given lines in one request
	BulkInsert(ctx context.Context, lines []OrderLine) error

	// MarkGiftApplied conditionally transitions the given ids from
	// pending to GIFT_APPLIED. Only rows still pending are touched;
	// the affected row count is returned so the caller can detect
	// lines another run consumed first.
	MarkGiftApplied(ctx context.Context, ids []int64) (int64, error)

	// RevertGiftApplied transitions the given ids from GIFT_APPLIED
	// back to pending, making them eligible for matching again
	RevertGiftApplied(ctx context.Context, ids []int64) (int64, error)

	// MarkAllDone finalizes every non-DONE line in the current batch
	MarkAllDone(ctx context.Context) (int64, error)

	// DeleteByIDs deletes order lines by an ID list
	DeleteByIDs(ctx context.Context, ids []int64) error

	// FindDispatchable returns DONE lines with a resolvable kit id whose
	// upload time falls in [from, to], for BOM dispatch aggregation
	FindDispatchable(ctx context.Context, from, to time.Time) ([]OrderLine, error)
}
