package promotion

import (
	"time"

	"github.com/oms/backend/internal/domain/promotion"
)

// Target pairs one qualified destination group with the rule that
// produced it. The unit of gift generation.
type Target struct {
	Rule  promotion.Rule
	Group *promotion.DestinationGroup
}

// ApplyResult summarizes one engine run for the caller
type ApplyResult struct {
	RunID            string
	OrdersScanned    int
	MinDate          time.Time
	MaxDate          time.Time
	RulesEvaluated   int
	TargetsQualified int
	TargetsSkipped   int
	GiftsCreated     int
	SourcesMarked    int64
}

// GenerateResult carries the outcome of the gift generation phase
type GenerateResult struct {
	GiftOrderIDs []int64
	// SourceOrderIDs is the deduplicated union of consumed source line
	// ids across all generated gifts, in first-seen order.
	SourceOrderIDs []int64
}
