package promotion

import (
	"strings"

	"github.com/oms/backend/internal/domain/order"
)

// NoAddressKey is the sentinel grouping key for lines without a usable
// receiver address. All addressless lines for a rule collapse into one
// group. Known simplification carried over from the system owner's
// contract; changing it needs an explicit product decision.
const NoAddressKey = "(no-address)"

// LineSummary is a compact view of one contributing order line
type LineSummary struct {
	OrderID      int64
	ProductName  string
	Qty          int
	MatchedKitID string
	SiteCode     string
}

// DestinationGroup accumulates matched lines that share one shipping
// destination under one rule. Ephemeral; exists only during a single
// evaluation pass.
type DestinationGroup struct {
	RuleID      int64
	Key         string
	Destination order.Destination
	TotalQty    int
	OrderIDs    []int64
	Lines       []LineSummary
	IsQualified bool
	GiftQty     int
}

// GroupByDestination partitions matched lines by trimmed receiver
// address. Groups come back in first-seen order so output is
// deterministic. O(n) in matched lines.
func GroupByDestination(rule *Rule, matched []order.OrderLine) []*DestinationGroup {
	byKey := make(map[string]*DestinationGroup, len(matched))
	var groups []*DestinationGroup

	for _, o := range matched {
		key := strings.TrimSpace(o.ReceiverAddr)
		if key == "" {
			key = NoAddressKey
		}

		g, ok := byKey[key]
		if !ok {
			g = &DestinationGroup{
				RuleID: rule.ID,
				Key:    key,
				Destination: order.Destination{
					Name:  o.ReceiverName,
					Phone: o.ReceiverPhone,
					Addr:  strings.TrimSpace(o.ReceiverAddr),
				},
				IsQualified: false,
			}
			byKey[key] = g
			groups = append(groups, g)
		}

		g.TotalQty += o.Qty
		g.OrderIDs = append(g.OrderIDs, o.ID)

		kitID := ""
		if o.MatchedKitID != nil {
			kitID = *o.MatchedKitID
		}
		g.Lines = append(g.Lines, LineSummary{
			OrderID:      o.ID,
			ProductName:  o.ProductName,
			Qty:          o.Qty,
			MatchedKitID: kitID,
			SiteCode:     o.TrimmedSiteCode(),
		})
	}

	return groups
}
