package promotion

import (
	"github.com/oms/backend/internal/domain/order"
)

// Matcher filters a pool of pending order lines down to the lines one
// rule actually covers. The contract is strict: the order's normalized
// ordered-at date must fall inside the rule's own window (tighter than
// the batch-level candidate window), the line must carry a site product
// code, and that code must exactly equal one of the rule's targets.
type Matcher struct{}

// NewMatcher creates a Matcher
func NewMatcher() *Matcher {
	return &Matcher{}
}

// Match returns the subset of orders the rule covers, preserving input order
func (m *Matcher) Match(rule *Rule, orders []order.OrderLine) []order.OrderLine {
	if rule == nil || !rule.HasTargets() {
		return nil
	}

	var matched []order.OrderLine
	for _, o := range orders {
		if !m.matches(rule, &o) {
			continue
		}
		matched = append(matched, o)
	}
	return matched
}

func (m *Matcher) matches(rule *Rule, o *order.OrderLine) bool {
	if !rule.AppliesToPlatform(o.PlatformName) {
		return false
	}
	if !rule.ContainsDate(o.OrderedDate()) {
		return false
	}
	code := o.TrimmedSiteCode()
	if code == "" {
		return false
	}
	return rule.MatchesTarget(code)
}
