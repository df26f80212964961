package promotion

// Qualify decides whether a destination group clears the rule's
// quantity threshold and, if so, annotates it with the earned gift
// quantity. Gifts scale with how many times the threshold is cleared:
// giftQty = floor(total / conditionQty) * rule.GiftQty.
// Non-qualifying groups are returned unqualified with zero gifts.
func Qualify(rule *Rule, group *DestinationGroup) *DestinationGroup {
	if rule.ConditionQty <= 0 || group.TotalQty < rule.ConditionQty {
		group.IsQualified = false
		group.GiftQty = 0
		return group
	}

	group.IsQualified = true
	group.GiftQty = (group.TotalQty / rule.ConditionQty) * rule.GiftQty
	return group
}

// QualifyAll filters groups down to the qualified ones, dropping
// non-qualifying groups entirely (no partial credit).
func QualifyAll(rule *Rule, groups []*DestinationGroup) []*DestinationGroup {
	var qualified []*DestinationGroup
	for _, g := range groups {
		if Qualify(rule, g).IsQualified {
			qualified = append(qualified, g)
		}
	}
	return qualified
}
