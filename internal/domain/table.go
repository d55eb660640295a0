package domain

// LootTable is a weighted pool of item templates. Entry order is
// display-only; sampling depends only on weights. Draw cost is the
// pre-modifier currency price of a single draw.
type LootTable struct {
	Name     string  `json:"name"`
	DrawCost int     `json:"draw_cost"`
	Items    []*Item `json:"items"`
}

// TotalWeight sums entry weights. A table is drawable only when the
// total is positive and every weight is positive.
func (t *LootTable) TotalWeight() int {
	total := 0
	for _, it := range t.Items {
		total += it.Weight
	}
	return total
}

// Drawable reports whether a draw attempt should be accepted.
func (t *LootTable) Drawable() bool {
	if len(t.Items) == 0 {
		return false
	}
	for _, it := range t.Items {
		if it.Weight <= 0 {
			return false
		}
	}
	return true
}

// HighestWeightIndex returns the index of the single highest-weight
// entry, the one trash_to_treasure excludes. Ties resolve to the first
// entry in table order. Returns -1 for an empty table.
func (t *LootTable) HighestWeightIndex() int {
	best := -1
	bestWeight := 0
	for i, it := range t.Items {
		if it.Weight > bestWeight {
			best = i
			bestWeight = it.Weight
		}
	}
	return best
}
