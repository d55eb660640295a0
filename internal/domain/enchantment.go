package domain

// EffectKind identifies what a functional enchantment modifies. The set
// is closed; the modifier aggregator switches exhaustively over it.
type EffectKind string

const (
	EffectDrawCostReduction        EffectKind = "draw_cost_reduction"
	EffectDoubleQuantityChance     EffectKind = "double_quantity_chance"
	EffectSellPriceIncrease        EffectKind = "sell_price_increase"
	EffectCraftedSellPriceIncrease EffectKind = "crafted_sell_price_increase"
)

// Valid reports whether the kind is one of the recognized effect kinds.
func (k EffectKind) Valid() bool {
	switch k {
	case EffectDrawCostReduction, EffectDoubleQuantityChance,
		EffectSellPriceIncrease, EffectCraftedSellPriceIncrease:
		return true
	}
	return false
}

// Enchantment is a monetary enchantment template. Applying it rolls a
// uniform value in [Min, Max] and permanently adjusts the target item's
// gold value, floored at zero. Target KindMisc is compatible with every
// item kind.
type Enchantment struct {
	Name       string    `json:"name"`
	Target     ItemKind  `json:"target"`
	Min        float64   `json:"min"`
	Max        float64   `json:"max"`
	Mode       ValueMode `json:"mode"`
	CostAmount int       `json:"cost_amount"`
}

// CompatibleWith reports whether the enchantment may be applied to items
// of the given kind.
func (e *Enchantment) CompatibleWith(kind ItemKind) bool {
	return e.Target == kind || e.Target == KindMisc
}

// Effect is a functional enchantment template: a fixed-value modifier
// attached to equipment and upgrades during crafting and read on demand
// by the modifier aggregator. It never mutates gold value directly.
type Effect struct {
	Name   string     `json:"name"`
	Kind   EffectKind `json:"kind"`
	Value  float64    `json:"value"`
	Mode   ValueMode  `json:"mode"`
	Weight int        `json:"weight"`
}

// Applied returns the modifier record attached to an item when this
// effect is rolled onto it.
func (e *Effect) Applied() ItemModifier {
	return ItemModifier{
		Name:  e.Name,
		Kind:  e.Kind,
		Mode:  e.Mode,
		Value: e.Value,
	}
}
