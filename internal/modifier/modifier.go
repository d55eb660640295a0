// Package modifier aggregates the functional enchantments on a player's
// equipped items and consumed upgrades into the four modifier channels
// read by the draw, sell, and craft paths.
package modifier

import (
	"math"

	"github.com/lootledger/engine/internal/domain"
)

// MaxDoubleQuantityChance caps the summed double-quantity chance.
const MaxDoubleQuantityChance = 100.0

// Adjustment is one (flat, percent) modifier pair. Percent always
// applies before flat, and the result truncates to an integer only at
// the end, so callers on the cost and value paths agree on ordering.
type Adjustment struct {
	Flat    float64
	Percent float64
}

// ReduceCost applies the adjustment as a cost reduction:
// max(0, floor(base*(1-percent/100) - flat)).
func (a Adjustment) ReduceCost(base int) int {
	cost := float64(base)*(1-a.Percent/100) - a.Flat
	if cost < 0 {
		return 0
	}
	return int(math.Floor(cost))
}

// IncreaseValue applies the adjustment as a value increase:
// floor(base*(1+percent/100) + flat), floored at zero for negative
// adjustments.
func (a Adjustment) IncreaseValue(base int) int {
	value := float64(base)*(1+a.Percent/100) + a.Flat
	if value < 0 {
		return 0
	}
	return int(math.Floor(value))
}

// Set is the aggregated modifier state for one player.
type Set struct {
	DrawCost             Adjustment
	DoubleQuantityChance float64
	SellPrice            Adjustment
	CraftedSellPrice     Adjustment
}

// Aggregate scans the player's equipped items and consumed upgrades and
// sums every functional enchantment into its channel. The scan is
// read-only; nothing on the player changes.
func Aggregate(p *domain.Player) Set {
	var set Set
	for _, source := range p.ModifierSources() {
		for _, item := range source {
			for _, mod := range item.Enchantments {
				if !mod.Functional() {
					continue
				}
				set.apply(mod)
			}
		}
	}
	if set.DoubleQuantityChance > MaxDoubleQuantityChance {
		set.DoubleQuantityChance = MaxDoubleQuantityChance
	}
	return set
}

func (s *Set) apply(mod domain.ItemModifier) {
	switch mod.Kind {
	case domain.EffectDrawCostReduction:
		s.DrawCost.add(mod)
	case domain.EffectDoubleQuantityChance:
		s.DoubleQuantityChance += mod.Value
	case domain.EffectSellPriceIncrease:
		s.SellPrice.add(mod)
	case domain.EffectCraftedSellPriceIncrease:
		s.CraftedSellPrice.add(mod)
	}
}

func (a *Adjustment) add(mod domain.ItemModifier) {
	if mod.Mode == domain.ModePercent {
		a.Percent += mod.Value
	} else {
		a.Flat += mod.Value
	}
}

// SellAdjustment selects the sell-price channel for an item: crafted
// items read the crafted channel, everything else the plain one. The
// two never combine, so equipment bonuses cannot double-count.
func (s Set) SellAdjustment(crafted bool) Adjustment {
	if crafted {
		return s.CraftedSellPrice
	}
	return s.SellPrice
}
