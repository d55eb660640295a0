package domain

// Rarity names the tier rolled onto equipment items. An empty Rarity
// means the item has no tier (non-equipment, or not yet rolled).
type Rarity string

const (
	RarityNormal    Rarity = "Normal"
	RarityRare      Rarity = "Rare"
	RarityEpic      Rarity = "Epic"
	RarityLegendary Rarity = "Legendary"
)

// RarityTier couples a tier name with its roll weight and the maximum
// number of functional enchantments a freshly crafted equipment item of
// that tier may receive.
type RarityTier struct {
	Name       Rarity `json:"name"`
	Weight     int    `json:"weight"`
	MaxEffects int    `json:"max_effects"`
}

// RaritySystem holds the ordered tier list. Weights may be overridden by
// saved state; the tier set and slot caps are fixed.
type RaritySystem struct {
	Tiers []RarityTier `json:"tiers"`
}

// DefaultRaritySystem returns the built-in tier weights and slot caps.
func DefaultRaritySystem() RaritySystem {
	return RaritySystem{Tiers: []RarityTier{
		{Name: RarityNormal, Weight: 500, MaxEffects: 1},
		{Name: RarityRare, Weight: 300, MaxEffects: 2},
		{Name: RarityEpic, Weight: 150, MaxEffects: 3},
		{Name: RarityLegendary, Weight: 50, MaxEffects: 5},
	}}
}

// Tier looks up a tier by name.
func (r RaritySystem) Tier(name Rarity) (RarityTier, bool) {
	for _, t := range r.Tiers {
		if t.Name == name {
			return t, true
		}
	}
	return RarityTier{}, false
}

// Roll selects a tier, weighted by the configured weights. rnd must
// return values in [0, 1).
func (r RaritySystem) Roll(rnd func() float64) (RarityTier, error) {
	total := 0
	for _, t := range r.Tiers {
		if t.Weight < 0 {
			return RarityTier{}, ErrInvalidConfiguration
		}
		total += t.Weight
	}
	if total <= 0 {
		return RarityTier{}, ErrInvalidConfiguration
	}

	target := rnd() * float64(total)
	acc := 0
	for _, t := range r.Tiers {
		acc += t.Weight
		if target < float64(acc) {
			return t, nil
		}
	}
	return r.Tiers[len(r.Tiers)-1], nil
}
