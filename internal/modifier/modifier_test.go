package modifier

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/lootledger/engine/internal/domain"
)

func itemWith(mods ...domain.ItemModifier) *domain.Item {
	return &domain.Item{
		ID:           uuid.New(),
		Name:         "Trinket",
		Kind:         domain.KindEquipment,
		Quantity:     1,
		Enchantments: mods,
	}
}

func functional(kind domain.EffectKind, mode domain.ValueMode, value float64) domain.ItemModifier {
	return domain.ItemModifier{Name: string(kind), Kind: kind, Mode: mode, Value: value}
}

func TestAggregate(t *testing.T) {
	t.Run("Best Case: Sums Across Equipped And Upgrades", func(t *testing.T) {
		p := domain.NewPlayer("tester", 0)
		p.Equipped = []*domain.Item{
			itemWith(functional(domain.EffectDrawCostReduction, domain.ModeFlat, 5)),
		}
		p.Upgrades = []*domain.Item{
			itemWith(functional(domain.EffectDrawCostReduction, domain.ModeFlat, 5)),
			itemWith(functional(domain.EffectDrawCostReduction, domain.ModePercent, 20)),
		}

		set := Aggregate(p)
		assert.InDelta(t, 10.0, set.DrawCost.Flat, 0.0001)
		assert.InDelta(t, 20.0, set.DrawCost.Percent, 0.0001)
	})

	t.Run("Best Case: Channels Stay Independent", func(t *testing.T) {
		p := domain.NewPlayer("tester", 0)
		p.Equipped = []*domain.Item{itemWith(
			functional(domain.EffectSellPriceIncrease, domain.ModeFlat, 10),
			functional(domain.EffectCraftedSellPriceIncrease, domain.ModePercent, 50),
		)}

		set := Aggregate(p)
		assert.InDelta(t, 10.0, set.SellPrice.Flat, 0.0001)
		assert.InDelta(t, 0.0, set.SellPrice.Percent, 0.0001)
		assert.InDelta(t, 50.0, set.CraftedSellPrice.Percent, 0.0001)
		assert.InDelta(t, 0.0, set.CraftedSellPrice.Flat, 0.0001)
	})

	t.Run("Boundary Case: Double Chance Capped At 100", func(t *testing.T) {
		p := domain.NewPlayer("tester", 0)
		p.Upgrades = []*domain.Item{
			itemWith(functional(domain.EffectDoubleQuantityChance, domain.ModePercent, 80)),
			itemWith(functional(domain.EffectDoubleQuantityChance, domain.ModePercent, 45)),
		}

		set := Aggregate(p)
		assert.InDelta(t, 100.0, set.DoubleQuantityChance, 0.0001)
	})

	t.Run("Boundary Case: Monetary Enchantments Ignored", func(t *testing.T) {
		rolled := 25.0
		p := domain.NewPlayer("tester", 0)
		p.Equipped = []*domain.Item{itemWith(
			domain.ItemModifier{Name: "Gilded", Mode: domain.ModeFlat, Rolled: &rolled},
		)}

		set := Aggregate(p)
		assert.Equal(t, Set{}, set)
	})

	t.Run("Nil/Empty Case: No Sources", func(t *testing.T) {
		set := Aggregate(domain.NewPlayer("tester", 0))
		assert.Equal(t, Set{}, set)
	})
}

func TestAdjustmentComposition(t *testing.T) {
	t.Run("Cost: Percent Before Flat", func(t *testing.T) {
		adj := Adjustment{Flat: 10, Percent: 20}
		// floor(max(0, 100*0.8 - 10)) = 70
		assert.Equal(t, 70, adj.ReduceCost(100))
	})

	t.Run("Cost: Floored At Zero", func(t *testing.T) {
		adj := Adjustment{Flat: 500, Percent: 50}
		assert.Equal(t, 0, adj.ReduceCost(100))
	})

	t.Run("Value: Percent Before Flat", func(t *testing.T) {
		adj := Adjustment{Flat: 10, Percent: 20}
		// floor(100*1.2 + 10) = 130
		assert.Equal(t, 130, adj.IncreaseValue(100))
	})

	t.Run("Value: Truncates Final Result", func(t *testing.T) {
		adj := Adjustment{Percent: 15}
		// 33*1.15 = 37.95 -> 37
		assert.Equal(t, 37, adj.IncreaseValue(33))
	})

	t.Run("Nil/Empty Case: Zero Adjustment Is Identity", func(t *testing.T) {
		var adj Adjustment
		assert.Equal(t, 100, adj.ReduceCost(100))
		assert.Equal(t, 100, adj.IncreaseValue(100))
	})
}

func TestSellAdjustment(t *testing.T) {
	set := Set{
		SellPrice:        Adjustment{Flat: 5},
		CraftedSellPrice: Adjustment{Flat: 9},
	}
	assert.Equal(t, Adjustment{Flat: 5}, set.SellAdjustment(false))
	assert.Equal(t, Adjustment{Flat: 9}, set.SellAdjustment(true))
}
