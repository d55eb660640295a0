package crafting

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lootledger/engine/internal/domain"
	"github.com/lootledger/engine/internal/game"
	"github.com/lootledger/engine/internal/inventory"
)

// rollSequence returns a rnd stub that replays fixed values.
func rollSequence(values ...float64) func() float64 {
	i := 0
	return func() float64 {
		v := values[i%len(values)]
		i++
		return v
	}
}

func newCraftingWorld(rnd func() float64) (*game.Session, *domain.GameState) {
	state := domain.NewGameState()
	state.Items = []*domain.MasterItem{
		{Name: "Ore", Kind: domain.KindMisc, Value: 10, Quantity: 1},
		{Name: "Wood", Kind: domain.KindMisc, Value: 5, Quantity: 1},
		{Name: "Sword", Kind: domain.KindEquipment, Value: 100, Quantity: 1,
			Ingredients: []string{"Ore", "Ore", "Wood"}},
		{Name: "Lucky Charm", Kind: domain.KindUpgrade, Value: 40, Quantity: 1,
			Ingredients: []string{"Wood"}},
		{Name: "Bread", Kind: domain.KindMisc, Value: 3, Quantity: 2,
			Ingredients: []string{"Wood"}},
	}
	state.Effects = []*domain.Effect{
		{Name: "Bargain", Kind: domain.EffectDrawCostReduction, Value: 5, Mode: domain.ModeFlat, Weight: 1},
	}
	var opts []game.Option
	if rnd != nil {
		opts = append(opts, game.WithRand(rnd))
	}
	return game.NewSession(state, opts...), state
}

func addPlayer(session *game.Session, name string, currency int, stacks ...*domain.Item) *domain.Player {
	player := domain.NewPlayer(name, currency)
	player.Inventory = append(player.Inventory, stacks...)
	_ = session.Update(func(g *domain.GameState) error {
		g.Players[domain.Key(name)] = player
		return nil
	})
	return player
}

func stackOf(name string, kind domain.ItemKind, qty, value int) *domain.Item {
	return &domain.Item{ID: uuid.New(), Name: name, Kind: kind, Quantity: qty, Value: value}
}

func TestCraft(t *testing.T) {
	ctx := context.Background()

	t.Run("Best Case: Consumes Exact Multiset", func(t *testing.T) {
		session, _ := newCraftingWorld(rollSequence(0.0))
		player := addPlayer(session, "smith", 0,
			stackOf("Ore", domain.KindMisc, 3, 30),
			stackOf("Wood", domain.KindMisc, 2, 10))
		svc := NewService(session)

		result, err := svc.Craft(ctx, "smith", "Sword", 0)
		require.NoError(t, err)

		assert.Equal(t, map[string]int{"Ore": 2, "Wood": 1}, result.Consumed)
		assert.Equal(t, 1, inventory.QuantityByName(player, "Ore"))
		assert.Equal(t, 1, inventory.QuantityByName(player, "Wood"))
		assert.Equal(t, 1, inventory.QuantityByName(player, "Sword"))

		require.NotNil(t, result.Item)
		assert.True(t, result.Item.Crafted)
		assert.Equal(t, 1, result.Item.Quantity)
		assert.Equal(t, 0, result.Item.Weight)
	})

	t.Run("Best Case: Quantity Reset To Template Default", func(t *testing.T) {
		session, _ := newCraftingWorld(rollSequence(0.0))
		addPlayer(session, "baker", 0, stackOf("Wood", domain.KindMisc, 5, 25))
		svc := NewService(session)

		result, err := svc.Craft(ctx, "baker", "Bread", 0)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Item.Quantity)
		assert.Equal(t, 6, result.Item.Value)
	})

	t.Run("Atomicity: Missing Ingredients Consume Nothing", func(t *testing.T) {
		session, _ := newCraftingWorld(rollSequence(0.0))
		player := addPlayer(session, "smith", 0,
			stackOf("Ore", domain.KindMisc, 1, 10),
			stackOf("Wood", domain.KindMisc, 1, 5))
		svc := NewService(session)

		_, err := svc.Craft(ctx, "smith", "Sword", 0)
		require.ErrorIs(t, err, domain.ErrMissingIngredients)

		var missing *domain.MissingIngredientsError
		require.ErrorAs(t, err, &missing)
		require.Len(t, missing.Shortfalls, 1)
		assert.Equal(t, "Ore", missing.Shortfalls[0].Name)
		assert.Equal(t, 1, missing.Shortfalls[0].Have)
		assert.Equal(t, 2, missing.Shortfalls[0].Need)

		assert.Equal(t, 1, inventory.QuantityByName(player, "Ore"))
		assert.Equal(t, 1, inventory.QuantityByName(player, "Wood"))
	})

	t.Run("Rarity: Equipment Rolls A Tier Once", func(t *testing.T) {
		// 0.99 lands in the Legendary band of the default weights.
		session, _ := newCraftingWorld(rollSequence(0.99))
		addPlayer(session, "smith", 0,
			stackOf("Ore", domain.KindMisc, 2, 20),
			stackOf("Wood", domain.KindMisc, 1, 5))
		svc := NewService(session)

		result, err := svc.Craft(ctx, "smith", "Sword", 0)
		require.NoError(t, err)
		assert.Equal(t, domain.RarityLegendary, result.Item.Rarity)
	})

	t.Run("Slot Cap: Normal Equipment Takes One Effect", func(t *testing.T) {
		// First roll (rarity) at 0.0 => Normal (max 1 effect); the rest
		// select the only pooled effect.
		session, _ := newCraftingWorld(rollSequence(0.0))
		player := addPlayer(session, "smith", 1000,
			stackOf("Ore", domain.KindMisc, 2, 20),
			stackOf("Wood", domain.KindMisc, 1, 5))
		svc := NewService(session)

		result, err := svc.Craft(ctx, "smith", "Sword", 5)
		require.NoError(t, err)

		assert.Equal(t, domain.RarityNormal, result.Item.Rarity)
		assert.Len(t, result.EffectsRolled, 1)
		assert.Equal(t, 1, result.Item.FunctionalEffectCount())
		assert.Equal(t, StopReasonSlotCap, result.StopReason)
		assert.Equal(t, 1000-100, player.Currency)
	})

	t.Run("Slot Cap: Upgrade Items Are Uncapped", func(t *testing.T) {
		session, _ := newCraftingWorld(rollSequence(0.0))
		addPlayer(session, "smith", 1000, stackOf("Wood", domain.KindMisc, 1, 5))
		svc := NewService(session)

		result, err := svc.Craft(ctx, "smith", "Lucky Charm", 4)
		require.NoError(t, err)
		assert.Len(t, result.EffectsRolled, 4)
		assert.Equal(t, StopReasonComplete, result.StopReason)
	})

	t.Run("Error Case: Rolling Stops When Funds Run Out", func(t *testing.T) {
		session, _ := newCraftingWorld(rollSequence(0.0))
		player := addPlayer(session, "smith", 150, stackOf("Wood", domain.KindMisc, 1, 5))
		svc := NewService(session)

		result, err := svc.Craft(ctx, "smith", "Lucky Charm", 3)
		require.NoError(t, err)
		assert.Len(t, result.EffectsRolled, 1)
		assert.Equal(t, StopReasonFunds, result.StopReason)
		assert.Equal(t, 50, player.Currency)
	})

	t.Run("Error Case: Not Craftable", func(t *testing.T) {
		session, _ := newCraftingWorld(nil)
		addPlayer(session, "smith", 0)
		svc := NewService(session)

		_, err := svc.Craft(ctx, "smith", "Ore", 0)
		assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
	})

	t.Run("Error Case: Unknown Player", func(t *testing.T) {
		session, _ := newCraftingWorld(nil)
		svc := NewService(session)

		_, err := svc.Craft(ctx, "ghost", "Sword", 0)
		assert.ErrorIs(t, err, domain.ErrPlayerNotFound)
	})

	t.Run("Modifier: Crafted Sell Price Applied Before Inventory", func(t *testing.T) {
		session, _ := newCraftingWorld(rollSequence(0.0))
		player := addPlayer(session, "smith", 0, stackOf("Wood", domain.KindMisc, 1, 5))
		player.Upgrades = []*domain.Item{{
			ID: uuid.New(), Name: "Guild Seal", Kind: domain.KindUpgrade, Quantity: 1,
			Enchantments: []domain.ItemModifier{{
				Name: "Artisan", Kind: domain.EffectCraftedSellPriceIncrease,
				Mode: domain.ModePercent, Value: 50,
			}},
		}}
		svc := NewService(session)

		result, err := svc.Craft(ctx, "smith", "Lucky Charm", 0)
		require.NoError(t, err)
		// 40 * 1.5 = 60, applied before the item lands in inventory.
		assert.Equal(t, 60, result.Item.Value)
	})
}

func TestEnchant(t *testing.T) {
	ctx := context.Background()

	newEnchantWorld := func(rnd func() float64, costItem string) (*game.Session, *domain.GameState) {
		session, state := newCraftingWorld(rnd)
		state.Enchantments = []*domain.Enchantment{
			{Name: "Gilded", Target: domain.KindMisc, Min: 10, Max: 20, Mode: domain.ModeFlat, CostAmount: 2},
			{Name: "Hexed", Target: domain.KindMisc, Min: -200, Max: -200, Mode: domain.ModeFlat},
			{Name: "Blessed Edge", Target: domain.KindEquipment, Min: 50, Max: 50, Mode: domain.ModePercent},
		}
		state.Settings.EnchantCostItem = costItem
		return session, state
	}

	t.Run("Best Case: Flat Roll Applied Once", func(t *testing.T) {
		session, _ := newEnchantWorld(rollSequence(0.5), "")
		target := stackOf("Ore", domain.KindMisc, 1, 100)
		addPlayer(session, "mage", 0, target)
		svc := NewService(session)

		result, err := svc.Enchant(ctx, "mage", target.ID, "Gilded")
		require.NoError(t, err)
		// roll = 10 + 0.5*(20-10) = 15
		assert.InDelta(t, 15.0, result.Rolled, 0.0001)
		assert.Equal(t, 100, result.OldValue)
		assert.Equal(t, 115, result.NewValue)

		require.Len(t, target.Enchantments, 1)
		require.NotNil(t, target.Enchantments[0].Rolled)
		assert.True(t, target.Unique())
	})

	t.Run("Best Case: Percent Roll", func(t *testing.T) {
		session, _ := newEnchantWorld(rollSequence(0.0), "")
		target := stackOf("Sword", domain.KindEquipment, 1, 100)
		addPlayer(session, "mage", 0, target)
		svc := NewService(session)

		result, err := svc.Enchant(ctx, "mage", target.ID, "Blessed Edge")
		require.NoError(t, err)
		assert.Equal(t, 150, result.NewValue)
	})

	t.Run("Boundary Case: Value Floored At Zero", func(t *testing.T) {
		session, _ := newEnchantWorld(rollSequence(0.0), "")
		target := stackOf("Ore", domain.KindMisc, 1, 50)
		addPlayer(session, "mage", 0, target)
		svc := NewService(session)

		result, err := svc.Enchant(ctx, "mage", target.ID, "Hexed")
		require.NoError(t, err)
		assert.Equal(t, 0, result.NewValue)
	})

	t.Run("Atomicity: Cost Item Consumed, Refused When Short", func(t *testing.T) {
		session, _ := newEnchantWorld(rollSequence(0.5), "Dust")
		target := stackOf("Ore", domain.KindMisc, 1, 100)
		player := addPlayer(session, "mage", 0, target, stackOf("Dust", domain.KindMisc, 1, 1))
		svc := NewService(session)

		_, err := svc.Enchant(ctx, "mage", target.ID, "Gilded")
		require.ErrorIs(t, err, domain.ErrInsufficientQuantity)
		assert.Empty(t, target.Enchantments)
		assert.Equal(t, 100, target.Value)
		assert.Equal(t, 1, inventory.QuantityByName(player, "Dust"))

		inventory.Add(player, stackOf("Dust", domain.KindMisc, 1, 1))
		_, err = svc.Enchant(ctx, "mage", target.ID, "Gilded")
		require.NoError(t, err)
		assert.Equal(t, 0, inventory.QuantityByName(player, "Dust"))
	})

	t.Run("Error Case: Incompatible Target Kind", func(t *testing.T) {
		session, _ := newEnchantWorld(rollSequence(0.5), "")
		target := stackOf("Ore", domain.KindMisc, 1, 100)
		addPlayer(session, "mage", 0, target)
		svc := NewService(session)

		_, err := svc.Enchant(ctx, "mage", target.ID, "Blessed Edge")
		assert.ErrorIs(t, err, domain.ErrIncompatibleEnchant)
	})

	t.Run("Error Case: Unknown Enchantment", func(t *testing.T) {
		session, _ := newEnchantWorld(nil, "")
		target := stackOf("Ore", domain.KindMisc, 1, 100)
		addPlayer(session, "mage", 0, target)
		svc := NewService(session)

		_, err := svc.Enchant(ctx, "mage", target.ID, "Nope")
		assert.ErrorIs(t, err, domain.ErrEnchantNotFound)
	})
}

func TestListRecipes(t *testing.T) {
	session, _ := newCraftingWorld(nil)
	addPlayer(session, "smith", 0,
		stackOf("Ore", domain.KindMisc, 2, 20))
	svc := NewService(session)

	recipes, err := svc.ListRecipes(context.Background(), "smith")
	require.NoError(t, err)
	require.Len(t, recipes, 3)

	byName := map[string]RecipeInfo{}
	for _, r := range recipes {
		byName[r.Item] = r
	}
	// Sword needs 2 Ore (have 2) and 1 Wood (have 0).
	assert.False(t, byName["Sword"].Craftable)
	assert.False(t, byName["Lucky Charm"].Craftable)
}
