package economy

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

func intPtr(v int) *int { return &v }

func newShopWorld() *game.Session {
	state := domain.NewGameState()
	state.Items = []*domain.MasterItem{
		{Name: "Gem", Kind: domain.KindMisc, Value: 80, Quantity: 1},
		{Name: "Torch", Kind: domain.KindMisc, Value: 2, Price: intPtr(5), Quantity: 1},
		{Name: "Shield", Kind: domain.KindEquipment, Value: 60, Price: intPtr(120), Quantity: 1},
	}
	return game.NewSession(state)
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

func stackOf(name string, qty, value int) *domain.Item {
	return &domain.Item{ID: uuid.New(), Name: name, Kind: domain.KindMisc, Quantity: qty, Value: value}
}

func craftedStackOf(name string, qty, value int) *domain.Item {
	s := stackOf(name, qty, value)
	s.Crafted = true
	return s
}

func withSellBonus(player *domain.Player, kind domain.EffectKind, mode domain.ValueMode, value float64) {
	player.Equipped = append(player.Equipped, &domain.Item{
		ID: uuid.New(), Name: "Merchant Ring", Kind: domain.KindEquipment, Quantity: 1,
		Enchantments: []domain.ItemModifier{{Name: "Silver Tongue", Kind: kind, Mode: mode, Value: value}},
	})
}

func TestSellByIndex(t *testing.T) {
	ctx := context.Background()

	t.Run("Best Case: Whole Stack Credited", func(t *testing.T) {
		session := newShopWorld()
		player := addPlayer(session, "trader", 10, stackOf("Gem", 3, 240))
		svc := NewService(session)

		result, err := svc.SellByIndex(ctx, "trader", 0)
		require.NoError(t, err)
		assert.Equal(t, "Gem", result.Item)
		assert.Equal(t, 3, result.Quantity)
		assert.Equal(t, 240, result.Credited)
		assert.Equal(t, 250, player.Currency)
		assert.Empty(t, player.Inventory)
	})

	t.Run("Best Case: Sell Bonus Applied", func(t *testing.T) {
		session := newShopWorld()
		player := addPlayer(session, "trader", 0, stackOf("Gem", 1, 100))
		withSellBonus(player, domain.EffectSellPriceIncrease, domain.ModePercent, 20)
		svc := NewService(session)

		result, err := svc.SellByIndex(ctx, "trader", 0)
		require.NoError(t, err)
		assert.Equal(t, 120, result.Credited)
	})

	t.Run("Error Case: Index Out Of Bounds", func(t *testing.T) {
		session := newShopWorld()
		player := addPlayer(session, "trader", 10, stackOf("Gem", 1, 80))
		svc := NewService(session)

		_, err := svc.SellByIndex(ctx, "trader", 5)
		require.ErrorIs(t, err, domain.ErrInvalidIndex)
		assert.Equal(t, 10, player.Currency)
		assert.Len(t, player.Inventory, 1)
	})
}

func TestSellByName(t *testing.T) {
	ctx := context.Background()

	t.Run("Best Case: Partial Stack Prorated", func(t *testing.T) {
		session := newShopWorld()
		player := addPlayer(session, "trader", 0, stackOf("Gem", 10, 100))
		svc := NewService(session)

		result, err := svc.SellByName(ctx, "trader", "Gem", 3)
		require.NoError(t, err)
		assert.Equal(t, 30, result.Credited)
		assert.Equal(t, 30, player.Currency)

		require.Len(t, player.Inventory, 1)
		assert.Equal(t, 7, player.Inventory[0].Quantity)
		assert.Equal(t, 70, player.Inventory[0].Value)
	})

	t.Run("Boundary Case: Sub-Unit Remainder Stays On Stack", func(t *testing.T) {
		session := newShopWorld()
		player := addPlayer(session, "trader", 0, stackOf("Gem", 3, 100))
		svc := NewService(session)

		// 100/3 per unit; one unit removes floor(33.33) = 33.
		result, err := svc.SellByName(ctx, "trader", "Gem", 1)
		require.NoError(t, err)
		assert.Equal(t, 33, result.Credited)
		assert.Equal(t, 67, player.Inventory[0].Value)
	})

	t.Run("Best Case: Crafted And Plain Channels Stay Separate", func(t *testing.T) {
		session := newShopWorld()
		player := addPlayer(session, "trader", 0,
			stackOf("Gem", 1, 100),
			craftedStackOf("Gem", 1, 100))
		withSellBonus(player, domain.EffectCraftedSellPriceIncrease, domain.ModePercent, 50)
		svc := NewService(session)

		// Greedy order sells the plain stack first at face value, then
		// the crafted stack with its 50% channel bonus.
		result, err := svc.SellByName(ctx, "trader", "Gem", 2)
		require.NoError(t, err)
		assert.Equal(t, 100+150, result.Credited)
	})

	t.Run("Atomicity: Shortfall Sells Nothing", func(t *testing.T) {
		session := newShopWorld()
		player := addPlayer(session, "trader", 0, stackOf("Gem", 2, 160))
		svc := NewService(session)

		_, err := svc.SellByName(ctx, "trader", "Gem", 5)
		require.ErrorIs(t, err, domain.ErrInsufficientQuantity)
		assert.Equal(t, 0, player.Currency)
		assert.Equal(t, 2, inventory.QuantityByName(player, "Gem"))
	})

	t.Run("Error Case: Unknown Item", func(t *testing.T) {
		session := newShopWorld()
		addPlayer(session, "trader", 0)
		svc := NewService(session)

		_, err := svc.SellByName(ctx, "trader", "Relic", 1)
		assert.ErrorIs(t, err, domain.ErrItemNotFound)
	})

	t.Run("Boundary Case: Zero Count Rejected", func(t *testing.T) {
		session := newShopWorld()
		addPlayer(session, "trader", 0, stackOf("Gem", 1, 80))
		svc := NewService(session)

		_, err := svc.SellByName(ctx, "trader", "Gem", 0)
		assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
	})
}

func TestSellAll(t *testing.T) {
	ctx := context.Background()

	t.Run("Best Case: Every Matching Stack Sold", func(t *testing.T) {
		session := newShopWorld()
		player := addPlayer(session, "trader", 0,
			stackOf("Gem", 2, 160),
			stackOf("Torch", 1, 2),
			stackOf("Gem", 3, 240))
		svc := NewService(session)

		result, err := svc.SellAll(ctx, "trader", "gem")
		require.NoError(t, err)
		assert.Equal(t, 5, result.Quantity)
		assert.Equal(t, 400, result.Credited)

		require.Len(t, player.Inventory, 1)
		assert.Equal(t, "Torch", player.Inventory[0].Name)
	})

	t.Run("Error Case: Nothing Held", func(t *testing.T) {
		session := newShopWorld()
		addPlayer(session, "trader", 0)
		svc := NewService(session)

		_, err := svc.SellAll(ctx, "trader", "Gem")
		assert.ErrorIs(t, err, domain.ErrItemNotFound)
	})
}

func TestBuy(t *testing.T) {
	ctx := context.Background()

	t.Run("Best Case: Purchase Stacks Into Inventory", func(t *testing.T) {
		session := newShopWorld()
		player := addPlayer(session, "trader", 100, stackOf("Torch", 2, 4))
		svc := NewService(session)

		result, err := svc.Buy(ctx, "trader", "Torch", 4)
		require.NoError(t, err)
		assert.Equal(t, 20, result.Cost)
		assert.Equal(t, 80, result.Balance)

		// Purchased units merge into the existing plain stack.
		require.Len(t, player.Inventory, 1)
		assert.Equal(t, 6, player.Inventory[0].Quantity)
		assert.Equal(t, 12, player.Inventory[0].Value)
	})

	t.Run("Error Case: Not Purchasable", func(t *testing.T) {
		session := newShopWorld()
		addPlayer(session, "trader", 1000)
		svc := NewService(session)

		_, err := svc.Buy(ctx, "trader", "Gem", 1)
		assert.ErrorIs(t, err, domain.ErrNotPurchasable)
	})

	t.Run("Error Case: Insufficient Funds Changes Nothing", func(t *testing.T) {
		session := newShopWorld()
		player := addPlayer(session, "trader", 100)
		svc := NewService(session)

		_, err := svc.Buy(ctx, "trader", "Shield", 1)
		require.ErrorIs(t, err, domain.ErrInsufficientFunds)
		assert.Equal(t, 100, player.Currency)
		assert.Empty(t, player.Inventory)
	})

	t.Run("Boundary Case: Zero Quantity Rejected", func(t *testing.T) {
		session := newShopWorld()
		addPlayer(session, "trader", 100)
		svc := NewService(session)

		_, err := svc.Buy(ctx, "trader", "Torch", 0)
		assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
	})
}

func TestShop(t *testing.T) {
	session := newShopWorld()
	svc := NewService(session)

	entries, err := svc.Shop(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Torch", entries[0].Name)
	assert.Equal(t, 5, entries[0].Price)
	assert.Equal(t, "Shield", entries[1].Name)
}
