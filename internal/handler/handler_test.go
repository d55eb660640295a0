package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lootledger/engine/internal/catalog"
	"github.com/lootledger/engine/internal/crafting"
	"github.com/lootledger/engine/internal/domain"
	"github.com/lootledger/engine/internal/economy"
	"github.com/lootledger/engine/internal/game"
	"github.com/lootledger/engine/internal/loot"
	"github.com/lootledger/engine/internal/player"
)

func intPtr(v int) *int { return &v }

// newTestWorld builds a session with one table, a small catalog, and a
// funded player, enough to exercise every handler path.
func newTestWorld() *game.Session {
	state := domain.NewGameState()
	state.Items = []*domain.MasterItem{
		{Name: "Ore", Kind: domain.KindMisc, Value: 10, Price: intPtr(20), Quantity: 1},
		{Name: "Sword", Kind: domain.KindEquipment, Value: 100, Ingredients: []string{"Ore", "Ore"}, Quantity: 1},
	}
	state.Tables[domain.Key("Mine")] = &domain.LootTable{
		Name:     "Mine",
		DrawCost: 50,
		Items: []*domain.Item{
			{ID: uuid.New(), Name: "Ore", Kind: domain.KindMisc, Weight: 100, Value: 10, Quantity: 1},
		},
	}
	session := game.NewSession(state, game.WithRand(func() float64 { return 0.0 }))
	_ = session.Update(func(g *domain.GameState) error {
		g.Players[domain.Key("miner")] = domain.NewPlayer("miner", 500)
		return nil
	})
	return session
}

func postJSON(t *testing.T, h http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandleDraw(t *testing.T) {
	t.Run("Best Case: Draw Returns Items And Balance", func(t *testing.T) {
		session := newTestWorld()
		h := HandleDraw(loot.NewService(session))

		w := postJSON(t, h, "/api/v1/draw", DrawRequest{Player: "miner", Table: "Mine", Count: 2})
		require.Equal(t, http.StatusOK, w.Code)

		var result loot.DrawResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, 100, result.Cost)
		assert.Equal(t, 400, result.Balance)
		require.Len(t, result.Items, 1)
		assert.Equal(t, 2, result.Items[0].Quantity)
	})

	t.Run("Error Case: Unknown Player Maps To 404", func(t *testing.T) {
		session := newTestWorld()
		h := HandleDraw(loot.NewService(session))

		w := postJSON(t, h, "/api/v1/draw", DrawRequest{Player: "ghost", Table: "Mine", Count: 1})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, decodeError(t, w).Error, domain.ErrMsgPlayerNotFound)
	})

	t.Run("Error Case: Missing Table Fails Validation", func(t *testing.T) {
		session := newTestWorld()
		h := HandleDraw(loot.NewService(session))

		w := postJSON(t, h, "/api/v1/draw", DrawRequest{Player: "miner", Count: 1})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		resp := decodeError(t, w)
		assert.Equal(t, ErrMsgValidationFailed, resp.Error)
		assert.Contains(t, resp.Details, "table")
	})

	t.Run("Error Case: Malformed Body", func(t *testing.T) {
		session := newTestWorld()
		h := HandleDraw(loot.NewService(session))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/draw", bytes.NewReader([]byte("{not json")))
		w := httptest.NewRecorder()
		h(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, ErrMsgInvalidRequest, decodeError(t, w).Error)
	})

	t.Run("Error Case: Insufficient Funds Maps To 409", func(t *testing.T) {
		session := newTestWorld()
		h := HandleDraw(loot.NewService(session))

		w := postJSON(t, h, "/api/v1/draw", DrawRequest{Player: "miner", Table: "Mine", Count: 100})
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestHandleGetOdds(t *testing.T) {
	t.Run("Best Case: Odds For Known Table", func(t *testing.T) {
		session := newTestWorld()
		h := HandleGetOdds(loot.NewService(session))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/tables/odds?table=Mine", nil)
		w := httptest.NewRecorder()
		h(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var odds []loot.TableOdds
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &odds))
		require.Len(t, odds, 1)
		assert.InDelta(t, 1.0, odds[0].Chance, 1e-9)
	})

	t.Run("Error Case: Missing Query Parameter", func(t *testing.T) {
		session := newTestWorld()
		h := HandleGetOdds(loot.NewService(session))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/tables/odds", nil)
		w := httptest.NewRecorder()
		h(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleRegister(t *testing.T) {
	t.Run("Best Case: New Player Created", func(t *testing.T) {
		session := newTestWorld()
		h := HandleRegister(player.NewService(session))

		w := postJSON(t, h, "/api/v1/player/register", RegisterRequest{Player: "newbie", StartingCurrency: 100})
		require.Equal(t, http.StatusCreated, w.Code)

		var created domain.Player
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.Equal(t, "newbie", created.Name)
		assert.Equal(t, 100, created.Currency)
	})

	t.Run("Error Case: Duplicate Player Maps To 409", func(t *testing.T) {
		session := newTestWorld()
		h := HandleRegister(player.NewService(session))

		w := postJSON(t, h, "/api/v1/player/register", RegisterRequest{Player: "miner"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestHandleSellName(t *testing.T) {
	t.Run("Best Case: Sell All Units", func(t *testing.T) {
		session := newTestWorld()
		_ = session.Update(func(g *domain.GameState) error {
			p, _ := g.Player("miner")
			p.Inventory = append(p.Inventory, &domain.Item{
				ID: uuid.New(), Name: "Ore", Kind: domain.KindMisc, Quantity: 4, Value: 40,
			})
			return nil
		})
		h := HandleSellName(economy.NewService(session), catalog.NewResolver(session))

		w := postJSON(t, h, "/api/v1/sell", SellNameRequest{Player: "miner", Item: "Ore", All: true})
		require.Equal(t, http.StatusOK, w.Code)

		var result economy.SellResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, 4, result.Quantity)
		assert.Equal(t, 40, result.Credited)
		assert.Equal(t, 540, result.Balance)
	})

	t.Run("Best Case: Folded Name Resolves Through The Cache", func(t *testing.T) {
		session := newTestWorld()
		_ = session.Update(func(g *domain.GameState) error {
			p, _ := g.Player("miner")
			p.Inventory = append(p.Inventory, &domain.Item{
				ID: uuid.New(), Name: "Ore", Kind: domain.KindMisc, Quantity: 2, Value: 20,
			})
			return nil
		})
		resolver := catalog.NewResolver(session)
		h := HandleSellName(economy.NewService(session), resolver)

		w := postJSON(t, h, "/api/v1/sell", SellNameRequest{Player: "miner", Item: "oRe", All: true})
		require.Equal(t, http.StatusOK, w.Code)

		var result economy.SellResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, "Ore", result.Item)

		// The handler lookup populated the cache: the name still resolves
		// after the catalog entry is gone.
		_ = session.Update(func(g *domain.GameState) error {
			g.Items = nil
			return nil
		})
		name, ok := resolver.ItemName("ORE")
		assert.True(t, ok)
		assert.Equal(t, "Ore", name)
	})

	t.Run("Error Case: Unknown Item Maps To 404", func(t *testing.T) {
		session := newTestWorld()
		h := HandleSellName(economy.NewService(session), catalog.NewResolver(session))

		w := postJSON(t, h, "/api/v1/sell", SellNameRequest{Player: "miner", Item: "Relic", Count: 1})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandleCraft(t *testing.T) {
	t.Run("Error Case: Missing Ingredients Carry Shortfall Details", func(t *testing.T) {
		session := newTestWorld()
		h := HandleCraft(crafting.NewService(session), catalog.NewResolver(session))

		w := postJSON(t, h, "/api/v1/craft", CraftRequest{Player: "miner", Item: "Sword"})
		require.Equal(t, http.StatusConflict, w.Code)

		resp := decodeError(t, w)
		assert.Equal(t, domain.ErrMsgMissingIngredients, resp.Error)
		assert.Equal(t, "have 0, need 2", resp.Details["Ore"])
	})
}

func TestHandleEnchant(t *testing.T) {
	t.Run("Error Case: Invalid Item ID", func(t *testing.T) {
		session := newTestWorld()
		h := HandleEnchant(crafting.NewService(session))

		w := postJSON(t, h, "/api/v1/enchant", EnchantRequest{
			Player: "miner", ItemID: uuid.NewString(), Enchantment: "Keen",
		})
		// valid uuid but no such enchantment in the catalog
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Error Case: Malformed Item ID Fails Validation", func(t *testing.T) {
		session := newTestWorld()
		h := HandleEnchant(crafting.NewService(session))

		w := postJSON(t, h, "/api/v1/enchant", EnchantRequest{
			Player: "miner", ItemID: "not-a-uuid", Enchantment: "Keen",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleGetShop(t *testing.T) {
	t.Run("Best Case: Only Priced Items Listed", func(t *testing.T) {
		session := newTestWorld()
		h := HandleGetShop(economy.NewService(session))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/shop", nil)
		w := httptest.NewRecorder()
		h(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var entries []economy.ShopEntry
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
		require.Len(t, entries, 1)
		assert.Equal(t, "Ore", entries[0].Name)
		assert.Equal(t, 20, entries[0].Price)
	})
}

func TestHandleGetInfo(t *testing.T) {
	t.Run("Best Case: Settings And Counts", func(t *testing.T) {
		session := newTestWorld()
		h := HandleGetInfo(session)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/info", nil)
		w := httptest.NewRecorder()
		h(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var info InfoResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
		assert.Equal(t, "gold", info.Settings.CurrencyName)
		assert.Equal(t, 1, info.Players)
		assert.Equal(t, 1, info.Tables)
		assert.Equal(t, 2, info.Items)
	})
}

func TestHandleHealthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	HandleHealthz()(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}
