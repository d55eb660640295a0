// Package economy implements the sell and shop-purchase transactions.
// Selling routes through the modifier aggregator's sell-price channels,
// crafted and non-crafted stacks separately, and mirrors the inventory
// engine's prorated partial-stack semantics.
package economy

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/lootledger/engine/internal/domain"
	"github.com/lootledger/engine/internal/game"
	"github.com/lootledger/engine/internal/inventory"
	"github.com/lootledger/engine/internal/logger"
	"github.com/lootledger/engine/internal/metrics"
	"github.com/lootledger/engine/internal/modifier"
)

// SellResult reports one completed sale.
type SellResult struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
	Credited int    `json:"credited"`
	Balance  int    `json:"balance"`
}

// BuyResult reports one completed shop purchase.
type BuyResult struct {
	Item     *domain.Item `json:"item"`
	Quantity int          `json:"quantity"`
	Cost     int          `json:"cost"`
	Balance  int          `json:"balance"`
}

// ShopEntry is one purchasable catalog item.
type ShopEntry struct {
	Name  string          `json:"name"`
	Kind  domain.ItemKind `json:"kind"`
	Price int             `json:"price"`
	Value int             `json:"value"`
}

// Service defines the sell/buy transaction interface.
type Service interface {
	SellByIndex(ctx context.Context, playerName string, index int) (*SellResult, error)
	SellByName(ctx context.Context, playerName, itemName string, count int) (*SellResult, error)
	SellAll(ctx context.Context, playerName, itemName string) (*SellResult, error)
	Buy(ctx context.Context, playerName, itemName string, quantity int) (*BuyResult, error)
	Shop(ctx context.Context) ([]ShopEntry, error)
}

type service struct {
	session *game.Session
}

// NewService creates the economy engine over a game session.
func NewService(session *game.Session) Service {
	return &service{session: session}
}

func (s *service) SellByIndex(ctx context.Context, playerName string, index int) (*SellResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgSellCalled, "player", playerName, "index", index)

	var result *SellResult
	err := s.session.Update(func(g *domain.GameState) error {
		player, ok := g.Player(playerName)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, playerName)
		}
		item, err := inventory.RemoveAt(player, index)
		if err != nil {
			return err
		}

		mods := modifier.Aggregate(player)
		credited := mods.SellAdjustment(item.Crafted).IncreaseValue(item.Value)
		player.Currency += credited

		result = &SellResult{
			Item:     item.Name,
			Quantity: item.Quantity,
			Credited: credited,
			Balance:  player.Currency,
		}
		recordSale(item.Name, item.Quantity, credited)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info(LogMsgItemsSold, "player", playerName, "item", result.Item, "quantity", result.Quantity, "credited", result.Credited)
	return result, nil
}

func (s *service) SellByName(ctx context.Context, playerName, itemName string, count int) (*SellResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgSellCalled, "player", playerName, "item", itemName, "count", count)

	if count <= 0 {
		return nil, fmt.Errorf("%w: count must be positive", domain.ErrInvalidConfiguration)
	}
	return s.sellNamed(ctx, playerName, itemName, count)
}

func (s *service) SellAll(ctx context.Context, playerName, itemName string) (*SellResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgSellCalled, "player", playerName, "item", itemName, "count", "all")

	return s.sellNamed(ctx, playerName, itemName, -1)
}

// sellNamed sells count units of the named item, or every unit when
// count is negative. Consumption is greedy in inventory order with the
// same prorated-value semantics as ingredient consumption, but each
// stack's proceeds route through the sell channel matching its crafted
// flag before crediting, so crafted and non-crafted stacks of the same
// name never share a bonus.
func (s *service) sellNamed(ctx context.Context, playerName, itemName string, count int) (*SellResult, error) {
	log := logger.FromContext(ctx)

	var result *SellResult
	err := s.session.Update(func(g *domain.GameState) error {
		player, ok := g.Player(playerName)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, playerName)
		}

		held := inventory.QuantityByName(player, itemName)
		if held == 0 {
			return fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemName)
		}
		if count < 0 {
			count = held
		}
		if held < count {
			return fmt.Errorf("%w: %s (have %d, need %d)", domain.ErrInsufficientQuantity, itemName, held, count)
		}

		mods := modifier.Aggregate(player)
		remaining := count
		credited := 0
		kept := player.Inventory[:0]
		for _, stack := range player.Inventory {
			if remaining == 0 || !strings.EqualFold(stack.Name, itemName) {
				kept = append(kept, stack)
				continue
			}
			adjust := mods.SellAdjustment(stack.Crafted)
			if stack.Quantity <= remaining {
				remaining -= stack.Quantity
				credited += adjust.IncreaseValue(stack.Value)
				continue
			}
			perUnit := float64(stack.Value) / float64(stack.Quantity)
			removed := int(perUnit * float64(remaining))
			stack.Value -= removed
			stack.Quantity -= remaining
			credited += adjust.IncreaseValue(removed)
			remaining = 0
			kept = append(kept, stack)
		}
		player.Inventory = kept
		player.Currency += credited

		result = &SellResult{
			Item:     itemName,
			Quantity: count,
			Credited: credited,
			Balance:  player.Currency,
		}
		recordSale(itemName, count, credited)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info(LogMsgItemsSold, "player", playerName, "item", result.Item, "quantity", result.Quantity, "credited", result.Credited)
	return result, nil
}

func (s *service) Buy(ctx context.Context, playerName, itemName string, quantity int) (*BuyResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgBuyCalled, "player", playerName, "item", itemName, "quantity", quantity)

	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidConfiguration)
	}

	var result *BuyResult
	err := s.session.Update(func(g *domain.GameState) error {
		player, ok := g.Player(playerName)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, playerName)
		}
		master, ok := g.MasterItem(itemName)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemName)
		}
		if !master.Purchasable() {
			return fmt.Errorf("%w: %s", domain.ErrNotPurchasable, master.Name)
		}

		cost := *master.Price * quantity
		if player.Currency < cost {
			return fmt.Errorf("%w: need %d, have %d", domain.ErrInsufficientFunds, cost, player.Currency)
		}
		player.Currency -= cost

		item := &domain.Item{
			ID:       uuid.New(),
			Name:     master.Name,
			Kind:     master.Kind,
			Quantity: quantity,
			Value:    master.Value * quantity,
		}
		inventory.Add(player, item)

		result = &BuyResult{
			Item:     item,
			Quantity: quantity,
			Cost:     cost,
			Balance:  player.Currency,
		}
		metrics.ItemsBought.WithLabelValues(master.Name).Add(float64(quantity))
		metrics.MoneySpent.WithLabelValues(metrics.SourceBuy).Add(float64(cost))
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info(LogMsgItemBought, "player", playerName, "item", result.Item.Name, "quantity", result.Quantity, "cost", result.Cost)
	return result, nil
}

func (s *service) Shop(ctx context.Context) ([]ShopEntry, error) {
	var entries []ShopEntry
	err := s.session.View(func(g *domain.GameState) error {
		for _, master := range g.Items {
			if !master.Purchasable() {
				continue
			}
			entries = append(entries, ShopEntry{
				Name:  master.Name,
				Kind:  master.Kind,
				Price: *master.Price,
				Value: master.Value,
			})
		}
		return nil
	})
	return entries, err
}

func recordSale(item string, quantity, credited int) {
	metrics.ItemsSold.WithLabelValues(item).Add(float64(quantity))
	metrics.MoneyEarned.WithLabelValues(metrics.SourceSell).Add(float64(credited))
}
