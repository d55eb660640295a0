// Package player implements player lifecycle and the equip / upgrade /
// consumable operations that feed the modifier aggregator.
package player

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lootledger/engine/internal/domain"
	"github.com/lootledger/engine/internal/game"
	"github.com/lootledger/engine/internal/inventory"
	"github.com/lootledger/engine/internal/logger"
	"github.com/lootledger/engine/internal/metrics"
)

// Info is a read-only view of one player's full state. Stack indices
// are positional: they address inventory slots for index-based sells,
// equips, and upgrade consumption.
type Info struct {
	Name      string                `json:"name"`
	Currency  int                   `json:"currency"`
	Inventory []*domain.Item        `json:"inventory"`
	Equipped  []*domain.Item        `json:"equipped"`
	Upgrades  []*domain.Item        `json:"upgrades"`
	Effects   []domain.ActiveEffect `json:"effects,omitempty"`
}

// UseResult reports one consumable use.
type UseResult struct {
	Item   string              `json:"item"`
	Effect domain.ActiveEffect `json:"effect"`
	Queued int                 `json:"queued"`
}

// Service defines player lifecycle and equipment operations.
type Service interface {
	Register(ctx context.Context, name string, startingCurrency int) (*domain.Player, error)
	Remove(ctx context.Context, name string) error
	Equip(ctx context.Context, playerName string, index int) (*domain.Item, error)
	Unequip(ctx context.Context, playerName string, index int) (*domain.Item, error)
	ConsumeUpgrade(ctx context.Context, playerName string, index int) (*domain.Item, error)
	UseConsumable(ctx context.Context, playerName, itemName string) (*UseResult, error)
	GrantCurrency(ctx context.Context, playerName string, amount int) (int, error)
	TakeCurrency(ctx context.Context, playerName string, amount int) (int, error)
	GiveItem(ctx context.Context, playerName, itemName string, quantity int) (*domain.Item, error)
	Get(ctx context.Context, playerName string) (*Info, error)
	List(ctx context.Context) ([]string, error)
}

type service struct {
	session *game.Session
}

// NewService creates the player service over a game session.
func NewService(session *game.Session) Service {
	return &service{session: session}
}

func (s *service) Register(ctx context.Context, name string, startingCurrency int) (*domain.Player, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgRegisterCalled, "player", name)

	if name == "" {
		return nil, fmt.Errorf("%w: player name must not be empty", domain.ErrInvalidConfiguration)
	}
	if startingCurrency < 0 {
		startingCurrency = 0
	}

	var created *domain.Player
	err := s.session.Update(func(g *domain.GameState) error {
		if _, exists := g.Player(name); exists {
			return fmt.Errorf("%w: %s", domain.ErrDuplicatePlayer, name)
		}
		created = domain.NewPlayer(name, startingCurrency)
		g.Players[domain.Key(name)] = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info(LogMsgPlayerRegistered, "player", name, "currency", startingCurrency)
	return created, nil
}

func (s *service) Remove(ctx context.Context, name string) error {
	log := logger.FromContext(ctx)

	err := s.session.Update(func(g *domain.GameState) error {
		if _, exists := g.Player(name); !exists {
			return fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, name)
		}
		delete(g.Players, domain.Key(name))
		return nil
	})
	if err != nil {
		return err
	}

	log.Info(LogMsgPlayerRemoved, "player", name)
	return nil
}

func (s *service) Equip(ctx context.Context, playerName string, index int) (*domain.Item, error) {
	log := logger.FromContext(ctx)

	var equipped *domain.Item
	err := s.session.Update(func(g *domain.GameState) error {
		player, ok := g.Player(playerName)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, playerName)
		}
		if index < 0 || index >= len(player.Inventory) {
			return fmt.Errorf("%w: %d", domain.ErrInvalidIndex, index)
		}
		if !player.Inventory[index].Kind.Equippable() {
			return fmt.Errorf("%w: %s is %s", domain.ErrNotEquippable,
				player.Inventory[index].Name, player.Inventory[index].Kind)
		}
		item, err := inventory.RemoveAt(player, index)
		if err != nil {
			return err
		}
		player.Equipped = append(player.Equipped, item)
		equipped = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info(LogMsgItemEquipped, "player", playerName, "item", equipped.Name)
	return equipped, nil
}

func (s *service) Unequip(ctx context.Context, playerName string, index int) (*domain.Item, error) {
	log := logger.FromContext(ctx)

	var removed *domain.Item
	err := s.session.Update(func(g *domain.GameState) error {
		player, ok := g.Player(playerName)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, playerName)
		}
		if index < 0 || index >= len(player.Equipped) {
			return fmt.Errorf("%w: %d", domain.ErrInvalidIndex, index)
		}
		removed = player.Equipped[index]
		player.Equipped = append(player.Equipped[:index], player.Equipped[index+1:]...)
		inventory.Add(player, removed)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info(LogMsgItemUnequipped, "player", playerName, "item", removed.Name)
	return removed, nil
}

func (s *service) ConsumeUpgrade(ctx context.Context, playerName string, index int) (*domain.Item, error) {
	log := logger.FromContext(ctx)

	var consumed *domain.Item
	err := s.session.Update(func(g *domain.GameState) error {
		player, ok := g.Player(playerName)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, playerName)
		}
		if index < 0 || index >= len(player.Inventory) {
			return fmt.Errorf("%w: %d", domain.ErrInvalidIndex, index)
		}
		stack := player.Inventory[index]
		if stack.Kind != domain.KindUpgrade {
			return fmt.Errorf("%w: %s is %s", domain.ErrNotUpgrade, stack.Name, stack.Kind)
		}

		// One unit moves to the append-only upgrades list; the rest of
		// the stack keeps a prorated value, same rule as consumption.
		if stack.Quantity <= 1 {
			item, err := inventory.RemoveAt(player, index)
			if err != nil {
				return err
			}
			consumed = item
		} else {
			perUnit := float64(stack.Value) / float64(stack.Quantity)
			removed := int(perUnit)
			stack.Value -= removed
			stack.Quantity--

			unit := stack.Clone()
			unit.Quantity = 1
			unit.Value = removed
			consumed = unit
		}
		player.Upgrades = append(player.Upgrades, consumed)
		metrics.ItemsConsumed.WithLabelValues(consumed.Name).Inc()
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info(LogMsgUpgradeConsumed, "player", playerName, "item", consumed.Name)
	return consumed, nil
}

func (s *service) UseConsumable(ctx context.Context, playerName, itemName string) (*UseResult, error) {
	log := logger.FromContext(ctx)

	var result *UseResult
	err := s.session.Update(func(g *domain.GameState) error {
		player, ok := g.Player(playerName)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, playerName)
		}
		def, ok := g.ConsumableDef(itemName)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrNotConsumable, itemName)
		}
		if _, err := inventory.ConsumeByName(player, itemName, 1); err != nil {
			return err
		}

		effect := def.Activate()
		player.Effects = append(player.Effects, effect)
		result = &UseResult{Item: def.Name, Effect: effect, Queued: len(player.Effects)}

		metrics.ItemsConsumed.WithLabelValues(def.Name).Inc()
		metrics.EffectsTriggered.WithLabelValues(string(def.Kind)).Inc()
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info(LogMsgConsumableUsed, "player", playerName, "item", result.Item, "effect", result.Effect.Kind)
	return result, nil
}

func (s *service) GrantCurrency(ctx context.Context, playerName string, amount int) (int, error) {
	log := logger.FromContext(ctx)

	if amount <= 0 {
		return 0, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidConfiguration)
	}

	var balance int
	err := s.session.Update(func(g *domain.GameState) error {
		player, ok := g.Player(playerName)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, playerName)
		}
		player.Currency += amount
		balance = player.Currency
		metrics.MoneyEarned.WithLabelValues(metrics.SourceAdmin).Add(float64(amount))
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Info(LogMsgCurrencyGranted, "player", playerName, "amount", amount, "balance", balance)
	return balance, nil
}

func (s *service) TakeCurrency(ctx context.Context, playerName string, amount int) (int, error) {
	log := logger.FromContext(ctx)

	if amount <= 0 {
		return 0, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidConfiguration)
	}

	var balance int
	err := s.session.Update(func(g *domain.GameState) error {
		player, ok := g.Player(playerName)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, playerName)
		}
		if player.Currency < amount {
			return fmt.Errorf("%w: have %d, taking %d", domain.ErrInsufficientFunds, player.Currency, amount)
		}
		player.Currency -= amount
		balance = player.Currency
		metrics.MoneySpent.WithLabelValues(metrics.SourceAdmin).Add(float64(amount))
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Info(LogMsgCurrencyTaken, "player", playerName, "amount", amount, "balance", balance)
	return balance, nil
}

func (s *service) GiveItem(ctx context.Context, playerName, itemName string, quantity int) (*domain.Item, error) {
	log := logger.FromContext(ctx)

	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidConfiguration)
	}

	var given *domain.Item
	err := s.session.Update(func(g *domain.GameState) error {
		player, ok := g.Player(playerName)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, playerName)
		}
		master, ok := g.MasterItem(itemName)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemName)
		}
		given = &domain.Item{
			ID:       uuid.New(),
			Name:     master.Name,
			Kind:     master.Kind,
			Quantity: quantity,
			Value:    master.Value * quantity,
		}
		inventory.Add(player, given)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info(LogMsgItemGiven, "player", playerName, "item", given.Name, "quantity", quantity)
	return given, nil
}

func (s *service) Get(ctx context.Context, playerName string) (*Info, error) {
	var info *Info
	err := s.session.View(func(g *domain.GameState) error {
		player, ok := g.Player(playerName)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, playerName)
		}
		info = &Info{
			Name:      player.Name,
			Currency:  player.Currency,
			Inventory: copyItems(player.Inventory),
			Equipped:  copyItems(player.Equipped),
			Upgrades:  copyItems(player.Upgrades),
			Effects:   append([]domain.ActiveEffect(nil), player.Effects...),
		}
		return nil
	})
	return info, err
}

// copyItems deep-copies stacks for use outside the session lock,
// keeping instance IDs so callers can address the originals.
func copyItems(items []*domain.Item) []*domain.Item {
	if items == nil {
		return nil
	}
	out := make([]*domain.Item, len(items))
	for i, item := range items {
		c := item.Clone()
		c.ID = item.ID
		out[i] = c
	}
	return out
}

func (s *service) List(ctx context.Context) ([]string, error) {
	var names []string
	err := s.session.View(func(g *domain.GameState) error {
		for _, p := range g.Players {
			names = append(names, p.Name)
		}
		return nil
	})
	return names, err
}
