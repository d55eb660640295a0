// Package inventory implements the stack-aware inventory engine: merge
// on add, index- and ID-addressed removal, and all-or-nothing greedy
// consumption with prorated value removal.
package inventory

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/lootledger/engine/internal/domain"
)

// Add places an item into the player's inventory. Unique items (any
// enchantment or rarity tier) always open a new stack. Otherwise the
// first stack with the same name, kind, and crafted flag that is itself
// not unique absorbs the incoming quantity and value. Merging sums the
// stack totals, so no per-unit averaging happens and no value is lost.
func Add(p *domain.Player, item *domain.Item) {
	if !item.Unique() {
		for _, stack := range p.Inventory {
			if stack.Unique() {
				continue
			}
			if !strings.EqualFold(stack.Name, item.Name) {
				continue
			}
			if stack.Kind != item.Kind || stack.Crafted != item.Crafted {
				continue
			}
			stack.Quantity += item.Quantity
			stack.Value += item.Value
			return
		}
	}
	p.Inventory = append(p.Inventory, item)
}

// RemoveAt removes and returns the stack at the given position.
func RemoveAt(p *domain.Player, index int) (*domain.Item, error) {
	if index < 0 || index >= len(p.Inventory) {
		return nil, fmt.Errorf("%w: %d (inventory has %d stacks)", domain.ErrInvalidIndex, index, len(p.Inventory))
	}
	item := p.Inventory[index]
	p.Inventory = append(p.Inventory[:index], p.Inventory[index+1:]...)
	return item, nil
}

// RemoveByID removes and returns the stack carrying the given instance
// ID. In-flight operations address stacks by ID so a prior removal can
// never shift their target.
func RemoveByID(p *domain.Player, id uuid.UUID) (*domain.Item, error) {
	for i, stack := range p.Inventory {
		if stack.ID == id {
			p.Inventory = append(p.Inventory[:i], p.Inventory[i+1:]...)
			return stack, nil
		}
	}
	return nil, fmt.Errorf("%w: no stack with id %s", domain.ErrItemNotFound, id)
}

// ByID returns the stack carrying the given instance ID without
// removing it.
func ByID(p *domain.Player, id uuid.UUID) (*domain.Item, error) {
	for _, stack := range p.Inventory {
		if stack.ID == id {
			return stack, nil
		}
	}
	return nil, fmt.Errorf("%w: no stack with id %s", domain.ErrItemNotFound, id)
}

// QuantityByName sums quantities across every stack with the given name
// (case-insensitive).
func QuantityByName(p *domain.Player, name string) int {
	total := 0
	for _, stack := range p.Inventory {
		if strings.EqualFold(stack.Name, name) {
			total += stack.Quantity
		}
	}
	return total
}

// ConsumeByName removes count units of the named item and returns the
// gold value removed with them. The full count must be available across
// all matching stacks before anything is touched; on shortfall the
// inventory is left exactly as it was.
//
// Consumption is greedy in inventory order. A stack emptied by the need
// is removed whole, contributing its entire value. A stack with excess
// is decremented and gives up a prorated share of its value: the
// per-unit figure is computed in floating point and the removed amount
// truncated once, so the remainder (including any sub-unit fraction)
// stays on the stack. Repeated partial consumes can therefore differ
// from one bulk consume by at most one gold per partial step.
func ConsumeByName(p *domain.Player, name string, count int) (int, error) {
	if count <= 0 {
		return 0, fmt.Errorf("%w: count must be positive", domain.ErrInvalidConfiguration)
	}

	held := QuantityByName(p, name)
	if held < count {
		return 0, fmt.Errorf("%w: %s (have %d, need %d)", domain.ErrInsufficientQuantity, name, held, count)
	}

	remaining := count
	valueRemoved := 0
	kept := p.Inventory[:0]
	for _, stack := range p.Inventory {
		if remaining == 0 || !strings.EqualFold(stack.Name, name) {
			kept = append(kept, stack)
			continue
		}
		if stack.Quantity <= remaining {
			remaining -= stack.Quantity
			valueRemoved += stack.Value
			continue
		}
		perUnit := float64(stack.Value) / float64(stack.Quantity)
		removed := int(perUnit * float64(remaining))
		stack.Value -= removed
		stack.Quantity -= remaining
		valueRemoved += removed
		remaining = 0
		kept = append(kept, stack)
	}
	p.Inventory = kept
	return valueRemoved, nil
}
