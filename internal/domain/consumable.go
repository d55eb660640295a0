package domain

// ConsumableKind identifies a consumable's one-shot effect.
type ConsumableKind string

const (
	// ConsumableDoubleNextDraw doubles quantity and value of every item
	// in the player's next draw.
	ConsumableDoubleNextDraw ConsumableKind = "double_next_draw"
	// ConsumableFreeDrawTicket grants N free draws from its bound table
	// on the player's next draw.
	ConsumableFreeDrawTicket ConsumableKind = "free_draw_ticket"
	// ConsumableTrashToTreasure excludes the single highest-weight table
	// entry from the candidate pool for one draw.
	ConsumableTrashToTreasure ConsumableKind = "trash_to_treasure"
)

// Valid reports whether the kind is a recognized consumable effect.
func (k ConsumableKind) Valid() bool {
	switch k {
	case ConsumableDoubleNextDraw, ConsumableFreeDrawTicket, ConsumableTrashToTreasure:
		return true
	}
	return false
}

// Consumable defines a usable item's effect. Value and Table are only
// meaningful for some kinds (ticket draw count and bound table).
type Consumable struct {
	Name  string         `json:"name"`
	Kind  ConsumableKind `json:"kind"`
	Value int            `json:"value,omitempty"`
	Table string         `json:"table,omitempty"`
}

// Activate returns the queued effect produced by using one unit.
func (c *Consumable) Activate() ActiveEffect {
	return ActiveEffect{
		Kind:  c.Kind,
		Value: c.Value,
		Table: c.Table,
	}
}
