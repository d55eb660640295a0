package domain

// ActiveEffect is a queued one-shot consumable effect. Effects are
// consumed on the player's next relevant draw in queue order.
type ActiveEffect struct {
	Kind  ConsumableKind `json:"kind"`
	Value int            `json:"value,omitempty"`
	Table string         `json:"table,omitempty"`
}

// Player holds one participant's currency and item state. Inventory
// order is meaningful: index-addressed operations and greedy consumption
// both walk it front to back. Upgrades is append-only; consuming an
// upgrade is irreversible.
type Player struct {
	Name      string         `json:"name"`
	Currency  int            `json:"currency"`
	Inventory []*Item        `json:"inventory"`
	Equipped  []*Item        `json:"equipped,omitempty"`
	Upgrades  []*Item        `json:"upgrades,omitempty"`
	Effects   []ActiveEffect `json:"effects,omitempty"`
}

// NewPlayer creates a player with starting currency.
func NewPlayer(name string, currency int) *Player {
	return &Player{
		Name:      name,
		Currency:  currency,
		Inventory: []*Item{},
	}
}

// ModifierSources returns the item lists the aggregator scans: equipped
// items and consumed upgrades.
func (p *Player) ModifierSources() [][]*Item {
	return [][]*Item{p.Equipped, p.Upgrades}
}
