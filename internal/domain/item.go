package domain

import "github.com/google/uuid"

// ItemKind categorizes catalog items. The four well-known kinds drive
// engine behavior; unrecognized tags are carried through and treated
// like KindMisc.
type ItemKind string

const (
	KindMisc       ItemKind = "misc"
	KindEquipment  ItemKind = "equipment"
	KindUpgrade    ItemKind = "upgrade"
	KindConsumable ItemKind = "consumable"
)

// Equippable reports whether items of this kind can be worn.
func (k ItemKind) Equippable() bool {
	return k == KindEquipment
}

// ValueMode selects how a modifier value is applied to a base amount.
type ValueMode string

const (
	ModePercent ValueMode = "percent"
	ModeFlat    ValueMode = "flat"
)

// ItemModifier is one enchantment or functional effect applied to an item
// instance. Functional modifiers carry a Kind and a fixed Value; monetary
// enchantments carry the rolled amount in Rolled and no Kind.
type ItemModifier struct {
	Name   string     `json:"name"`
	Kind   EffectKind `json:"kind,omitempty"`
	Mode   ValueMode  `json:"mode"`
	Value  float64    `json:"value,omitempty"`
	Rolled *float64   `json:"rolled,omitempty"`
}

// Functional reports whether the modifier is read by the aggregator
// rather than having been applied to gold value at enchant time.
func (m ItemModifier) Functional() bool {
	return m.Kind != ""
}

// Item is a single inventory stack or table template. Value is the stack
// total, not a per-unit figure. Weight is only meaningful while the item
// sits inside a loot table.
type Item struct {
	ID           uuid.UUID      `json:"id"`
	Name         string         `json:"name"`
	Weight       int            `json:"weight"`
	Value        int            `json:"value"`
	Kind         ItemKind       `json:"kind"`
	Quantity     int            `json:"quantity"`
	Crafted      bool           `json:"crafted,omitempty"`
	Rarity       Rarity         `json:"rarity,omitempty"`
	Enchantments []ItemModifier `json:"enchantments,omitempty"`
}

// Unique reports whether the item may never merge into another stack.
// Any applied enchantment or a rolled rarity tier makes an item unique.
func (i *Item) Unique() bool {
	return len(i.Enchantments) > 0 || i.Rarity != ""
}

// FunctionalEffectCount counts applied functional modifiers, used to
// enforce rarity slot caps during crafting.
func (i *Item) FunctionalEffectCount() int {
	n := 0
	for _, m := range i.Enchantments {
		if m.Functional() {
			n++
		}
	}
	return n
}

// Clone returns a deep copy with a fresh instance ID. Draws clone table
// templates so the caller can mutate quantity, value, and rarity without
// touching the table definition.
func (i *Item) Clone() *Item {
	c := *i
	c.ID = uuid.New()
	if len(i.Enchantments) > 0 {
		c.Enchantments = make([]ItemModifier, len(i.Enchantments))
		for idx, m := range i.Enchantments {
			if m.Rolled != nil {
				v := *m.Rolled
				m.Rolled = &v
			}
			c.Enchantments[idx] = m
		}
	}
	return &c
}

// NewTemplate builds a table entry (or fresh instance) from a catalog
// template. Value copies out as a stack total for the default quantity.
func NewTemplate(m *MasterItem, weight int) *Item {
	qty := m.Quantity
	if qty <= 0 {
		qty = 1
	}
	return &Item{
		ID:       uuid.New(),
		Name:     m.Name,
		Weight:   weight,
		Value:    m.Value * qty,
		Kind:     m.Kind,
		Quantity: qty,
	}
}

// MasterItem is a catalog template. Item instances copy its values at
// draw/craft/purchase time; later catalog edits never reach instances.
type MasterItem struct {
	Name        string   `json:"name"`
	Kind        ItemKind `json:"kind"`
	Value       int      `json:"value"`
	Price       *int     `json:"price,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
	Quantity    int      `json:"quantity"`
}

// Craftable reports whether the template carries a recipe.
func (m *MasterItem) Craftable() bool {
	return len(m.Ingredients) > 0
}

// Purchasable reports whether the template can be bought from the shop.
func (m *MasterItem) Purchasable() bool {
	return m.Price != nil
}
