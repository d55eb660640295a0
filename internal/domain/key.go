package domain

import "golang.org/x/text/cases"

var keyCaser = cases.Fold()

// Key folds a display name into the case-insensitive form used as a map
// key throughout the state graph. Entity names are unique under Key.
func Key(name string) string {
	return keyCaser.String(name)
}

// Player looks up a player by display name.
func (g *GameState) Player(name string) (*Player, bool) {
	p, ok := g.Players[Key(name)]
	return p, ok
}

// Table looks up a loot table by display name.
func (g *GameState) Table(name string) (*LootTable, bool) {
	t, ok := g.Tables[Key(name)]
	return t, ok
}

// MasterItem looks up a catalog template by display name.
func (g *GameState) MasterItem(name string) (*MasterItem, bool) {
	key := Key(name)
	for _, m := range g.Items {
		if Key(m.Name) == key {
			return m, true
		}
	}
	return nil, false
}

// Enchantment looks up a monetary enchantment template by name.
func (g *GameState) Enchantment(name string) (*Enchantment, bool) {
	key := Key(name)
	for _, e := range g.Enchantments {
		if Key(e.Name) == key {
			return e, true
		}
	}
	return nil, false
}

// ConsumableDef looks up a consumable definition by item name.
func (g *GameState) ConsumableDef(name string) (*Consumable, bool) {
	key := Key(name)
	for _, c := range g.Consumables {
		if Key(c.Name) == key {
			return c, true
		}
	}
	return nil, false
}
