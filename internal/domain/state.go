package domain

// Settings holds game-wide tunables persisted with the save.
type Settings struct {
	// EffectRollCost is the currency charged per functional effect roll
	// during crafting.
	EffectRollCost int `json:"effect_roll_cost"`
	// EnchantCostItem names the item consumed when applying a monetary
	// enchantment. Empty means enchanting is free.
	EnchantCostItem string `json:"enchant_cost_item,omitempty"`
	CurrencyName    string `json:"currency_name"`
	CurrencySymbol  string `json:"currency_symbol"`
}

// DefaultSettings returns the built-in tunables used when a save or
// content pack omits them.
func DefaultSettings() Settings {
	return Settings{
		EffectRollCost: 100,
		CurrencyName:   "gold",
		CurrencySymbol: "g",
	}
}

// GameState is the full entity graph one session operates on. Map keys
// are case-folded names; the canonical display name lives on the entity.
type GameState struct {
	Players      map[string]*Player    `json:"players"`
	Tables       map[string]*LootTable `json:"tables"`
	Items        []*MasterItem         `json:"items"`
	Enchantments []*Enchantment        `json:"enchantments"`
	Effects      []*Effect             `json:"effects"`
	Consumables  []*Consumable         `json:"consumables"`
	Rarity       RaritySystem          `json:"rarity"`
	Settings     Settings              `json:"settings"`
}

// NewGameState returns an empty state with built-in defaults.
func NewGameState() *GameState {
	return &GameState{
		Players:  make(map[string]*Player),
		Tables:   make(map[string]*LootTable),
		Rarity:   DefaultRaritySystem(),
		Settings: DefaultSettings(),
	}
}
