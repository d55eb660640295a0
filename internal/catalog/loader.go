// Package catalog loads and validates the game content pack (master
// items, loot tables, enchantment and effect pools, consumables, rarity
// weights, settings) and resolves user-entered names to canonical
// catalog entries.
package catalog

import (
	"errors"
	"fmt"

	"github.com/lootledger/engine/internal/domain"
	"github.com/lootledger/engine/internal/utils"
)

// Sentinel errors for the content loader.
var (
	ErrDuplicateName = errors.New("duplicate name in content pack")
	ErrInvalidPack   = errors.New("invalid content pack")
)

// Config is the JSON content pack consumed at startup.
type Config struct {
	Version     string `json:"version"`
	Description string `json:"description"`

	Items        []ItemDef        `json:"items"`
	Tables       []TableDef       `json:"tables"`
	Enchantments []EnchantDef     `json:"enchantments,omitempty"`
	Effects      []EffectDef      `json:"effects,omitempty"`
	Consumables  []ConsumableDef  `json:"consumables,omitempty"`
	Rarity       []RarityDef      `json:"rarity_weights,omitempty"`
	Settings     *domain.Settings `json:"settings,omitempty"`
}

// ItemDef is one master item definition.
type ItemDef struct {
	Name        string   `json:"name"`
	Kind        string   `json:"kind"`
	Value       int      `json:"value"`
	Price       *int     `json:"price,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
	Quantity    int      `json:"quantity,omitempty"`
}

// TableDef is one loot table with its weighted entries.
type TableDef struct {
	Name     string     `json:"name"`
	DrawCost int        `json:"draw_cost"`
	Entries  []EntryDef `json:"entries"`
}

// EntryDef references a master item with a drop weight.
type EntryDef struct {
	Item   string `json:"item"`
	Weight int    `json:"weight"`
}

// EnchantDef is one monetary enchantment template.
type EnchantDef struct {
	Name       string  `json:"name"`
	Target     string  `json:"target"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Percentage bool    `json:"percentage"`
	CostAmount int     `json:"cost_amount,omitempty"`
}

// EffectDef is one functional enchantment template.
type EffectDef struct {
	Name       string  `json:"name"`
	Kind       string  `json:"kind"`
	Value      float64 `json:"value"`
	Percentage bool    `json:"percentage"`
	Weight     int     `json:"weight"`
}

// ConsumableDef is one consumable definition.
type ConsumableDef struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Value int    `json:"value,omitempty"`
	Table string `json:"table,omitempty"`
}

// RarityDef overrides one rarity tier's roll weight. The tier set and
// slot caps are fixed; only weights come from content.
type RarityDef struct {
	Name   string `json:"name"`
	Weight int    `json:"weight"`
}

// Load reads and parses a content pack file.
func Load(path string) (*Config, error) {
	var config Config
	if err := utils.LoadJSON(path, &config); err != nil {
		return nil, fmt.Errorf("failed to load content pack: %w", err)
	}
	return &config, nil
}

// Validate checks the pack for duplicate names, dangling references,
// unknown enum tags, and non-positive weights.
func Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: nil config", ErrInvalidPack)
	}

	itemNames := make(map[string]bool, len(config.Items))
	for _, def := range config.Items {
		if def.Name == "" {
			return fmt.Errorf("%w: item with empty name", ErrInvalidPack)
		}
		key := domain.Key(def.Name)
		if itemNames[key] {
			return fmt.Errorf("%w: item %q", ErrDuplicateName, def.Name)
		}
		itemNames[key] = true
	}
	for _, def := range config.Items {
		for _, ing := range def.Ingredients {
			if !itemNames[domain.Key(ing)] {
				return fmt.Errorf("%w: item %q ingredient %q not defined", ErrInvalidPack, def.Name, ing)
			}
		}
	}

	tableNames := make(map[string]bool, len(config.Tables))
	for _, def := range config.Tables {
		key := domain.Key(def.Name)
		if tableNames[key] {
			return fmt.Errorf("%w: table %q", ErrDuplicateName, def.Name)
		}
		tableNames[key] = true
		for _, entry := range def.Entries {
			if !itemNames[domain.Key(entry.Item)] {
				return fmt.Errorf("%w: table %q entry %q not defined", ErrInvalidPack, def.Name, entry.Item)
			}
			if entry.Weight <= 0 {
				return fmt.Errorf("%w: table %q entry %q weight must be positive", ErrInvalidPack, def.Name, entry.Item)
			}
		}
	}

	for _, def := range config.Enchantments {
		if def.Min > def.Max {
			return fmt.Errorf("%w: enchantment %q min > max", ErrInvalidPack, def.Name)
		}
	}
	for _, def := range config.Effects {
		if !domain.EffectKind(def.Kind).Valid() {
			return fmt.Errorf("%w: effect %q has unknown kind %q", ErrInvalidPack, def.Name, def.Kind)
		}
		if def.Weight <= 0 {
			return fmt.Errorf("%w: effect %q weight must be positive", ErrInvalidPack, def.Name)
		}
	}
	for _, def := range config.Consumables {
		if !domain.ConsumableKind(def.Kind).Valid() {
			return fmt.Errorf("%w: consumable %q has unknown kind %q", ErrInvalidPack, def.Name, def.Kind)
		}
		if !itemNames[domain.Key(def.Name)] {
			return fmt.Errorf("%w: consumable %q has no matching item", ErrInvalidPack, def.Name)
		}
		if def.Table != "" && !tableNames[domain.Key(def.Table)] {
			return fmt.Errorf("%w: consumable %q bound to unknown table %q", ErrInvalidPack, def.Name, def.Table)
		}
	}
	for _, def := range config.Rarity {
		if _, ok := domain.DefaultRaritySystem().Tier(domain.Rarity(def.Name)); !ok {
			return fmt.Errorf("%w: unknown rarity tier %q", ErrInvalidPack, def.Name)
		}
		if def.Weight < 0 {
			return fmt.Errorf("%w: rarity tier %q weight must not be negative", ErrInvalidPack, def.Name)
		}
	}

	return nil
}

func mode(percentage bool) domain.ValueMode {
	if percentage {
		return domain.ModePercent
	}
	return domain.ModeFlat
}

// Apply merges a validated pack into the state graph. Players already in
// the state are untouched; catalogs and tables are rebuilt from the
// pack. Absent rarity weights keep the built-in defaults.
func Apply(config *Config, state *domain.GameState) error {
	if err := Validate(config); err != nil {
		return err
	}

	state.Items = make([]*domain.MasterItem, 0, len(config.Items))
	for _, def := range config.Items {
		qty := def.Quantity
		if qty <= 0 {
			qty = 1
		}
		state.Items = append(state.Items, &domain.MasterItem{
			Name:        def.Name,
			Kind:        domain.ItemKind(def.Kind),
			Value:       def.Value,
			Price:       def.Price,
			Ingredients: def.Ingredients,
			Quantity:    qty,
		})
	}

	state.Tables = make(map[string]*domain.LootTable, len(config.Tables))
	for _, def := range config.Tables {
		table := &domain.LootTable{Name: def.Name, DrawCost: def.DrawCost}
		for _, entry := range def.Entries {
			master, _ := state.MasterItem(entry.Item)
			table.Items = append(table.Items, domain.NewTemplate(master, entry.Weight))
		}
		state.Tables[domain.Key(def.Name)] = table
	}

	state.Enchantments = make([]*domain.Enchantment, 0, len(config.Enchantments))
	for _, def := range config.Enchantments {
		state.Enchantments = append(state.Enchantments, &domain.Enchantment{
			Name:       def.Name,
			Target:     domain.ItemKind(def.Target),
			Min:        def.Min,
			Max:        def.Max,
			Mode:       mode(def.Percentage),
			CostAmount: def.CostAmount,
		})
	}

	state.Effects = make([]*domain.Effect, 0, len(config.Effects))
	for _, def := range config.Effects {
		state.Effects = append(state.Effects, &domain.Effect{
			Name:   def.Name,
			Kind:   domain.EffectKind(def.Kind),
			Value:  def.Value,
			Mode:   mode(def.Percentage),
			Weight: def.Weight,
		})
	}

	state.Consumables = make([]*domain.Consumable, 0, len(config.Consumables))
	for _, def := range config.Consumables {
		state.Consumables = append(state.Consumables, &domain.Consumable{
			Name:      def.Name,
			Kind:      domain.ConsumableKind(def.Kind),
			Value: def.Value,
			Table: def.Table,
		})
	}

	for _, def := range config.Rarity {
		for i := range state.Rarity.Tiers {
			if state.Rarity.Tiers[i].Name == domain.Rarity(def.Name) {
				state.Rarity.Tiers[i].Weight = def.Weight
			}
		}
	}

	if config.Settings != nil {
		state.Settings = *config.Settings
	}

	return nil
}
