package store

import (
	"encoding/json"
	"fmt"

	"github.com/lootledger/engine/internal/domain"
)

// envelope is the versioned save document shared by both backends. A
// legacy pre-versioning file has neither field and is treated as v1.
type envelope struct {
	Version int             `json:"version"`
	State   json.RawMessage `json:"state"`
}

// migration upgrades a decoded save document by one version.
type migration func(doc map[string]any) error

// migrations[v] upgrades a version-v document to v+1.
var migrations = map[int]migration{
	1: migrateV1NamedTables,
	2: migrateV2CatalogDefaults,
}

// decodeState migrates a save document to the current version and
// decodes it into a state graph with built-in defaults filled in.
func decodeState(version int, raw []byte) (*domain.GameState, error) {
	if version > CurrentVersion {
		return nil, fmt.Errorf("save version %d is newer than supported version %d", version, CurrentVersion)
	}

	if version < CurrentVersion {
		var doc map[string]any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode v%d save: %w", version, err)
		}
		for v := version; v < CurrentVersion; v++ {
			step, ok := migrations[v]
			if !ok {
				return nil, fmt.Errorf("no migration from save version %d", v)
			}
			if err := step(doc); err != nil {
				return nil, fmt.Errorf("failed to migrate save from v%d: %w", v, err)
			}
		}
		migrated, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to re-encode migrated save: %w", err)
		}
		raw = migrated
	}

	state := domain.NewGameState()
	if err := json.Unmarshal(raw, state); err != nil {
		return nil, fmt.Errorf("failed to decode save state: %w", err)
	}
	applyDefaults(state)
	return state, nil
}

// migrateV1NamedTables lifts the legacy single "table" object into the
// named-tables map. An unnamed legacy table becomes "Loot".
func migrateV1NamedTables(doc map[string]any) error {
	raw, ok := doc["table"]
	delete(doc, "table")
	if !ok || raw == nil {
		if _, has := doc["tables"]; !has {
			doc["tables"] = map[string]any{}
		}
		return nil
	}

	table, ok := raw.(map[string]any)
	if !ok {
		return fmt.Errorf("legacy table field is not an object")
	}
	name, _ := table["name"].(string)
	if name == "" {
		name = "Loot"
		table["name"] = name
	}
	doc["tables"] = map[string]any{domain.Key(name): table}
	return nil
}

// migrateV2CatalogDefaults backfills the catalog sections v2 saves did
// not carry. Rarity weights and settings get the built-in defaults.
func migrateV2CatalogDefaults(doc map[string]any) error {
	for _, key := range []string{"enchantments", "effects", "consumables"} {
		if _, ok := doc[key]; !ok {
			doc[key] = []any{}
		}
	}
	if _, ok := doc["rarity"]; !ok {
		raw, err := json.Marshal(domain.DefaultRaritySystem())
		if err != nil {
			return err
		}
		var rarity map[string]any
		if err := json.Unmarshal(raw, &rarity); err != nil {
			return err
		}
		doc["rarity"] = rarity
	}
	if _, ok := doc["settings"]; !ok {
		raw, err := json.Marshal(domain.DefaultSettings())
		if err != nil {
			return err
		}
		var settings map[string]any
		if err := json.Unmarshal(raw, &settings); err != nil {
			return err
		}
		doc["settings"] = settings
	}
	return nil
}

// applyDefaults fills the gaps a sparse or hand-edited save may leave.
func applyDefaults(state *domain.GameState) {
	if state.Players == nil {
		state.Players = make(map[string]*domain.Player)
	}
	if state.Tables == nil {
		state.Tables = make(map[string]*domain.LootTable)
	}
	if len(state.Rarity.Tiers) == 0 {
		state.Rarity = domain.DefaultRaritySystem()
	}
	if state.Settings.EffectRollCost <= 0 {
		state.Settings.EffectRollCost = domain.DefaultSettings().EffectRollCost
	}
	if state.Settings.CurrencyName == "" {
		defaults := domain.DefaultSettings()
		state.Settings.CurrencyName = defaults.CurrencyName
		state.Settings.CurrencySymbol = defaults.CurrencySymbol
	}
}
