// Package crafting implements the crafting and enchanting transaction
// engine: atomic ingredient consumption, output construction with rarity
// and functional-effect rolls, and monetary enchantment application.
package crafting

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/lootledger/engine/internal/domain"
	"github.com/lootledger/engine/internal/game"
	"github.com/lootledger/engine/internal/inventory"
	"github.com/lootledger/engine/internal/logger"
	"github.com/lootledger/engine/internal/metrics"
	"github.com/lootledger/engine/internal/modifier"
	"github.com/lootledger/engine/internal/utils"
)

// CraftResult reports one completed craft.
type CraftResult struct {
	Item          *domain.Item   `json:"item"`
	Consumed      map[string]int `json:"consumed"`
	EffectsRolled []string       `json:"effects_rolled,omitempty"`
	RollsCharged  int            `json:"rolls_charged"`
	StopReason    string         `json:"stop_reason,omitempty"`
	Balance       int            `json:"balance"`
}

// EnchantResult reports one applied monetary enchantment.
type EnchantResult struct {
	Item     *domain.Item `json:"item"`
	Rolled   float64      `json:"rolled"`
	OldValue int          `json:"old_value"`
	NewValue int          `json:"new_value"`
}

// RecipeInfo lists one craftable item with the player's per-ingredient
// have/need counts.
type RecipeInfo struct {
	Item        string                       `json:"item"`
	Kind        domain.ItemKind              `json:"kind"`
	Value       int                          `json:"value"`
	Ingredients []domain.IngredientShortfall `json:"ingredients"`
	Craftable   bool                         `json:"craftable"`
}

// Service defines the crafting engine interface. effectRolls caps how
// many functional-effect rolls the caller wants to pay for; rolling
// stops early at the rarity slot cap or when currency runs out.
type Service interface {
	Craft(ctx context.Context, playerName, itemName string, effectRolls int) (*CraftResult, error)
	Enchant(ctx context.Context, playerName string, itemID uuid.UUID, enchantName string) (*EnchantResult, error)
	ListRecipes(ctx context.Context, playerName string) ([]RecipeInfo, error)
}

type service struct {
	session *game.Session
}

// NewService creates the crafting engine over a game session.
func NewService(session *game.Session) Service {
	return &service{session: session}
}

// ingredientNeeds folds a recipe's ordered ingredient list into a
// multiset, keeping first-seen display names for reporting.
func ingredientNeeds(ingredients []string) (map[string]int, map[string]string) {
	needs := make(map[string]int, len(ingredients))
	display := make(map[string]string, len(ingredients))
	for _, name := range ingredients {
		key := domain.Key(name)
		needs[key]++
		if _, ok := display[key]; !ok {
			display[key] = name
		}
	}
	return needs, display
}

func (s *service) Craft(ctx context.Context, playerName, itemName string, effectRolls int) (*CraftResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgCraftCalled, "player", playerName, "item", itemName, "effectRolls", effectRolls)

	var result *CraftResult
	err := s.session.Update(func(g *domain.GameState) error {
		player, ok := g.Player(playerName)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, playerName)
		}
		master, ok := g.MasterItem(itemName)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemName)
		}
		if !master.Craftable() {
			return fmt.Errorf("%w: %s", domain.ErrRecipeNotFound, master.Name)
		}

		// Validate the full multiset before consuming anything.
		needs, display := ingredientNeeds(master.Ingredients)
		var shortfalls []domain.IngredientShortfall
		for key, need := range needs {
			have := inventory.QuantityByName(player, display[key])
			if have < need {
				shortfalls = append(shortfalls, domain.IngredientShortfall{
					Name: display[key],
					Have: have,
					Need: need,
				})
			}
		}
		if len(shortfalls) > 0 {
			return &domain.MissingIngredientsError{Shortfalls: shortfalls}
		}

		consumed := make(map[string]int, len(needs))
		for key, need := range needs {
			if _, err := inventory.ConsumeByName(player, display[key], need); err != nil {
				return err
			}
			consumed[display[key]] = need
		}

		output := domain.NewTemplate(master, 0)
		output.Crafted = true

		result = &CraftResult{Item: output, Consumed: consumed}

		// Equipment rolls a rarity tier once, fixing the functional slot
		// cap. Upgrade items may roll effects without a cap.
		slotCap := -1
		if output.Kind == domain.KindEquipment {
			tier, err := g.Rarity.Roll(s.session.Rand)
			if err != nil {
				return err
			}
			output.Rarity = tier.Name
			slotCap = tier.MaxEffects
		}

		if effectRolls > 0 && (output.Kind == domain.KindEquipment || output.Kind == domain.KindUpgrade) {
			s.rollEffects(g, player, output, effectRolls, slotCap, result, log)
		}

		mods := modifier.Aggregate(player)
		output.Value = mods.CraftedSellPrice.IncreaseValue(output.Value)

		inventory.Add(player, output)
		result.Balance = player.Currency

		metrics.ItemsCrafted.WithLabelValues(master.Name).Inc()
		if result.RollsCharged > 0 {
			metrics.MoneySpent.WithLabelValues(metrics.SourceCraft).Add(float64(result.RollsCharged * g.Settings.EffectRollCost))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info(LogMsgItemCrafted,
		"player", playerName,
		"item", result.Item.Name,
		"rarity", result.Item.Rarity,
		"effects", len(result.EffectsRolled))
	return result, nil
}

// rollEffects performs up to requested weighted effect rolls, each
// charged at the configured currency cost, stopping at the slot cap
// (slotCap < 0 means uncapped) or when the player cannot pay.
func (s *service) rollEffects(g *domain.GameState, player *domain.Player, output *domain.Item, requested, slotCap int, result *CraftResult, log *slog.Logger) {
	if len(g.Effects) == 0 {
		result.StopReason = StopReasonNoPool
		return
	}

	weights := make([]int, len(g.Effects))
	for i, eff := range g.Effects {
		weights[i] = eff.Weight
	}
	cost := g.Settings.EffectRollCost

	result.StopReason = StopReasonComplete
	for i := 0; i < requested; i++ {
		if slotCap >= 0 && output.FunctionalEffectCount() >= slotCap {
			result.StopReason = StopReasonSlotCap
			break
		}
		if player.Currency < cost {
			result.StopReason = StopReasonFunds
			break
		}

		idx, err := utils.WeightedIndex(weights, s.session.Rand)
		if err != nil {
			result.StopReason = StopReasonNoPool
			break
		}

		player.Currency -= cost
		effect := g.Effects[idx]
		output.Enchantments = append(output.Enchantments, effect.Applied())
		result.EffectsRolled = append(result.EffectsRolled, effect.Name)
		result.RollsCharged++
		log.Info(LogMsgEffectRolled, "effect", effect.Name, "item", output.Name)
	}

	if result.StopReason != StopReasonComplete {
		log.Info(LogMsgRollsStopped, "reason", result.StopReason, "rolled", result.RollsCharged)
	}
}

func (s *service) Enchant(ctx context.Context, playerName string, itemID uuid.UUID, enchantName string) (*EnchantResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgEnchantCalled, "player", playerName, "itemID", itemID, "enchantment", enchantName)

	var result *EnchantResult
	err := s.session.Update(func(g *domain.GameState) error {
		player, ok := g.Player(playerName)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, playerName)
		}
		item, err := inventory.ByID(player, itemID)
		if err != nil {
			return err
		}
		ench, ok := g.Enchantment(enchantName)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrEnchantNotFound, enchantName)
		}
		if !ench.CompatibleWith(item.Kind) {
			return fmt.Errorf("%w: %s targets %s items, %s is %s",
				domain.ErrIncompatibleEnchant, ench.Name, ench.Target, item.Name, item.Kind)
		}

		// The global cost item is consumed atomically: validated across
		// stacks before the roll, so a refused enchant changes nothing.
		if g.Settings.EnchantCostItem != "" && ench.CostAmount > 0 {
			if _, err := inventory.ConsumeByName(player, g.Settings.EnchantCostItem, ench.CostAmount); err != nil {
				return err
			}
		}

		rolled := utils.UniformInRange(ench.Min, ench.Max, s.session.Rand)
		oldValue := item.Value

		value := float64(item.Value)
		if ench.Mode == domain.ModePercent {
			value += value * (rolled / 100)
		} else {
			value += rolled
		}
		if value < 0 {
			value = 0
		}
		item.Value = int(math.Floor(value))

		item.Enchantments = append(item.Enchantments, domain.ItemModifier{
			Name:   ench.Name,
			Mode:   ench.Mode,
			Rolled: &rolled,
		})

		result = &EnchantResult{
			Item:     item,
			Rolled:   rolled,
			OldValue: oldValue,
			NewValue: item.Value,
		}
		metrics.ItemsEnchanted.WithLabelValues(item.Name).Inc()
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info(LogMsgItemEnchanted,
		"player", playerName,
		"item", result.Item.Name,
		"rolled", result.Rolled,
		"newValue", result.NewValue)
	return result, nil
}

func (s *service) ListRecipes(ctx context.Context, playerName string) ([]RecipeInfo, error) {
	var recipes []RecipeInfo
	err := s.session.View(func(g *domain.GameState) error {
		player, ok := g.Player(playerName)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, playerName)
		}
		for _, master := range g.Items {
			if !master.Craftable() {
				continue
			}
			needs, display := ingredientNeeds(master.Ingredients)
			info := RecipeInfo{
				Item:      master.Name,
				Kind:      master.Kind,
				Value:     master.Value,
				Craftable: true,
			}
			for key, need := range needs {
				have := inventory.QuantityByName(player, display[key])
				if have < need {
					info.Craftable = false
				}
				info.Ingredients = append(info.Ingredients, domain.IngredientShortfall{
					Name: display[key],
					Have: have,
					Need: need,
				})
			}
			recipes = append(recipes, info)
		}
		return nil
	})
	return recipes, err
}
