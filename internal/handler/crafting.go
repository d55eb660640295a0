package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/lootledger/engine/internal/catalog"
	"github.com/lootledger/engine/internal/crafting"
	"github.com/lootledger/engine/internal/logger"
)

// CraftRequest crafts one item, optionally paying for functional
// effect rolls.
type CraftRequest struct {
	Player      string `json:"player" validate:"required"`
	Item        string `json:"item" validate:"required"`
	EffectRolls int    `json:"effect_rolls" validate:"gte=0"`
}

// EnchantRequest applies a monetary enchantment to an item instance.
type EnchantRequest struct {
	Player      string `json:"player" validate:"required"`
	ItemID      string `json:"item_id" validate:"required,uuid"`
	Enchantment string `json:"enchantment" validate:"required"`
}

// HandleCraft crafts an item from the player's ingredients.
// @Summary Craft an item
// @Tags crafting
// @Accept json
// @Produce json
// @Success 200 {object} crafting.CraftResult
// @Router /api/v1/craft [post]
func HandleCraft(craftingService crafting.Service, resolver *catalog.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CraftRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		req.Item = canonicalItemName(resolver, req.Item)

		result, err := craftingService.Craft(r.Context(), req.Player, req.Item, req.EffectRolls)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleEnchant applies an enchantment to an inventory item.
// @Summary Enchant an item
// @Tags crafting
// @Accept json
// @Produce json
// @Success 200 {object} crafting.EnchantResult
// @Router /api/v1/enchant [post]
func HandleEnchant(craftingService crafting.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req EnchantRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		itemID, err := uuid.Parse(req.ItemID)
		if err != nil {
			log.Warn("Invalid item id", "item_id", req.ItemID)
			respondError(w, http.StatusBadRequest, ErrMsgValidationFailed)
			return
		}

		result, err := craftingService.Enchant(r.Context(), req.Player, itemID, req.Enchantment)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleGetRecipes lists craftable recipes with the player's
// per-ingredient have/need counts.
// @Summary List craftable recipes
// @Tags crafting
// @Produce json
// @Param player query string true "Player name"
// @Success 200 {array} crafting.RecipeInfo
// @Router /api/v1/recipes [get]
func HandleGetRecipes(craftingService crafting.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		player, ok := queryParam(w, r, ParamPlayer)
		if !ok {
			return
		}
		recipes, err := craftingService.ListRecipes(r.Context(), player)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, recipes)
	}
}
