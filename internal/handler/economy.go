package handler

import (
	"net/http"

	"github.com/lootledger/engine/internal/catalog"
	"github.com/lootledger/engine/internal/economy"
)

// SellIndexRequest sells the whole stack at an inventory position.
type SellIndexRequest struct {
	Player string `json:"player" validate:"required"`
	Index  *int   `json:"index" validate:"required,gte=0"`
}

// SellNameRequest sells count units of a named item; zero count with
// All set sells every unit held.
type SellNameRequest struct {
	Player string `json:"player" validate:"required"`
	Item   string `json:"item" validate:"required"`
	Count  int    `json:"count" validate:"gte=0"`
	All    bool   `json:"all"`
}

// BuyRequest purchases units of a shop item.
type BuyRequest struct {
	Player   string `json:"player" validate:"required"`
	Item     string `json:"item" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=1"`
}

// HandleSellIndex sells one inventory stack by position.
// @Summary Sell the stack at an inventory index
// @Tags economy
// @Accept json
// @Produce json
// @Success 200 {object} economy.SellResult
// @Router /api/v1/sell/index [post]
func HandleSellIndex(economyService economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SellIndexRequest
		if !decodeRequest(w, r, &req) {
			return
		}

		result, err := economyService.SellByIndex(r.Context(), req.Player, *req.Index)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleSellName sells units of a named item, or all of them.
// @Summary Sell items by name
// @Tags economy
// @Accept json
// @Produce json
// @Success 200 {object} economy.SellResult
// @Router /api/v1/sell [post]
func HandleSellName(economyService economy.Service, resolver *catalog.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SellNameRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		req.Item = canonicalItemName(resolver, req.Item)

		var result *economy.SellResult
		var err error
		if req.All {
			result, err = economyService.SellAll(r.Context(), req.Player, req.Item)
		} else {
			result, err = economyService.SellByName(r.Context(), req.Player, req.Item, req.Count)
		}
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleBuy purchases shop items.
// @Summary Buy an item from the shop
// @Tags economy
// @Accept json
// @Produce json
// @Success 200 {object} economy.BuyResult
// @Router /api/v1/shop/buy [post]
func HandleBuy(economyService economy.Service, resolver *catalog.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BuyRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		req.Item = canonicalItemName(resolver, req.Item)

		result, err := economyService.Buy(r.Context(), req.Player, req.Item, req.Quantity)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleGetShop lists purchasable items.
// @Summary List the shop
// @Tags economy
// @Produce json
// @Success 200 {array} economy.ShopEntry
// @Router /api/v1/shop [get]
func HandleGetShop(economyService economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := economyService.Shop(r.Context())
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, entries)
	}
}
