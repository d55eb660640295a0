package handler

import (
	"net/http"

	"github.com/lootledger/engine/internal/catalog"
	"github.com/lootledger/engine/internal/player"
)

// RegisterRequest creates a new player.
type RegisterRequest struct {
	Player           string `json:"player" validate:"required"`
	StartingCurrency int    `json:"starting_currency" validate:"gte=0"`
}

// RemoveRequest deletes a player and everything they own.
type RemoveRequest struct {
	Player string `json:"player" validate:"required"`
}

// ItemIndexRequest addresses one inventory slot by position.
type ItemIndexRequest struct {
	Player string `json:"player" validate:"required"`
	Index  *int   `json:"index" validate:"required,gte=0"`
}

// UseConsumableRequest uses one unit of a consumable by name.
type UseConsumableRequest struct {
	Player string `json:"player" validate:"required"`
	Item   string `json:"item" validate:"required"`
}

// HandleRegister creates a player.
// @Summary Register a player
// @Tags player
// @Accept json
// @Produce json
// @Success 201 {object} domain.Player
// @Router /api/v1/player/register [post]
func HandleRegister(playerService player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		created, err := playerService.Register(r.Context(), req.Player, req.StartingCurrency)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, created)
	}
}

// HandleRemove deletes a player.
// @Summary Remove a player
// @Tags player
// @Accept json
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /api/v1/player/remove [post]
func HandleRemove(playerService player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RemoveRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		if err := playerService.Remove(r.Context(), req.Player); err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "player removed"})
	}
}

// HandleEquip moves an equipment stack from inventory to the equipped
// list.
// @Summary Equip an item
// @Tags player
// @Accept json
// @Produce json
// @Success 200 {object} domain.Item
// @Router /api/v1/player/equip [post]
func HandleEquip(playerService player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ItemIndexRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		item, err := playerService.Equip(r.Context(), req.Player, *req.Index)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, item)
	}
}

// HandleUnequip moves an equipped stack back to inventory.
// @Summary Unequip an item
// @Tags player
// @Accept json
// @Produce json
// @Success 200 {object} domain.Item
// @Router /api/v1/player/unequip [post]
func HandleUnequip(playerService player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ItemIndexRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		item, err := playerService.Unequip(r.Context(), req.Player, *req.Index)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, item)
	}
}

// HandleConsumeUpgrade consumes one unit of an upgrade stack, binding
// it permanently to the player.
// @Summary Consume an upgrade
// @Tags player
// @Accept json
// @Produce json
// @Success 200 {object} domain.Item
// @Router /api/v1/player/upgrade [post]
func HandleConsumeUpgrade(playerService player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ItemIndexRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		item, err := playerService.ConsumeUpgrade(r.Context(), req.Player, *req.Index)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, item)
	}
}

// HandleUseConsumable uses one unit of a consumable and queues its
// effect.
// @Summary Use a consumable
// @Tags player
// @Accept json
// @Produce json
// @Success 200 {object} player.UseResult
// @Router /api/v1/player/use [post]
func HandleUseConsumable(playerService player.Service, resolver *catalog.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UseConsumableRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		req.Item = canonicalItemName(resolver, req.Item)
		result, err := playerService.UseConsumable(r.Context(), req.Player, req.Item)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleGetPlayer returns one player's full state.
// @Summary Get a player
// @Tags player
// @Produce json
// @Param player query string true "Player name"
// @Success 200 {object} player.Info
// @Router /api/v1/player [get]
func HandleGetPlayer(playerService player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, ok := queryParam(w, r, ParamPlayer)
		if !ok {
			return
		}
		info, err := playerService.Get(r.Context(), name)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, info)
	}
}

// HandleListPlayers lists registered player names.
// @Summary List players
// @Tags player
// @Produce json
// @Success 200 {array} string
// @Router /api/v1/players [get]
func HandleListPlayers(playerService player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names, err := playerService.List(r.Context())
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, names)
	}
}
