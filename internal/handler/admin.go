package handler

import (
	"net/http"

	"github.com/lootledger/engine/internal/catalog"
	"github.com/lootledger/engine/internal/logger"
	"github.com/lootledger/engine/internal/player"
	"github.com/lootledger/engine/internal/worker"
)

// ItemDefRequest creates or updates a master item definition.
type ItemDefRequest struct {
	Name        string   `json:"name" validate:"required"`
	Kind        string   `json:"kind" validate:"required,itemkind"`
	Value       int      `json:"value" validate:"gte=0"`
	Price       *int     `json:"price,omitempty" validate:"omitempty,gte=0"`
	Ingredients []string `json:"ingredients,omitempty"`
	Quantity    int      `json:"quantity,omitempty" validate:"gte=0"`
}

// ItemNameRequest addresses a master item by name.
type ItemNameRequest struct {
	Name string `json:"name" validate:"required"`
}

// TableRequest creates a loot table.
type TableRequest struct {
	Name     string `json:"name" validate:"required"`
	DrawCost int    `json:"draw_cost" validate:"gte=0"`
}

// TableNameRequest addresses a loot table by name.
type TableNameRequest struct {
	Name string `json:"name" validate:"required"`
}

// TableEntryRequest adds a weighted entry to a table.
type TableEntryRequest struct {
	Table  string `json:"table" validate:"required"`
	Item   string `json:"item" validate:"required"`
	Weight int    `json:"weight" validate:"gte=0"`
}

// TableEntryNameRequest removes a table entry by item name.
type TableEntryNameRequest struct {
	Table string `json:"table" validate:"required"`
	Item  string `json:"item" validate:"required"`
}

// CurrencyRequest moves currency in or out of a player's balance.
type CurrencyRequest struct {
	Player string `json:"player" validate:"required"`
	Amount int    `json:"amount" validate:"required,gt=0"`
}

// GiveItemRequest grants a player copies of a master item.
type GiveItemRequest struct {
	Player   string `json:"player" validate:"required"`
	Item     string `json:"item" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gte=1"`
}

func (r ItemDefRequest) toDef() catalog.ItemDef {
	return catalog.ItemDef{
		Name:        r.Name,
		Kind:        r.Kind,
		Value:       r.Value,
		Price:       r.Price,
		Ingredients: r.Ingredients,
		Quantity:    r.Quantity,
	}
}

// HandleCreateItem adds a master item definition.
// @Summary Create a master item
// @Tags admin
// @Accept json
// @Produce json
// @Success 201 {object} SuccessResponse
// @Router /api/v1/admin/item [post]
func HandleCreateItem(catalogService catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ItemDefRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		if err := catalogService.CreateItem(r.Context(), req.toDef()); err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, SuccessResponse{Message: "item created"})
	}
}

// HandleUpdateItem replaces a master item definition. Item instances
// already drawn keep the values they copied at draw time.
// @Summary Update a master item
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /api/v1/admin/item [put]
func HandleUpdateItem(catalogService catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ItemDefRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		if err := catalogService.UpdateItem(r.Context(), req.toDef()); err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "item updated"})
	}
}

// HandleDeleteItem removes a master item definition.
// @Summary Delete a master item
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /api/v1/admin/item [delete]
func HandleDeleteItem(catalogService catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ItemNameRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		if err := catalogService.DeleteItem(r.Context(), req.Name); err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "item deleted"})
	}
}

// HandleCreateTable creates an empty loot table.
// @Summary Create a loot table
// @Tags admin
// @Accept json
// @Produce json
// @Success 201 {object} SuccessResponse
// @Router /api/v1/admin/table [post]
func HandleCreateTable(catalogService catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TableRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		if err := catalogService.CreateTable(r.Context(), req.Name, req.DrawCost); err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, SuccessResponse{Message: "table created"})
	}
}

// HandleDeleteTable removes a loot table.
// @Summary Delete a loot table
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /api/v1/admin/table [delete]
func HandleDeleteTable(catalogService catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TableNameRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		if err := catalogService.DeleteTable(r.Context(), req.Name); err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "table deleted"})
	}
}

// HandleAddTableEntry adds a weighted item entry to a table.
// @Summary Add a table entry
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /api/v1/admin/table/entry [post]
func HandleAddTableEntry(catalogService catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TableEntryRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		if err := catalogService.AddTableEntry(r.Context(), req.Table, req.Item, req.Weight); err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "entry added"})
	}
}

// HandleRemoveTableEntry removes a table entry by item name.
// @Summary Remove a table entry
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /api/v1/admin/table/entry [delete]
func HandleRemoveTableEntry(catalogService catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TableEntryNameRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		if err := catalogService.RemoveTableEntry(r.Context(), req.Table, req.Item); err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "entry removed"})
	}
}

// HandleGrantCurrency credits a player's balance.
// @Summary Grant currency
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} map[string]int
// @Router /api/v1/admin/currency/grant [post]
func HandleGrantCurrency(playerService player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CurrencyRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		balance, err := playerService.GrantCurrency(r.Context(), req.Player, req.Amount)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]int{"balance": balance})
	}
}

// HandleTakeCurrency debits a player's balance.
// @Summary Take currency
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} map[string]int
// @Router /api/v1/admin/currency/take [post]
func HandleTakeCurrency(playerService player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CurrencyRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		balance, err := playerService.TakeCurrency(r.Context(), req.Player, req.Amount)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]int{"balance": balance})
	}
}

// HandleGiveItem grants a player copies of a master item.
// @Summary Give an item
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} domain.Item
// @Router /api/v1/admin/give [post]
func HandleGiveItem(playerService player.Service, resolver *catalog.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GiveItemRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		req.Item = canonicalItemName(resolver, req.Item)
		item, err := playerService.GiveItem(r.Context(), req.Player, req.Item, req.Quantity)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, item)
	}
}

// HandleSave forces an immediate save of the game state.
// @Summary Save game state
// @Tags admin
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /api/v1/admin/save [post]
func HandleSave(autosave *worker.Autosave) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		if err := autosave.Save(r.Context()); err != nil {
			log.Error("Manual save failed", "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgSaveFailed)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "state saved"})
	}
}

// HandlePurgeCache drops the resolver's cached lookups, e.g. after a
// batch of catalog edits.
// @Summary Purge resolver cache
// @Tags admin
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /api/v1/admin/cache/purge [post]
func HandlePurgeCache(resolver *catalog.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resolver.Purge()
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "cache purged"})
	}
}
