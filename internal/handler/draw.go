package handler

import (
	"net/http"

	"github.com/lootledger/engine/internal/loot"
)

// DrawRequest asks for count paid draws from a table.
type DrawRequest struct {
	Player string `json:"player" validate:"required"`
	Table  string `json:"table" validate:"required"`
	Count  int    `json:"count" validate:"gte=1"`
}

// HandleDraw performs weighted draws for a player.
// @Summary Draw items from a loot table
// @Tags loot
// @Accept json
// @Produce json
// @Success 200 {object} loot.DrawResult
// @Router /api/v1/draw [post]
func HandleDraw(lootService loot.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DrawRequest
		if !decodeRequest(w, r, &req) {
			return
		}

		result, err := lootService.Draw(r.Context(), req.Player, req.Table, req.Count)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleGetTables lists the loot tables.
// @Summary List loot tables
// @Tags loot
// @Produce json
// @Success 200 {array} loot.TableSummary
// @Router /api/v1/tables [get]
func HandleGetTables(lootService loot.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tables, err := lootService.ListTables(r.Context())
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, tables)
	}
}

// HandleGetOdds reports per-entry drop chances for one table.
// @Summary Get drop odds for a table
// @Tags loot
// @Produce json
// @Param table query string true "Table name"
// @Success 200 {array} loot.TableOdds
// @Router /api/v1/tables/odds [get]
func HandleGetOdds(lootService loot.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table, ok := queryParam(w, r, ParamTable)
		if !ok {
			return
		}
		odds, err := lootService.Odds(r.Context(), table)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, odds)
	}
}
