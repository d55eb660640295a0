package handler

import (
	"net/http"

	"github.com/lootledger/engine/internal/domain"
	"github.com/lootledger/engine/internal/game"
)

// InfoResponse exposes the game-wide settings and catalog counts.
type InfoResponse struct {
	Settings     domain.Settings `json:"settings"`
	Players      int             `json:"players"`
	Tables       int             `json:"tables"`
	Items        int             `json:"items"`
	Enchantments int             `json:"enchantments"`
	Consumables  int             `json:"consumables"`
}

// HandleGetInfo returns the game settings and catalog summary.
// @Summary Get game info
// @Tags info
// @Produce json
// @Success 200 {object} InfoResponse
// @Router /api/v1/info [get]
func HandleGetInfo(session *game.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var resp InfoResponse
		_ = session.View(func(g *domain.GameState) error {
			resp = InfoResponse{
				Settings:     g.Settings,
				Players:      len(g.Players),
				Tables:       len(g.Tables),
				Items:        len(g.Items),
				Enchantments: len(g.Enchantments),
				Consumables:  len(g.Consumables),
			}
			return nil
		})
		respondJSON(w, http.StatusOK, resp)
	}
}
