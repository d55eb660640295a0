package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/lootledger/engine/internal/domain"
	"github.com/lootledger/engine/internal/store"
)

// SuccessResponse is a simple successful operation message.
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the error payload every failure returns.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError maps an engine error to an HTTP response. The
// sentinel taxonomy carries the user-facing text; anything unmatched is
// a server fault and stays generic.
func respondServiceError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		slog.Error("Unhandled service error", "error", err)
		respondError(w, status, ErrMsgGenericServerError)
		return
	}

	var missing *domain.MissingIngredientsError
	if errors.As(err, &missing) {
		details := make(map[string]string, len(missing.Shortfalls))
		for _, s := range missing.Shortfalls {
			details[s.Name] = missingDetail(s)
		}
		respondJSON(w, status, ErrorResponse{Error: domain.ErrMsgMissingIngredients, Details: details})
		return
	}
	respondError(w, status, err.Error())
}

func missingDetail(s domain.IngredientShortfall) string {
	return fmt.Sprintf("have %d, need %d", s.Have, s.Need)
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrPlayerNotFound),
		errors.Is(err, domain.ErrTableNotFound),
		errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrRecipeNotFound),
		errors.Is(err, domain.ErrEnchantNotFound),
		errors.Is(err, domain.ErrConsumableNotFound),
		errors.Is(err, store.ErrNoSave):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrInsufficientQuantity),
		errors.Is(err, domain.ErrMissingIngredients),
		errors.Is(err, domain.ErrEmptyTable),
		errors.Is(err, domain.ErrIncompatibleEnchant),
		errors.Is(err, domain.ErrNotEquippable),
		errors.Is(err, domain.ErrNotUpgrade),
		errors.Is(err, domain.ErrNotConsumable),
		errors.Is(err, domain.ErrNotPurchasable):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidIndex),
		errors.Is(err, domain.ErrInvalidConfiguration):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrDuplicatePlayer),
		errors.Is(err, domain.ErrDuplicateItem),
		errors.Is(err, domain.ErrDuplicateTable):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
