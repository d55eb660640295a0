package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lootledger/engine/internal/catalog"
	"github.com/lootledger/engine/internal/logger"
)

// canonicalItemName rewrites a user-entered item name to its catalog
// spelling through the resolver's cache. Unknown names pass through
// untouched so the service layer reports the miss with its own error.
func canonicalItemName(resolver *catalog.Resolver, name string) string {
	if canonical, ok := resolver.ItemName(name); ok {
		return canonical
	}
	return name
}

// decodeRequest decodes and validates a JSON request body. On failure
// it writes the error response and returns false; handlers just return.
func decodeRequest(w http.ResponseWriter, r *http.Request, target interface{}) bool {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		log.Warn("Failed to decode request body", "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return false
	}
	if err := GetValidator().ValidateStruct(target); err != nil {
		log.Warn("Request validation failed", "error", err)
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   ErrMsgValidationFailed,
			Details: FormatValidationError(err),
		})
		return false
	}
	return true
}

// queryParam reads a required query parameter. On absence it writes the
// error response and returns false.
func queryParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	value := r.URL.Query().Get(name)
	if value == "" {
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, name))
		return "", false
	}
	return value, true
}
