package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error message constants for consistent error text across services
const (
	ErrMsgPlayerNotFound      = "player not found"
	ErrMsgTableNotFound       = "loot table not found"
	ErrMsgItemNotFound        = "item not found"
	ErrMsgRecipeNotFound      = "item is not craftable"
	ErrMsgEnchantNotFound     = "enchantment not found"
	ErrMsgConsumableNotFound  = "consumable definition not found"
	ErrMsgInsufficientFunds   = "insufficient funds"
	ErrMsgInsufficientQty     = "insufficient quantity"
	ErrMsgMissingIngredients  = "missing ingredients"
	ErrMsgInvalidIndex        = "invalid index"
	ErrMsgInvalidConfig       = "invalid configuration"
	ErrMsgEmptyTable          = "table has no items"
	ErrMsgIncompatibleEnchant = "enchantment incompatible with item"
	ErrMsgNotEquippable       = "item cannot be equipped"
	ErrMsgNotUpgrade          = "item is not an upgrade"
	ErrMsgNotConsumable       = "item is not consumable"
	ErrMsgNotPurchasable      = "item is not purchasable"
	ErrMsgDuplicatePlayer     = "player already exists"
	ErrMsgDuplicateItem       = "item already exists"
	ErrMsgDuplicateTable      = "table already exists"
)

// Sentinel errors for the engine's caller-facing failure taxonomy. All
// are expected, recoverable conditions; none indicate engine corruption.
var (
	ErrPlayerNotFound       = errors.New(ErrMsgPlayerNotFound)
	ErrTableNotFound        = errors.New(ErrMsgTableNotFound)
	ErrItemNotFound         = errors.New(ErrMsgItemNotFound)
	ErrRecipeNotFound       = errors.New(ErrMsgRecipeNotFound)
	ErrEnchantNotFound      = errors.New(ErrMsgEnchantNotFound)
	ErrConsumableNotFound   = errors.New(ErrMsgConsumableNotFound)
	ErrInsufficientFunds    = errors.New(ErrMsgInsufficientFunds)
	ErrInsufficientQuantity = errors.New(ErrMsgInsufficientQty)
	ErrMissingIngredients   = errors.New(ErrMsgMissingIngredients)
	ErrInvalidIndex         = errors.New(ErrMsgInvalidIndex)
	ErrInvalidConfiguration = errors.New(ErrMsgInvalidConfig)
	ErrEmptyTable           = errors.New(ErrMsgEmptyTable)
	ErrIncompatibleEnchant  = errors.New(ErrMsgIncompatibleEnchant)
	ErrNotEquippable        = errors.New(ErrMsgNotEquippable)
	ErrNotUpgrade           = errors.New(ErrMsgNotUpgrade)
	ErrNotConsumable        = errors.New(ErrMsgNotConsumable)
	ErrNotPurchasable       = errors.New(ErrMsgNotPurchasable)
	ErrDuplicatePlayer      = errors.New(ErrMsgDuplicatePlayer)
	ErrDuplicateItem        = errors.New(ErrMsgDuplicateItem)
	ErrDuplicateTable       = errors.New(ErrMsgDuplicateTable)
)

// IngredientShortfall records one ingredient the player lacks.
type IngredientShortfall struct {
	Name string `json:"name"`
	Have int    `json:"have"`
	Need int    `json:"need"`
}

// MissingIngredientsError reports every shortfall found during craft
// validation. It matches ErrMissingIngredients under errors.Is.
type MissingIngredientsError struct {
	Shortfalls []IngredientShortfall
}

func (e *MissingIngredientsError) Error() string {
	parts := make([]string, len(e.Shortfalls))
	for i, s := range e.Shortfalls {
		parts[i] = fmt.Sprintf("%s (%d/%d)", s.Name, s.Have, s.Need)
	}
	return ErrMsgMissingIngredients + ": " + strings.Join(parts, ", ")
}

func (e *MissingIngredientsError) Is(target error) bool {
	return target == ErrMissingIngredients
}
