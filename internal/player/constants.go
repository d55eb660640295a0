package player

// Log messages
const (
	LogMsgRegisterCalled   = "RegisterPlayer called"
	LogMsgPlayerRegistered = "Player registered"
	LogMsgPlayerRemoved    = "Player removed"
	LogMsgItemEquipped     = "Item equipped"
	LogMsgItemUnequipped   = "Item unequipped"
	LogMsgUpgradeConsumed  = "Upgrade consumed"
	LogMsgConsumableUsed   = "Consumable used"
	LogMsgCurrencyGranted  = "Currency granted"
	LogMsgCurrencyTaken    = "Currency taken"
	LogMsgItemGiven        = "Item given"
)
