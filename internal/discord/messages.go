package discord

// Friendly message constants for Discord responses
const (
	// Economy
	MsgInsufficientFunds = "⚠️ **Not Enough Gold!**\nYou can't afford that right now."
	MsgNotPurchasable    = "🏪 **Not For Sale**\nThe shop doesn't stock that item."

	// Items & Inventory
	MsgItemNotFound       = "❓ **Item Not Found**\nMaybe check the spelling?"
	MsgNotEnoughItems     = "🎒 **Not Enough Items**\nYou don't have enough of that item."
	MsgMissingIngredients = "🧪 **Missing Ingredients**\nGather the rest of the recipe first."

	// Player
	MsgPlayerNotFound = "👤 **Player Not Found**\nHave you registered yet?"

	// Tables
	MsgTableNotFound = "🗺️ **Unknown Table**\nThat loot table doesn't exist."

	MsgGenericError = "❌ Something went wrong."
)
