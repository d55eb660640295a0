package crafting

// Log messages
const (
	LogMsgCraftCalled   = "Craft called"
	LogMsgItemCrafted   = "Item crafted"
	LogMsgEnchantCalled = "Enchant called"
	LogMsgItemEnchanted = "Item enchanted"
	LogMsgEffectRolled  = "Functional effect rolled"
	LogMsgRollsStopped  = "Effect rolling stopped"
)

// Effect-roll stop reasons reported on craft results
const (
	StopReasonSlotCap  = "slot cap reached"
	StopReasonFunds    = "insufficient funds"
	StopReasonComplete = "requested rolls complete"
	StopReasonNoPool   = "no functional effects defined"
)
