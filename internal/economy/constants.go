package economy

// Log messages
const (
	LogMsgSellCalled = "Sell called"
	LogMsgItemsSold  = "Items sold"
	LogMsgBuyCalled  = "Buy called"
	LogMsgItemBought = "Item bought"
	LogMsgShopListed = "Shop listed"
)
