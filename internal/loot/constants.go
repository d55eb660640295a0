package loot

// Log messages
const (
	LogMsgDrawCalled       = "Draw called"
	LogMsgDrawComplete     = "Draw complete"
	LogMsgTicketTableGone  = "Free draw ticket dropped: bound table no longer exists"
	LogMsgTrashPoolEmptied = "Trash-to-treasure exclusion skipped: table has a single entry"
)

// Warning texts surfaced in draw results
const (
	WarnTicketTableGone    = "free draw ticket dropped: its table no longer exists"
	WarnTrashSingleEntry   = "trash-to-treasure had no effect: table has a single entry"
	WarnPaidDrawSkipped    = "paid draw skipped: insufficient funds after free draws"
)
