package store

// Log messages
const (
	LogMsgSaveMigrated  = "Save migrated to current version"
	LogMsgSchemaUpdated = "Database schema migrated"
)
