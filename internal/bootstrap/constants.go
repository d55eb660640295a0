package bootstrap

// Log messages for application startup and shutdown
const (
	LogMsgLoggingInitialized   = "Logging initialized"
	LogMsgStartingEngine       = "Starting loot ledger engine"
	LogMsgConfigLoaded         = "Configuration loaded"
	LogMsgSaveLoaded           = "Saved state loaded"
	LogMsgFreshWorldSeeded     = "No save found, seeded fresh world from content pack"
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgShutdownComplete     = "Shutdown complete"
)
