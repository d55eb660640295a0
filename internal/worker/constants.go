package worker

// Log messages for the autosave worker
const (
	LogMsgAutosaveStarted          = "Autosave worker started"
	LogMsgAutosaveCompleted        = "Autosave completed"
	LogMsgAutosaveFailed           = "Autosave failed"
	LogMsgAutosaveShuttingDown     = "Shutting down autosave worker"
	LogMsgAutosaveShutdownComplete = "Autosave worker shutdown complete"
	LogMsgAutosaveShutdownTimeout  = "Autosave worker shutdown timeout"
)
