package handler

// Generic HTTP error messages for client responses. These intentionally
// do not expose internal error details.
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgInvalidRequest     = "Invalid request body"
	ErrMsgValidationFailed   = "Invalid request"
	ErrMsgMissingQueryParam  = "Missing %s query parameter"
	ErrMsgSaveFailed         = "Failed to save game state"
)

// Query parameter names
const (
	ParamPlayer = "player"
	ParamTable  = "table"
	ParamItem   = "item"
)
