package session

// Validation limits for saved calculations
const (
	MaxNameLength = 100

	DefaultListLimit = 50
	MaxListLimit     = 200
)

// Log messages - service events
const (
	LogMsgSessionSaved   = "Calculation session saved"
	LogMsgSessionUpdated = "Calculation session updated"
	LogMsgSessionDeleted = "Calculation session deleted"
)

// Log field keys - structured logging fields
const (
	LogFieldSessionID = "sessionID"
	LogFieldName      = "name"
	LogFieldMode      = "mode"
)
