package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"

	// Calculation error messages
	ErrMsgRefiningCalcFailed  = "Failed to calculate refining profit"
	ErrMsgResourcesCalcFailed = "Failed to calculate resource exhaustion"
	ErrMsgEquipmentCalcFailed = "Failed to calculate equipment profit"
	ErrMsgMultiTierCalcFailed = "Failed to calculate multi-tier chain"

	// Session error messages
	ErrMsgSaveSessionFailed   = "Failed to save calculation"
	ErrMsgGetSessionFailed    = "Failed to retrieve calculation"
	ErrMsgListSessionsFailed  = "Failed to list calculations"
	ErrMsgUpdateSessionFailed = "Failed to update calculation"
	ErrMsgDeleteSessionFailed = "Failed to delete calculation"
	ErrMsgSearchFailed        = "Failed to perform search"
	ErrMsgInvalidSessionID    = "Invalid session ID"

	// Price error messages
	ErrMsgGetPricesFailed = "Failed to fetch market prices"

	// Parameter validation error messages
	ErrMsgInvalidLimit = "Invalid limit parameter"
	ErrMsgInvalidTier  = "Invalid tier parameter"
)

// Success messages for API responses
// These are user-facing success messages returned in JSON responses
const (
	MsgSessionSavedSuccess   = "Calculation saved successfully"
	MsgSessionUpdatedSuccess = "Calculation updated successfully"
	MsgSessionDeletedSuccess = "Calculation deleted successfully"
)
