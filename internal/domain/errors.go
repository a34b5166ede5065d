package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Tier/range errors
	ErrMsgUnknownTier      = "unknown tier"
	ErrMsgInvalidTierRange = "start tier must be lower than end tier"

	// Material errors
	ErrMsgUnknownMaterial = "unknown material type"

	// Recipe errors
	ErrMsgRecipeNotFound = "recipe not found"
	ErrMsgInvalidRecipe  = "invalid recipe"

	// Session errors
	ErrMsgSessionNotFound = "session not found"
	ErrMsgInvalidSession  = "invalid session"

	// Price lookup errors
	ErrMsgPriceUnavailable = "price unavailable"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Tier/range errors
	ErrUnknownTier      = errors.New(ErrMsgUnknownTier)
	ErrInvalidTierRange = errors.New(ErrMsgInvalidTierRange)

	// Material errors
	ErrUnknownMaterial = errors.New(ErrMsgUnknownMaterial)

	// Recipe errors
	ErrRecipeNotFound = errors.New(ErrMsgRecipeNotFound)
	ErrInvalidRecipe  = errors.New(ErrMsgInvalidRecipe)

	// Session errors
	ErrSessionNotFound = errors.New(ErrMsgSessionNotFound)
	ErrInvalidSession  = errors.New(ErrMsgInvalidSession)

	// Price lookup errors
	ErrPriceUnavailable = errors.New(ErrMsgPriceUnavailable)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
