package refining

const (
	// MaxExhaustionIterations bounds the owned-resources feedback loop.
	// Return rates at or above 100% keep pools from shrinking; the cap is
	// the only thing that stops such inputs, so it must never be removed.
	MaxExhaustionIterations = 1000

	// PremiumFeeMultiplier halves station fees and market taxes for
	// premium accounts.
	PremiumFeeMultiplier = 0.5
)
