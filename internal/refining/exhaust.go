package refining

import (
	"github.com/veylan/ForgeLedger_Go/internal/domain"
	"github.com/veylan/ForgeLedger_Go/internal/gamedata"
)

// ExhaustInput configures an owned-resources calculation: no target
// quantity, the calculator converts until the pools run dry.
type ExhaustInput struct {
	MaterialType      domain.MaterialType
	Tier              domain.Tier
	OwnedRaw          int
	OwnedLowerTier    int
	RawPrice          float64
	RefinedPrice      float64
	LowerTierPrice    float64
	ReturnRate        float64
	MasteryLevel      int
	UseFocus          bool
	StationFeePercent float64
	IsPremium         bool
}

// Inventory is a snapshot of material pools after refining.
type Inventory struct {
	Raw       int
	LowerTier int
	Refined   int
}

// ExhaustResult is the immutable outcome of an owned-resources calculation.
type ExhaustResult struct {
	// Production
	RefinementsMade int
	Iterations      int

	// Materials consumed and returned across all passes
	RawUsed           int
	LowerTierUsed     int
	RawReturned       int
	LowerTierReturned int

	// Final pools
	FinalInventory Inventory

	// Financial analysis. MaterialCost prices the entire owned pools as the
	// cost basis (opportunity cost), not just what was consumed.
	FinalInventoryValue float64
	MaterialCost        float64
	StationFee          float64
	NetProfit           float64

	FocusUsed           int
	EffectiveReturnRate float64
}

// CalculateExhaust runs the owned-resources refining calculator. Each pass
// converts as many units as the current pools allow, then feeds the floored
// returns back in; per-pass flooring means later passes can unlock crafts
// the first pass could not. The loop stops when a pass can produce nothing,
// or at MaxExhaustionIterations for return rates that keep pools growing.
func CalculateExhaust(input ExhaustInput) (ExhaustResult, error) {
	req, err := gamedata.RequirementsFor(input.Tier)
	if err != nil {
		return ExhaustResult{}, err
	}

	effRate := gamedata.EffectiveReturnRate(input.ReturnRate, input.MasteryLevel, input.UseFocus)

	rawPool := input.OwnedRaw
	lowerPool := input.OwnedLowerTier

	var (
		produced      int
		iterations    int
		rawUsed       int
		lowerUsed     int
		rawReturned   int
		lowerReturned int
	)

	for iterations < MaxExhaustionIterations {
		craftable := rawPool / req.Raw
		if input.Tier > 2 {
			craftable = min(craftable, lowerPool/req.Refined)
		}
		if craftable == 0 {
			break
		}

		consumedRaw := craftable * req.Raw
		consumedLower := 0
		if input.Tier > 2 {
			consumedLower = craftable * req.Refined
		}

		returnedRaw := floorReturn(consumedRaw, effRate)
		returnedLower := floorReturn(consumedLower, effRate)

		rawPool += returnedRaw - consumedRaw
		lowerPool += returnedLower - consumedLower

		produced += craftable
		rawUsed += consumedRaw
		lowerUsed += consumedLower
		rawReturned += returnedRaw
		lowerReturned += returnedLower
		iterations++
	}

	// Cost basis is the full owned pools regardless of consumption
	materialCost := float64(input.OwnedRaw)*input.RawPrice +
		float64(input.OwnedLowerTier)*input.LowerTierPrice

	// The station charges on what was actually burned, net of returns
	netConsumedCost := float64(rawUsed-rawReturned)*input.RawPrice +
		float64(lowerUsed-lowerReturned)*input.LowerTierPrice
	stationFee := netConsumedCost * (input.StationFeePercent / 100)
	if input.IsPremium {
		stationFee *= PremiumFeeMultiplier
	}

	inventoryValue := float64(rawPool)*input.RawPrice +
		float64(lowerPool)*input.LowerTierPrice +
		float64(produced)*input.RefinedPrice

	netProfit := inventoryValue - materialCost - stationFee

	focusUsed := 0
	if input.UseFocus {
		focusUsed = produced * gamedata.FocusCost(input.Tier)
	}

	return ExhaustResult{
		RefinementsMade: produced,
		Iterations:      iterations,

		RawUsed:           rawUsed,
		LowerTierUsed:     lowerUsed,
		RawReturned:       rawReturned,
		LowerTierReturned: lowerReturned,

		FinalInventory: Inventory{
			Raw:       rawPool,
			LowerTier: lowerPool,
			Refined:   produced,
		},

		FinalInventoryValue: inventoryValue,
		MaterialCost:        materialCost,
		StationFee:          stationFee,
		NetProfit:           netProfit,

		FocusUsed:           focusUsed,
		EffectiveReturnRate: effRate,
	}, nil
}
