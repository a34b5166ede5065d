package refining

import (
	"math"

	"github.com/veylan/ForgeLedger_Go/internal/domain"
	"github.com/veylan/ForgeLedger_Go/internal/gamedata"
)

// TargetInput configures a target-mode refining calculation: the caller
// names how many refined units they want and the calculator derives the
// material bill, fees and profit. Available quantities are only used for
// the feasibility report; nothing is consumed from them.
type TargetInput struct {
	MaterialType       domain.MaterialType
	Tier               domain.Tier
	TargetQuantity     int
	RawPrice           float64
	RefinedPrice       float64
	LowerTierPrice     float64
	ReturnRate         float64
	MasteryLevel       int
	UseFocus           bool
	StationFeePercent  float64
	MarketTaxPercent   float64
	IsPremium          bool
	AvailableRaw       int
	AvailableLowerTier int
}

// TargetResult is the immutable outcome of a target-mode calculation.
type TargetResult struct {
	// Material requirements
	RawNeeded        int
	LowerTierNeeded  int
	CraftingAttempts int

	// Returns
	ExpectedOutput      int
	RawReturned         int
	LowerTierReturned   int
	EffectiveReturnRate float64

	// Costs
	RawCost       float64
	LowerTierCost float64
	StationFee    float64
	MarketTax     float64
	FocusCost     float64
	TotalCost     float64

	// Revenue and profit
	TotalRevenue           float64
	GrossProfit            float64
	NetProfit              float64
	ProfitPerUnit          float64
	ProfitPerFocus         float64
	ProfitMargin           float64
	ReturnedMaterialsValue float64

	// Feasibility
	CanCraftAll       bool
	MissingRaw        int
	MissingLowerTier  int
	MaxPossibleCrafts int
}

// CalculateTarget runs the target-mode refining calculator. Infeasible
// requests are not errors; the result reports shortfalls and the caller
// decides what to do with them.
func CalculateTarget(input TargetInput) (TargetResult, error) {
	req, err := gamedata.RequirementsFor(input.Tier)
	if err != nil {
		return TargetResult{}, err
	}
	focusPerCraft := gamedata.FocusCost(input.Tier)

	effRate := gamedata.EffectiveReturnRate(input.ReturnRate, input.MasteryLevel, input.UseFocus)

	rawNeeded := input.TargetQuantity * req.Raw
	lowerNeeded := 0
	if input.Tier > 2 {
		lowerNeeded = input.TargetQuantity * req.Refined
	}

	// Returns are floored; partial units are never given back
	rawReturned := floorReturn(rawNeeded, effRate)
	lowerReturned := floorReturn(lowerNeeded, effRate)

	netRawUsed := rawNeeded - rawReturned
	netLowerUsed := lowerNeeded - lowerReturned

	canCraftAll := input.AvailableRaw >= rawNeeded && input.AvailableLowerTier >= lowerNeeded
	missingRaw := max(0, rawNeeded-input.AvailableRaw)
	missingLower := max(0, lowerNeeded-input.AvailableLowerTier)

	maxFromRaw := input.AvailableRaw / req.Raw
	maxPossible := maxFromRaw
	if input.Tier > 2 {
		maxFromLower := input.AvailableLowerTier / req.Refined
		maxPossible = min(maxFromRaw, maxFromLower)
	}

	// Only net consumption is priced; returned materials are a wash
	rawCost := float64(netRawUsed) * input.RawPrice
	lowerCost := float64(netLowerUsed) * input.LowerTierPrice

	stationFee := (rawCost + lowerCost) * (input.StationFeePercent / 100)
	if input.IsPremium {
		stationFee *= PremiumFeeMultiplier
	}

	totalRevenue := float64(input.TargetQuantity) * input.RefinedPrice
	marketTax := totalRevenue * (input.MarketTaxPercent / 100)
	if input.IsPremium {
		marketTax *= PremiumFeeMultiplier
	}

	focusCost := 0.0
	if input.UseFocus {
		focusCost = float64(input.TargetQuantity * focusPerCraft)
	}

	totalCost := rawCost + lowerCost + stationFee + marketTax + focusCost

	grossProfit := totalRevenue - rawCost - lowerCost
	netProfit := totalRevenue - totalCost

	profitPerUnit := 0.0
	if input.TargetQuantity > 0 {
		profitPerUnit = netProfit / float64(input.TargetQuantity)
	}
	profitMargin := 0.0
	if totalRevenue > 0 {
		profitMargin = netProfit / totalRevenue * 100
	}
	profitPerFocus := 0.0
	if input.UseFocus && focusCost > 0 {
		profitPerFocus = netProfit / (focusCost / float64(focusPerCraft))
	}

	returnedValue := float64(rawReturned)*input.RawPrice + float64(lowerReturned)*input.LowerTierPrice

	return TargetResult{
		RawNeeded:        rawNeeded,
		LowerTierNeeded:  lowerNeeded,
		CraftingAttempts: input.TargetQuantity,

		ExpectedOutput:      input.TargetQuantity,
		RawReturned:         rawReturned,
		LowerTierReturned:   lowerReturned,
		EffectiveReturnRate: effRate,

		RawCost:       rawCost,
		LowerTierCost: lowerCost,
		StationFee:    stationFee,
		MarketTax:     marketTax,
		FocusCost:     focusCost,
		TotalCost:     totalCost,

		TotalRevenue:           totalRevenue,
		GrossProfit:            grossProfit,
		NetProfit:              netProfit,
		ProfitPerUnit:          profitPerUnit,
		ProfitPerFocus:         profitPerFocus,
		ProfitMargin:           profitMargin,
		ReturnedMaterialsValue: returnedValue,

		CanCraftAll:       canCraftAll,
		MissingRaw:        missingRaw,
		MissingLowerTier:  missingLower,
		MaxPossibleCrafts: maxPossible,
	}, nil
}

// floorReturn computes how many whole units come back from consuming
// amount at the given return rate.
func floorReturn(amount int, ratePercent float64) int {
	return int(math.Floor(float64(amount) * ratePercent / 100))
}
