package refining

import (
	"fmt"

	"github.com/veylan/ForgeLedger_Go/internal/domain"
	"github.com/veylan/ForgeLedger_Go/internal/gamedata"
)

// ChainInput configures a multi-tier refining chain: the refined output of
// each tier feeds the next tier as its lower-tier input.
type ChainInput struct {
	MaterialType        domain.MaterialType
	StartTier           domain.Tier
	EndTier             domain.Tier
	OwnedStartMaterials int                     // startTier refined goods on hand
	OwnedRaw            map[domain.Tier]int     // raw materials per tier
	RawPrices           map[domain.Tier]float64 // raw prices per tier
	RefinedPrices       map[domain.Tier]float64 // refined prices per tier
	ReturnRate          float64
	MasteryLevel        int
	UseFocus            bool
	StationFeePercent   float64
	MarketTaxPercent    float64
	IsPremium           bool
}

// ChainStep records one tier transition. Each transition runs a single
// conversion batch; returns land back in the pools but are not re-fed
// within the same step.
type ChainStep struct {
	FromTier domain.Tier
	ToTier   domain.Tier

	// Materials
	StartingRefined   int
	RawUsed           int
	LowerTierUsed     int
	RefinedProduced   int
	RawReturned       int
	LowerTierReturned int

	// Economics, informational per step
	RawCost                float64
	LowerTierCost          float64
	TotalInputCost         float64
	ReturnedMaterialsValue float64
	NetCost                float64
	OutputValue            float64
	StepProfit             float64

	FocusUsed           int
	StationFee          float64
	EffectiveReturnRate float64
}

// ChainResult is the immutable outcome of a multi-tier chain calculation.
type ChainResult struct {
	MaterialType domain.MaterialType
	StartTier    domain.Tier
	EndTier      domain.Tier
	TotalTiers   int

	Steps []ChainStep

	FinalRefinedProduced int
	TotalRawConsumed     map[domain.Tier]int
	TotalRawReturned     map[domain.Tier]int
	TotalCosts           float64
	TotalRevenue         float64
	TotalReturnedValue   float64
	GrossProfit          float64
	TotalStationFees     float64
	TotalFocusUsed       int
	MarketTax            float64
	NetProfit            float64
	ProfitPerUnit        float64
	ProfitMargin         float64

	// Efficiency
	MaterialEfficiency float64 // % of raw input that became final product
	EconomicEfficiency float64 // profit per silver invested

	// Leftovers
	RemainingRaw     map[domain.Tier]int
	RemainingRefined map[domain.Tier]int
}

// CalculateChain runs the multi-tier chain calculator over the inclusive
// range (startTier, endTier]. A step that cannot craft anything records
// zero output and the chain moves on; only a bad tier range is an error.
func CalculateChain(input ChainInput) (ChainResult, error) {
	if input.StartTier >= input.EndTier {
		return ChainResult{}, fmt.Errorf("%w: %s >= %s",
			domain.ErrInvalidTierRange, input.StartTier, input.EndTier)
	}
	if !input.StartTier.IsValid() || !input.EndTier.IsValid() {
		return ChainResult{}, fmt.Errorf("%w: %s-%s",
			domain.ErrUnknownTier, input.StartTier, input.EndTier)
	}

	rawPool := make(map[domain.Tier]int, len(input.OwnedRaw))
	for tier, qty := range input.OwnedRaw {
		rawPool[tier] = qty
	}
	refinedPool := make(map[domain.Tier]int)
	refinedPool[input.StartTier] = input.OwnedStartMaterials

	totalRawConsumed := make(map[domain.Tier]int)
	totalRawReturned := make(map[domain.Tier]int)

	var (
		steps              []ChainStep
		totalCosts         float64
		totalReturnedValue float64
		totalStationFees   float64
		totalFocusUsed     int
	)

	for tier := input.StartTier + 1; tier <= input.EndTier; tier++ {
		step, err := chainStep(input, tier, refinedPool[tier-1], rawPool[tier])
		if err != nil {
			return ChainResult{}, err
		}
		steps = append(steps, step)

		refinedPool[tier-1] += step.LowerTierReturned - step.LowerTierUsed
		refinedPool[tier] += step.RefinedProduced
		rawPool[tier] += step.RawReturned - step.RawUsed

		totalRawConsumed[tier] += step.RawUsed
		totalRawReturned[tier] += step.RawReturned
		totalCosts += step.TotalInputCost
		totalReturnedValue += step.ReturnedMaterialsValue
		totalStationFees += step.StationFee
		totalFocusUsed += step.FocusUsed
	}

	finalProduced := refinedPool[input.EndTier]
	totalRevenue := float64(finalProduced) * input.RefinedPrices[input.EndTier]

	marketTax := totalRevenue * (input.MarketTaxPercent / 100)
	if input.IsPremium {
		marketTax *= PremiumFeeMultiplier
	}

	grossProfit := totalRevenue + totalReturnedValue - totalCosts
	netProfit := grossProfit - totalStationFees - marketTax

	profitPerUnit := 0.0
	if finalProduced > 0 {
		profitPerUnit = netProfit / float64(finalProduced)
	}
	profitMargin := 0.0
	if totalRevenue > 0 {
		profitMargin = netProfit / totalRevenue * 100
	}

	totalRawUsed := 0
	for _, amount := range totalRawConsumed {
		totalRawUsed += amount
	}
	materialEfficiency := 0.0
	if totalRawUsed > 0 {
		materialEfficiency = float64(finalProduced) / float64(totalRawUsed) * 100
	}
	economicEfficiency := 0.0
	if totalCosts > 0 {
		economicEfficiency = netProfit / totalCosts * 100
	}

	return ChainResult{
		MaterialType: input.MaterialType,
		StartTier:    input.StartTier,
		EndTier:      input.EndTier,
		TotalTiers:   int(input.EndTier - input.StartTier),

		Steps: steps,

		FinalRefinedProduced: finalProduced,
		TotalRawConsumed:     totalRawConsumed,
		TotalRawReturned:     totalRawReturned,
		TotalCosts:           totalCosts,
		TotalRevenue:         totalRevenue,
		TotalReturnedValue:   totalReturnedValue,
		GrossProfit:          grossProfit,
		TotalStationFees:     totalStationFees,
		TotalFocusUsed:       totalFocusUsed,
		MarketTax:            marketTax,
		NetProfit:            netProfit,
		ProfitPerUnit:        profitPerUnit,
		ProfitMargin:         profitMargin,

		MaterialEfficiency: materialEfficiency,
		EconomicEfficiency: economicEfficiency,

		RemainingRaw:     rawPool,
		RemainingRefined: refinedPool,
	}, nil
}

// chainStep performs the single conversion batch for one tier transition.
// Unlike the exhaustion calculator it never re-feeds returns within the
// tier; doing so would change the chain's numbers.
func chainStep(input ChainInput, toTier domain.Tier, availableRefined, availableRaw int) (ChainStep, error) {
	req, err := gamedata.RequirementsFor(toTier)
	if err != nil {
		return ChainStep{}, err
	}

	effRate := gamedata.EffectiveReturnRate(input.ReturnRate, input.MasteryLevel, input.UseFocus)

	step := ChainStep{
		FromTier:            toTier - 1,
		ToTier:              toTier,
		StartingRefined:     availableRefined,
		EffectiveReturnRate: effRate,
	}

	craftable := min(availableRaw/req.Raw, availableRefined/req.Refined)
	if craftable == 0 {
		return step, nil
	}

	rawPrice := input.RawPrices[toTier]
	refinedPriceFrom := input.RefinedPrices[toTier-1]
	refinedPriceTo := input.RefinedPrices[toTier]

	step.RawUsed = craftable * req.Raw
	step.LowerTierUsed = craftable * req.Refined
	step.RawReturned = floorReturn(step.RawUsed, effRate)
	step.LowerTierReturned = floorReturn(step.LowerTierUsed, effRate)
	step.RefinedProduced = craftable

	step.RawCost = float64(step.RawUsed) * rawPrice
	step.LowerTierCost = float64(step.LowerTierUsed) * refinedPriceFrom
	step.TotalInputCost = step.RawCost + step.LowerTierCost
	step.ReturnedMaterialsValue = float64(step.RawReturned)*rawPrice +
		float64(step.LowerTierReturned)*refinedPriceFrom

	step.StationFee = step.TotalInputCost * (input.StationFeePercent / 100)
	if input.IsPremium {
		step.StationFee *= PremiumFeeMultiplier
	}

	step.NetCost = step.TotalInputCost - step.ReturnedMaterialsValue + step.StationFee
	step.OutputValue = float64(step.RefinedProduced) * refinedPriceTo
	step.StepProfit = step.OutputValue - step.NetCost

	if input.UseFocus {
		step.FocusUsed = craftable * gamedata.FocusCost(toTier)
	}

	return step, nil
}
