package refining

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veylan/ForgeLedger_Go/internal/domain"
)

func baseChainInput() ChainInput {
	return ChainInput{
		MaterialType:        domain.MaterialOre,
		StartTier:           3,
		EndTier:             5,
		OwnedStartMaterials: 100,
		OwnedRaw: map[domain.Tier]int{
			4: 1000,
			5: 1000,
		},
		RawPrices: map[domain.Tier]float64{
			4: 100,
			5: 150,
		},
		RefinedPrices: map[domain.Tier]float64{
			3: 200,
			4: 300,
			5: 500,
		},
		ReturnRate: 15.2,
	}
}

func TestCalculateChain_InvalidRange(t *testing.T) {
	input := baseChainInput()

	input.StartTier = 5
	input.EndTier = 5
	_, err := CalculateChain(input)
	assert.ErrorIs(t, err, domain.ErrInvalidTierRange)

	input.StartTier = 6
	_, err = CalculateChain(input)
	assert.ErrorIs(t, err, domain.ErrInvalidTierRange)
}

func TestCalculateChain_TwoStepProgression(t *testing.T) {
	result, err := CalculateChain(baseChainInput())
	require.NoError(t, err)

	require.Len(t, result.Steps, 2)
	assert.Equal(t, 2, result.TotalTiers)

	// Step 1: T3 -> T4, needs 2 raw + 1 refined per craft.
	// 100 T3 refined and 1000 T4 raw allow 100 crafts.
	step1 := result.Steps[0]
	assert.Equal(t, domain.Tier(3), step1.FromTier)
	assert.Equal(t, domain.Tier(4), step1.ToTier)
	assert.Equal(t, 100, step1.RefinedProduced)
	assert.Equal(t, 200, step1.RawUsed)
	assert.Equal(t, 100, step1.LowerTierUsed)
	assert.Equal(t, 30, step1.RawReturned)       // floor(200*0.152)
	assert.Equal(t, 15, step1.LowerTierReturned) // floor(100*0.152)

	// Step 2: T4 -> T5, needs 3 raw + 1 refined per craft.
	// 100 produced T4 refined and 1000 T5 raw allow 100 crafts.
	step2 := result.Steps[1]
	assert.Equal(t, domain.Tier(5), step2.ToTier)
	assert.Equal(t, 100, step2.RefinedProduced)
	assert.Equal(t, 300, step2.RawUsed)

	assert.Equal(t, 100, result.FinalRefinedProduced)
	assert.InDelta(t, 100*500, result.TotalRevenue, 1e-9)

	// Pool bookkeeping: step 1 leftovers feed step 2
	assert.Equal(t, 1000-200+30, result.RemainingRaw[4])
	assert.Equal(t, 1000-300+45, result.RemainingRaw[5]) // floor(300*0.152)=45
	assert.Equal(t, 15, result.RemainingRefined[3])
	assert.Equal(t, 15, result.RemainingRefined[4]) // 100 produced - 100 used + 15 returned
	assert.Equal(t, 100, result.RemainingRefined[5])
}

func TestCalculateChain_ZeroCraftableStepContinues(t *testing.T) {
	input := baseChainInput()
	input.OwnedRaw[4] = 0 // starves the T3 -> T4 step

	result, err := CalculateChain(input)
	require.NoError(t, err)

	require.Len(t, result.Steps, 2)
	assert.Zero(t, result.Steps[0].RefinedProduced)
	assert.Zero(t, result.Steps[1].RefinedProduced)
	assert.Zero(t, result.FinalRefinedProduced)
	assert.Zero(t, result.TotalRevenue)

	// The starved step leaves its input pools untouched
	assert.Equal(t, 100, result.RemainingRefined[3])
}

func TestCalculateChain_ProfitAggregation(t *testing.T) {
	input := baseChainInput()
	input.StationFeePercent = 5
	input.MarketTaxPercent = 4

	result, err := CalculateChain(input)
	require.NoError(t, err)

	var wantCosts, wantReturned, wantFees float64
	for _, step := range result.Steps {
		wantCosts += step.TotalInputCost
		wantReturned += step.ReturnedMaterialsValue
		wantFees += step.StationFee
	}
	assert.InDelta(t, wantCosts, result.TotalCosts, 1e-9)
	assert.InDelta(t, wantReturned, result.TotalReturnedValue, 1e-9)
	assert.InDelta(t, wantFees, result.TotalStationFees, 1e-9)

	wantGross := result.TotalRevenue + wantReturned - wantCosts
	assert.InDelta(t, wantGross, result.GrossProfit, 1e-9)
	assert.InDelta(t, wantGross-wantFees-result.MarketTax, result.NetProfit, 1e-9)
}

func TestCalculateChain_PremiumHalvesFees(t *testing.T) {
	input := baseChainInput()
	input.StationFeePercent = 5
	input.MarketTaxPercent = 4

	normal, err := CalculateChain(input)
	require.NoError(t, err)

	input.IsPremium = true
	premium, err := CalculateChain(input)
	require.NoError(t, err)

	assert.InDelta(t, normal.TotalStationFees/2, premium.TotalStationFees, 1e-9)
	assert.InDelta(t, normal.MarketTax/2, premium.MarketTax, 1e-9)
}

func TestCalculateChain_SingleBatchPerTier(t *testing.T) {
	// The chain runs one conversion batch per tier transition: leftover
	// returns are not re-fed within the tier even when they could unlock
	// further crafts. 10 T3 refined + high return rate would let an
	// exhaustive loop squeeze out an 11th craft; the chain must not.
	input := ChainInput{
		MaterialType:        domain.MaterialOre,
		StartTier:           3,
		EndTier:             4,
		OwnedStartMaterials: 10,
		OwnedRaw:            map[domain.Tier]int{4: 1000},
		RawPrices:           map[domain.Tier]float64{4: 100},
		RefinedPrices:       map[domain.Tier]float64{3: 200, 4: 300},
		ReturnRate:          90,
	}
	result, err := CalculateChain(input)
	require.NoError(t, err)

	require.Len(t, result.Steps, 1)
	assert.Equal(t, 10, result.Steps[0].RefinedProduced)
	assert.Equal(t, 9, result.RemainingRefined[3]) // floor(10*0.9) returned, untouched
}

func TestCalculateChain_FocusTracking(t *testing.T) {
	input := baseChainInput()
	input.UseFocus = true

	result, err := CalculateChain(input)
	require.NoError(t, err)

	// T4 costs 3 focus per craft, T5 costs 6
	want := result.Steps[0].RefinedProduced*3 + result.Steps[1].RefinedProduced*6
	assert.Equal(t, want, result.TotalFocusUsed)
}

func TestCalculateChain_EfficiencyMetrics(t *testing.T) {
	result, err := CalculateChain(baseChainInput())
	require.NoError(t, err)

	totalRaw := 0
	for _, used := range result.TotalRawConsumed {
		totalRaw += used
	}
	require.Positive(t, totalRaw)
	assert.InDelta(t, float64(result.FinalRefinedProduced)/float64(totalRaw)*100,
		result.MaterialEfficiency, 1e-9)
	assert.InDelta(t, result.NetProfit/result.TotalCosts*100,
		result.EconomicEfficiency, 1e-9)
}
