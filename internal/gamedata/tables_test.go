package gamedata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veylan/ForgeLedger_Go/internal/domain"
)

func TestRequirementsFor_AllTiers(t *testing.T) {
	for tier := domain.TierMin; tier <= domain.TierMax; tier++ {
		req, err := RequirementsFor(tier)
		require.NoError(t, err, "tier %d", tier)
		assert.Greater(t, req.Raw, 0, "tier %d raw requirement", tier)

		if tier == 2 {
			assert.Equal(t, 0, req.Refined, "tier 2 needs no lower-tier input")
		} else {
			assert.GreaterOrEqual(t, req.Refined, 1, "tier %d refined requirement", tier)
		}
	}
}

func TestRequirementsFor_UnknownTier(t *testing.T) {
	_, err := RequirementsFor(1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownTier)

	_, err = RequirementsFor(9)
	assert.ErrorIs(t, err, domain.ErrUnknownTier)
}

func TestFocusCost(t *testing.T) {
	assert.Equal(t, 10, FocusCost(2))
	assert.Equal(t, 3, FocusCost(4))
	assert.Equal(t, 31, FocusCost(8))

	// Unknown tiers cost nothing rather than erroring
	assert.Equal(t, 0, FocusCost(1))
	assert.Equal(t, 0, FocusCost(99))
}

func TestMasteryBonus_StepFunction(t *testing.T) {
	assert.Equal(t, 0.0, MasteryBonus(0))
	assert.Equal(t, 0.0, MasteryBonus(19))
	assert.Equal(t, 4.0, MasteryBonus(20))
	assert.Equal(t, 4.0, MasteryBonus(39))
	assert.Equal(t, 8.0, MasteryBonus(40))
	assert.Equal(t, 20.0, MasteryBonus(100))
}

func TestMasteryBonus_Monotonic(t *testing.T) {
	prev := MasteryBonus(0)
	for level := 1; level <= 120; level++ {
		cur := MasteryBonus(level)
		assert.GreaterOrEqual(t, cur, prev, "level %d", level)
		prev = cur
	}
}

func TestEffectiveReturnRate(t *testing.T) {
	// Base rate alone
	assert.InDelta(t, 15.2, EffectiveReturnRate(15.2, 0, false), 1e-9)

	// Mastery stacks additively
	assert.InDelta(t, 19.2, EffectiveReturnRate(15.2, 20, false), 1e-9)

	// Focus adds a flat 15.3 points
	assert.InDelta(t, 30.5, EffectiveReturnRate(15.2, 0, true), 1e-9)

	// All together, no clamping even past 100%
	assert.InDelta(t, 122.0, EffectiveReturnRate(46.7, 300, true), 1e-9)
}

func TestNameRegistries(t *testing.T) {
	assert.Equal(t, "Iron Ore", RawName(domain.MaterialOre, 4))
	assert.Equal(t, "Steel Bar", RefinedName(domain.MaterialOre, 4))
	assert.Equal(t, "Ghost Hemp", RawName(domain.MaterialFiber, 8))
	assert.Equal(t, "Stiff Leather", RefinedName(domain.MaterialHide, 2))

	// Every material family covers every tier
	for _, mat := range domain.MaterialTypes {
		info, ok := MaterialInfoFor(mat)
		require.True(t, ok, "material %s", mat)
		assert.NotEmpty(t, info.Name)
		for tier := domain.TierMin; tier <= domain.TierMax; tier++ {
			assert.NotEmpty(t, RawName(mat, tier), "%s %s raw", mat, tier)
			assert.NotEmpty(t, RefinedName(mat, tier), "%s %s refined", mat, tier)
		}
	}

	assert.Empty(t, RawName("glass", 4))
}
