package gamedata

import (
	"fmt"
	"math"

	"github.com/veylan/ForgeLedger_Go/internal/domain"
)

// Requirements describes what one refining craft at a given tier consumes.
type Requirements struct {
	Raw     int // raw materials of the same tier
	Refined int // refined materials of the tier below (0 at tier 2)
}

// tierRequirements holds per-tier refining inputs. Tier 2 is the base of
// the chain and consumes no lower-tier refined goods.
var tierRequirements = map[domain.Tier]Requirements{
	2: {Refined: 0, Raw: 2},
	3: {Refined: 1, Raw: 2},
	4: {Refined: 1, Raw: 2},
	5: {Refined: 1, Raw: 3},
	6: {Refined: 1, Raw: 4},
	7: {Refined: 1, Raw: 5},
	8: {Refined: 1, Raw: 6},
}

// focusCosts holds focus points consumed per craft at max specialization.
var focusCosts = map[domain.Tier]int{
	2: 10,
	3: 24,
	4: 3,
	5: 6,
	6: 10,
	7: 18,
	8: 31,
}

// Return-rate constants for refining stations.
const (
	// ReturnRateBonusCity is the rate in a city with a bonus for the material.
	ReturnRateBonusCity = 36.7
	// ReturnRateBonusCityRefiningDay stacks the refining-day bonus on top.
	ReturnRateBonusCityRefiningDay = 46.7
	// ReturnRateNonBonusCity is the baseline rate everywhere else.
	ReturnRateNonBonusCity = 15.2
	// ReturnRateFocusFixed is the flat rate equipment crafting uses with focus.
	ReturnRateFocusFixed = 53.9

	// FocusReturnBonus is the additive refining bonus when focus is enabled.
	FocusReturnBonus = 15.3
	// MasteryBonusPer20Levels is the additive bonus per 20 mastery levels.
	MasteryBonusPer20Levels = 4.0
)

// RequirementsFor returns the refining inputs for one craft at the tier.
func RequirementsFor(tier domain.Tier) (Requirements, error) {
	req, ok := tierRequirements[tier]
	if !ok {
		return Requirements{}, fmt.Errorf("%w: %d", domain.ErrUnknownTier, int(tier))
	}
	return req, nil
}

// FocusCost returns the focus points consumed per craft at the tier,
// or 0 when the tier has no entry.
func FocusCost(tier domain.Tier) int {
	return focusCosts[tier]
}

// MasteryBonus returns the additive return-rate bonus for a mastery level.
// Steps up by MasteryBonusPer20Levels every 20 levels.
func MasteryBonus(masteryLevel int) float64 {
	return math.Floor(float64(masteryLevel)/20) * MasteryBonusPer20Levels
}

// EffectiveReturnRate composes the base station rate with mastery and the
// additive focus bonus. The result is not clamped; callers decide how to
// treat rates at or above 100%.
func EffectiveReturnRate(baseRate float64, masteryLevel int, useFocus bool) float64 {
	rate := baseRate + MasteryBonus(masteryLevel)
	if useFocus {
		rate += FocusReturnBonus
	}
	return rate
}
