package equipment

import (
	"math"

	"github.com/veylan/ForgeLedger_Go/internal/domain"
	"github.com/veylan/ForgeLedger_Go/internal/gamedata"
)

const (
	// DefaultFocusCost is the per-item focus cost for recipes without an
	// explicit override.
	DefaultFocusCost = 3

	premiumFeeMultiplier = 0.5
)

// CraftingInput configures an equipment crafting calculation.
type CraftingInput struct {
	Recipe            domain.EquipmentRecipe
	Tier              domain.Tier
	Quantity          int
	MaterialPrices    map[domain.MaterialType]float64 // per refined material
	SellPrice         float64                         // per crafted item
	ReturnRate        float64
	UseFocus          bool
	StationFeePercent float64
	MarketTaxPercent  float64
	IsPremium         bool
}

// MaterialLine is the per-material breakdown of one crafting calculation.
type MaterialLine struct {
	MaterialType domain.MaterialType
	MaterialName string
	RefinedName  string
	Amount       int
	Cost         float64
	Returned     int
	NetUsed      int
	NetCost      float64
}

// CraftingResult is the immutable outcome of an equipment calculation.
type CraftingResult struct {
	EquipmentName   string
	EquipmentTier   domain.Tier
	QuantityCrafted int

	Materials              []MaterialLine
	TotalMaterialCost      float64
	TotalNetMaterialCost   float64
	ReturnedMaterialsValue float64

	EffectiveReturnRate float64

	StationFee float64
	MarketTax  float64
	FocusCost  float64
	TotalCost  float64

	TotalRevenue   float64
	GrossProfit    float64
	NetProfit      float64
	ProfitPerUnit  float64
	ProfitMargin   float64
	ProfitPerFocus float64

	IsProfitable bool
}

// CalculateCrafting runs the equipment crafting calculator over the
// recipe's bill of materials. With focus enabled the return rate is
// replaced by a flat rate rather than boosted additively; refining and
// crafting evolved different focus formulas and both are kept as-is.
func CalculateCrafting(input CraftingInput) CraftingResult {
	effRate := input.ReturnRate
	if input.UseFocus {
		effRate = gamedata.ReturnRateFocusFixed
	}

	var (
		lines         []MaterialLine
		totalCost     float64
		totalNetCost  float64
		returnedValue float64
	)

	for _, mat := range domain.MaterialTypes {
		perUnit, ok := input.Recipe.Materials[mat]
		if !ok {
			continue
		}

		totalNeeded := perUnit * input.Quantity
		price := input.MaterialPrices[mat]

		returned := int(math.Floor(float64(totalNeeded) * effRate / 100))
		netUsed := totalNeeded - returned

		line := MaterialLine{
			MaterialType: mat,
			MaterialName: gamedata.RawName(mat, input.Tier),
			RefinedName:  gamedata.RefinedName(mat, input.Tier),
			Amount:       totalNeeded,
			Cost:         float64(totalNeeded) * price,
			Returned:     returned,
			NetUsed:      netUsed,
			NetCost:      float64(netUsed) * price,
		}

		lines = append(lines, line)
		totalCost += line.Cost
		totalNetCost += line.NetCost
		returnedValue += float64(returned) * price
	}

	stationFee := totalCost * (input.StationFeePercent / 100)
	if input.IsPremium {
		stationFee *= premiumFeeMultiplier
	}

	totalRevenue := float64(input.Quantity) * input.SellPrice
	marketTax := totalRevenue * (input.MarketTaxPercent / 100)
	if input.IsPremium {
		marketTax *= premiumFeeMultiplier
	}

	focusPerItem := 0
	if input.UseFocus {
		focusPerItem = input.Recipe.FocusCost
		if focusPerItem == 0 {
			focusPerItem = DefaultFocusCost
		}
	}
	focusCost := float64(focusPerItem * input.Quantity)

	grandTotal := totalNetCost + stationFee + marketTax

	grossProfit := totalRevenue - totalCost
	netProfit := totalRevenue - grandTotal

	profitPerUnit := 0.0
	if input.Quantity > 0 {
		profitPerUnit = netProfit / float64(input.Quantity)
	}
	profitMargin := 0.0
	if totalRevenue > 0 {
		profitMargin = netProfit / totalRevenue * 100
	}
	profitPerFocus := 0.0
	if input.UseFocus && focusPerItem > 0 {
		profitPerFocus = netProfit / (focusCost / float64(focusPerItem))
	}

	return CraftingResult{
		EquipmentName:   input.Recipe.Name,
		EquipmentTier:   input.Tier,
		QuantityCrafted: input.Quantity,

		Materials:              lines,
		TotalMaterialCost:      totalCost,
		TotalNetMaterialCost:   totalNetCost,
		ReturnedMaterialsValue: returnedValue,

		EffectiveReturnRate: effRate,

		StationFee: stationFee,
		MarketTax:  marketTax,
		FocusCost:  focusCost,
		TotalCost:  grandTotal,

		TotalRevenue:   totalRevenue,
		GrossProfit:    grossProfit,
		NetProfit:      netProfit,
		ProfitPerUnit:  profitPerUnit,
		ProfitMargin:   profitMargin,
		ProfitPerFocus: profitPerFocus,

		IsProfitable: netProfit > 0,
	}
}
