package prices

import (
	"fmt"

	"github.com/veylan/ForgeLedger_Go/internal/domain"
)

// City is a market location recognized by the price API.
type City string

const (
	CityCaerleon     City = "Caerleon"
	CityMartlock     City = "Martlock"
	CityBridgewatch  City = "Bridgewatch"
	CityLymhurst     City = "Lymhurst"
	CityFortSterling City = "Fort Sterling"
	CityThetford     City = "Thetford"
)

// Cities lists every market location queried by AllCityPrices.
var Cities = []City{
	CityCaerleon,
	CityMartlock,
	CityBridgewatch,
	CityLymhurst,
	CityFortSterling,
	CityThetford,
}

var rawItemCodes = map[domain.MaterialType]string{
	domain.MaterialOre:   "ORE",
	domain.MaterialHide:  "HIDE",
	domain.MaterialFiber: "FIBER",
	domain.MaterialWood:  "WOOD",
	domain.MaterialStone: "ROCK",
}

var refinedItemCodes = map[domain.MaterialType]string{
	domain.MaterialOre:   "METALBAR",
	domain.MaterialHide:  "LEATHER",
	domain.MaterialFiber: "CLOTH",
	domain.MaterialWood:  "PLANKS",
	domain.MaterialStone: "STONEBLOCK",
}

// ItemID builds the market item identifier for a material at a tier,
// e.g. "T4_ORE" or "T4_METALBAR".
func ItemID(mat domain.MaterialType, tier domain.Tier, refined bool) string {
	codes := rawItemCodes
	if refined {
		codes = refinedItemCodes
	}
	return fmt.Sprintf("T%d_%s", int(tier), codes[mat])
}
