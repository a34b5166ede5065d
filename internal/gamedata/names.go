package gamedata

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/veylan/ForgeLedger_Go/internal/domain"
)

var titleCaser = cases.Title(language.AmericanEnglish)

// DisplayName humanizes a snake_case identifier, e.g. "leather_hood"
// becomes "Leather Hood".
func DisplayName(id string) string {
	return titleCaser.String(strings.ReplaceAll(id, "_", " "))
}

// MaterialInfo describes a raw-resource family for display purposes.
type MaterialInfo struct {
	Name    string
	Refined string
}

// materialInfo maps each family to its display names.
var materialInfo = map[domain.MaterialType]MaterialInfo{
	domain.MaterialOre:   {Name: "Ore", Refined: "Metal Bars"},
	domain.MaterialHide:  {Name: "Hide", Refined: "Leather"},
	domain.MaterialFiber: {Name: "Fiber", Refined: "Cloth"},
	domain.MaterialWood:  {Name: "Wood", Refined: "Planks"},
	domain.MaterialStone: {Name: "Stone", Refined: "Stone Blocks"},
}

// rawNames holds the per-tier raw material names.
var rawNames = map[domain.MaterialType]map[domain.Tier]string{
	domain.MaterialOre: {
		2: "Copper Ore", 3: "Tin Ore", 4: "Iron Ore", 5: "Titanium Ore",
		6: "Adamantium Ore", 7: "Meteorite Ore", 8: "Orichalcum Ore",
	},
	domain.MaterialHide: {
		2: "Rugged Hide", 3: "Thin Hide", 4: "Medium Hide", 5: "Heavy Hide",
		6: "Robust Hide", 7: "Thick Hide", 8: "Resilient Hide",
	},
	domain.MaterialFiber: {
		2: "Cotton", 3: "Flax", 4: "Hemp", 5: "Skyflower",
		6: "Amberleaf", 7: "Sunflax", 8: "Ghost Hemp",
	},
	domain.MaterialWood: {
		2: "Birch Logs", 3: "Chestnut Logs", 4: "Pine Logs", 5: "Cedar Logs",
		6: "Bloodoak Logs", 7: "Ashenbark Logs", 8: "Whitewood Logs",
	},
	domain.MaterialStone: {
		2: "Limestone", 3: "Sandstone", 4: "Travertine", 5: "Granite",
		6: "Slate", 7: "Basalt", 8: "Marble",
	},
}

// refinedNames holds the per-tier refined material names.
var refinedNames = map[domain.MaterialType]map[domain.Tier]string{
	domain.MaterialOre: {
		2: "Copper Bar", 3: "Bronze Bar", 4: "Steel Bar", 5: "Titanium Steel Bar",
		6: "Adamantium Steel Bar", 7: "Meteorite Steel Bar", 8: "Orichalcum Steel Bar",
	},
	domain.MaterialHide: {
		2: "Stiff Leather", 3: "Thick Leather", 4: "Worked Leather", 5: "Cured Leather",
		6: "Hardened Leather", 7: "Reinforced Leather", 8: "Fortified Leather",
	},
	domain.MaterialFiber: {
		2: "Simple Cloth", 3: "Neat Cloth", 4: "Fine Cloth", 5: "Ornate Cloth",
		6: "Lavish Cloth", 7: "Opulent Cloth", 8: "Ethereal Cloth",
	},
	domain.MaterialWood: {
		2: "Birch Planks", 3: "Chestnut Planks", 4: "Pine Planks", 5: "Cedar Planks",
		6: "Bloodoak Planks", 7: "Ashenbark Planks", 8: "Whitewood Planks",
	},
	domain.MaterialStone: {
		2: "Limestone Block", 3: "Sandstone Block", 4: "Travertine Block", 5: "Granite Block",
		6: "Slate Block", 7: "Basalt Block", 8: "Marble Block",
	},
}

// MaterialInfoFor returns the display names for a material family.
func MaterialInfoFor(mat domain.MaterialType) (MaterialInfo, bool) {
	info, ok := materialInfo[mat]
	return info, ok
}

// RawName returns the raw material name at a tier, e.g. "Iron Ore".
// Returns "" for unknown material/tier combinations.
func RawName(mat domain.MaterialType, tier domain.Tier) string {
	return rawNames[mat][tier]
}

// RefinedName returns the refined material name at a tier, e.g. "Steel Bar".
// Returns "" for unknown material/tier combinations.
func RefinedName(mat domain.MaterialType, tier domain.Tier) string {
	return refinedNames[mat][tier]
}

// CityBonus records which city grants the full refining bonus for a material.
type CityBonus struct {
	City     string
	Material domain.MaterialType
	Bonus    float64
}

// CityBonuses lists the per-material bonus cities. Caerleon grants a
// reduced bonus to every material and is listed with an empty material.
var CityBonuses = []CityBonus{
	{City: "martlock", Material: domain.MaterialHide, Bonus: 36.7},
	{City: "bridgewatch", Material: domain.MaterialStone, Bonus: 36.7},
	{City: "lymhurst", Material: domain.MaterialFiber, Bonus: 36.7},
	{City: "sterling", Material: domain.MaterialWood, Bonus: 36.7},
	{City: "thetford", Material: domain.MaterialOre, Bonus: 36.7},
	{City: "caerleon", Material: "", Bonus: 15.2},
}
