package domain

import "fmt"

// MaterialType identifies a raw-resource family.
type MaterialType string

const (
	MaterialOre   MaterialType = "ore"
	MaterialHide  MaterialType = "hide"
	MaterialFiber MaterialType = "fiber"
	MaterialWood  MaterialType = "wood"
	MaterialStone MaterialType = "stone"
)

// MaterialTypes lists all material families in display order.
var MaterialTypes = []MaterialType{
	MaterialOre,
	MaterialHide,
	MaterialFiber,
	MaterialWood,
	MaterialStone,
}

// IsValid reports whether m is one of the known material families.
func (m MaterialType) IsValid() bool {
	switch m {
	case MaterialOre, MaterialHide, MaterialFiber, MaterialWood, MaterialStone:
		return true
	}
	return false
}

// Tier is the power level of a material or equipment piece.
// Tier T refined goods consume tier T raw materials plus tier T-1 refined
// goods; tier 2 needs no lower-tier input.
type Tier int

const (
	TierMin Tier = 2
	TierMax Tier = 8
)

// IsValid reports whether t is inside the playable range [2,8].
func (t Tier) IsValid() bool {
	return t >= TierMin && t <= TierMax
}

// String formats the tier the way players write it, e.g. "T4".
func (t Tier) String() string {
	return fmt.Sprintf("T%d", int(t))
}
