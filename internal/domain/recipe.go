package domain

// EquipmentCategory groups recipes for browsing.
type EquipmentCategory string

const (
	CategoryWeapons     EquipmentCategory = "weapons"
	CategoryArmor       EquipmentCategory = "armor"
	CategoryAccessories EquipmentCategory = "accessories"
	CategoryTools       EquipmentCategory = "tools"
	CategoryConsumables EquipmentCategory = "consumables"
)

// EquipmentSlot is the body slot a crafted piece occupies.
type EquipmentSlot string

const (
	SlotHead       EquipmentSlot = "head"
	SlotChest      EquipmentSlot = "chest"
	SlotShoes      EquipmentSlot = "shoes"
	SlotMainHand   EquipmentSlot = "mainhand"
	SlotOffHand    EquipmentSlot = "offhand"
	SlotCape       EquipmentSlot = "cape"
	SlotBag        EquipmentSlot = "bag"
	SlotTool       EquipmentSlot = "tool"
	SlotConsumable EquipmentSlot = "consumable"
)

// EquipmentRecipe is the immutable bill of materials for one craftable item.
// Materials maps a material family to the refined units consumed per item.
type EquipmentRecipe struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Category  EquipmentCategory    `json:"category"`
	Slot      EquipmentSlot        `json:"slot"`
	Tier      Tier                 `json:"tier"`
	Materials map[MaterialType]int `json:"materials"`
	FocusCost int                  `json:"focus_cost,omitempty"`
}
