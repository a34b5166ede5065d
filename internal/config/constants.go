package config

const (
	// Configuration file paths
	ConfigPathEquipmentRecipes = "configs/equipment/recipes.json"
)
