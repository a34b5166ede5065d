package equipment

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/veylan/ForgeLedger_Go/internal/domain"
	"github.com/veylan/ForgeLedger_Go/internal/validation"
)

const (
	// RecipesSchemaPath is the path to the recipe catalog JSON schema, relative to project root
	RecipesSchemaPath = "configs/schemas/equipment_recipes.schema.json"
)

// RecipeConfig is the JSON shape of the equipment recipe catalog.
type RecipeConfig struct {
	Version     string                   `json:"version"`
	Description string                   `json:"description"`
	Recipes     []domain.EquipmentRecipe `json:"recipes"`
}

// LoadRegistry reads the recipe catalog from a JSON config file, validates it
// against the catalog schema, and builds a registry from it.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe config %s: %w", path, err)
	}

	schemaValidator := validation.NewSchemaValidator()
	if err := schemaValidator.ValidateBytes(data, RecipesSchemaPath); err != nil {
		return nil, fmt.Errorf("recipe config %s: %w", path, err)
	}

	var cfg RecipeConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse recipe config %s: %w", path, err)
	}
	if len(cfg.Recipes) == 0 {
		return nil, fmt.Errorf("%w: recipe config %s has no recipes", domain.ErrInvalidRecipe, path)
	}

	reg, err := NewRegistry(cfg.Recipes)
	if err != nil {
		return nil, fmt.Errorf("recipe config %s: %w", path, err)
	}
	return reg, nil
}
