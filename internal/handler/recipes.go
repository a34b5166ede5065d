package handler

import (
	"net/http"

	"github.com/veylan/ForgeLedger_Go/internal/domain"
	"github.com/veylan/ForgeLedger_Go/internal/equipment"
	"github.com/veylan/ForgeLedger_Go/internal/logger"
)

// RecipeListResponse contains the equipment recipe catalog
type RecipeListResponse struct {
	Recipes []domain.EquipmentRecipe `json:"recipes"`
	Count   int                      `json:"count"`
}

// HandleGetRecipes handles equipment recipe catalog requests
// @Summary List equipment recipes
// @Description Returns the crafting recipe catalog, optionally filtered by category or material
// @Tags recipes
// @Produce json
// @Param category query string false "Equipment category filter"
// @Param material query string false "Material type filter"
// @Success 200 {object} RecipeListResponse
// @Router /equipment/recipes [get]
func HandleGetRecipes(registry *equipment.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var recipes []domain.EquipmentRecipe
		category := r.URL.Query().Get("category")
		material := r.URL.Query().Get("material")

		switch {
		case category != "":
			recipes = registry.ByCategory(domain.EquipmentCategory(category))
		case material != "":
			recipes = registry.ByMaterial(domain.MaterialType(material))
		default:
			recipes = registry.All()
		}
		if recipes == nil {
			recipes = []domain.EquipmentRecipe{}
		}

		log.Info("Recipes retrieved", "count", len(recipes), "category", category, "material", material)

		respondJSON(w, http.StatusOK, RecipeListResponse{
			Recipes: recipes,
			Count:   len(recipes),
		})
	}
}
