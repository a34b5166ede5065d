package equipment

import (
	"fmt"
	"sort"

	"github.com/veylan/ForgeLedger_Go/internal/domain"
	"github.com/veylan/ForgeLedger_Go/internal/gamedata"
)

// Registry is a read-only catalog of equipment recipes keyed by id.
type Registry struct {
	recipes map[string]domain.EquipmentRecipe
}

// NewRegistry builds a registry from a recipe list. Duplicate ids and
// malformed recipes are rejected up front so lookups never have to care.
// Recipes without an explicit name get one derived from their id.
func NewRegistry(recipes []domain.EquipmentRecipe) (*Registry, error) {
	byID := make(map[string]domain.EquipmentRecipe, len(recipes))
	for _, r := range recipes {
		if r.ID == "" {
			return nil, fmt.Errorf("%w: recipe missing id", domain.ErrInvalidRecipe)
		}
		if r.Name == "" {
			r.Name = gamedata.DisplayName(r.ID)
		}
		if !r.Tier.IsValid() {
			return nil, fmt.Errorf("%w: recipe %s has tier %d", domain.ErrInvalidRecipe, r.ID, int(r.Tier))
		}
		if len(r.Materials) == 0 {
			return nil, fmt.Errorf("%w: recipe %s has no materials", domain.ErrInvalidRecipe, r.ID)
		}
		for mat, amount := range r.Materials {
			if !mat.IsValid() {
				return nil, fmt.Errorf("%w: recipe %s uses %q", domain.ErrUnknownMaterial, r.ID, mat)
			}
			if amount <= 0 {
				return nil, fmt.Errorf("%w: recipe %s needs %d %s", domain.ErrInvalidRecipe, r.ID, amount, mat)
			}
		}
		if _, exists := byID[r.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate recipe id %s", domain.ErrInvalidRecipe, r.ID)
		}
		byID[r.ID] = r
	}
	return &Registry{recipes: byID}, nil
}

// Get looks up a recipe by id.
func (reg *Registry) Get(id string) (domain.EquipmentRecipe, error) {
	r, ok := reg.recipes[id]
	if !ok {
		return domain.EquipmentRecipe{}, fmt.Errorf("%w: %s", domain.ErrRecipeNotFound, id)
	}
	return r, nil
}

// All returns every recipe sorted by id.
func (reg *Registry) All() []domain.EquipmentRecipe {
	out := make([]domain.EquipmentRecipe, 0, len(reg.recipes))
	for _, r := range reg.recipes {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ByCategory returns recipes in a category, sorted by id.
func (reg *Registry) ByCategory(category domain.EquipmentCategory) []domain.EquipmentRecipe {
	var out []domain.EquipmentRecipe
	for _, r := range reg.All() {
		if r.Category == category {
			out = append(out, r)
		}
	}
	return out
}

// ByMaterial returns recipes whose bill of materials includes the family,
// sorted by id.
func (reg *Registry) ByMaterial(mat domain.MaterialType) []domain.EquipmentRecipe {
	var out []domain.EquipmentRecipe
	for _, r := range reg.All() {
		if _, uses := r.Materials[mat]; uses {
			out = append(out, r)
		}
	}
	return out
}

// Len reports how many recipes the registry holds.
func (reg *Registry) Len() int {
	return len(reg.recipes)
}
