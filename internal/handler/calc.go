package handler

import (
	"net/http"
	"time"

	"github.com/veylan/ForgeLedger_Go/internal/domain"
	"github.com/veylan/ForgeLedger_Go/internal/equipment"
	"github.com/veylan/ForgeLedger_Go/internal/logger"
	"github.com/veylan/ForgeLedger_Go/internal/metrics"
	"github.com/veylan/ForgeLedger_Go/internal/refining"
)

// RefiningCalcRequest represents a single-recipe refining calculation request
type RefiningCalcRequest struct {
	MaterialType       string  `json:"material_type" validate:"required,material"`
	Tier               int     `json:"tier" validate:"required,gte=2,lte=8"`
	TargetQuantity     int     `json:"target_quantity" validate:"gte=0"`
	RawPrice           float64 `json:"raw_price" validate:"gte=0"`
	RefinedPrice       float64 `json:"refined_price" validate:"gte=0"`
	LowerTierPrice     float64 `json:"lower_tier_price" validate:"gte=0"`
	ReturnRate         float64 `json:"return_rate" validate:"gte=0"`
	MasteryLevel       int     `json:"mastery_level" validate:"gte=0,lte=100"`
	UseFocus           bool    `json:"use_focus"`
	StationFeePercent  float64 `json:"station_fee_percent" validate:"gte=0"`
	MarketTaxPercent   float64 `json:"market_tax_percent" validate:"gte=0"`
	IsPremium          bool    `json:"is_premium"`
	AvailableRaw       int     `json:"available_raw" validate:"gte=0"`
	AvailableLowerTier int     `json:"available_lower_tier" validate:"gte=0"`
}

// ResourcesCalcRequest represents a resource-exhaustion calculation request
type ResourcesCalcRequest struct {
	MaterialType      string  `json:"material_type" validate:"required,material"`
	Tier              int     `json:"tier" validate:"required,gte=2,lte=8"`
	OwnedRaw          int     `json:"owned_raw" validate:"gte=0"`
	OwnedLowerTier    int     `json:"owned_lower_tier" validate:"gte=0"`
	RawPrice          float64 `json:"raw_price" validate:"gte=0"`
	RefinedPrice      float64 `json:"refined_price" validate:"gte=0"`
	LowerTierPrice    float64 `json:"lower_tier_price" validate:"gte=0"`
	ReturnRate        float64 `json:"return_rate" validate:"gte=0"`
	MasteryLevel      int     `json:"mastery_level" validate:"gte=0,lte=100"`
	UseFocus          bool    `json:"use_focus"`
	StationFeePercent float64 `json:"station_fee_percent" validate:"gte=0"`
	IsPremium         bool    `json:"is_premium"`
}

// EquipmentCalcRequest represents an equipment crafting calculation request
type EquipmentCalcRequest struct {
	RecipeID          string             `json:"recipe_id" validate:"required"`
	Quantity          int                `json:"quantity" validate:"gte=0"`
	MaterialPrices    map[string]float64 `json:"material_prices"`
	SellPrice         float64            `json:"sell_price" validate:"gte=0"`
	ReturnRate        float64            `json:"return_rate" validate:"gte=0"`
	UseFocus          bool               `json:"use_focus"`
	StationFeePercent float64            `json:"station_fee_percent" validate:"gte=0"`
	MarketTaxPercent  float64            `json:"market_tax_percent" validate:"gte=0"`
	IsPremium         bool               `json:"is_premium"`
}

// MultiTierCalcRequest represents a multi-tier chain calculation request
type MultiTierCalcRequest struct {
	MaterialType        string                  `json:"material_type" validate:"required,material"`
	StartTier           int                     `json:"start_tier" validate:"required,gte=2,lte=8"`
	EndTier             int                     `json:"end_tier" validate:"required,gte=2,lte=8"`
	OwnedStartMaterials int                     `json:"owned_start_materials" validate:"gte=0"`
	OwnedRaw            map[domain.Tier]int     `json:"owned_raw"`
	RawPrices           map[domain.Tier]float64 `json:"raw_prices"`
	RefinedPrices       map[domain.Tier]float64 `json:"refined_prices"`
	ReturnRate          float64                 `json:"return_rate" validate:"gte=0"`
	MasteryLevel        int                     `json:"mastery_level" validate:"gte=0,lte=100"`
	UseFocus            bool                    `json:"use_focus"`
	StationFeePercent   float64                 `json:"station_fee_percent" validate:"gte=0"`
	MarketTaxPercent    float64                 `json:"market_tax_percent" validate:"gte=0"`
	IsPremium           bool                    `json:"is_premium"`
}

// CalcHandler handles profit calculation HTTP requests
type CalcHandler struct {
	registry *equipment.Registry
}

// NewCalcHandler creates a new calculation handler
func NewCalcHandler(registry *equipment.Registry) *CalcHandler {
	return &CalcHandler{registry: registry}
}

// observeCalculation records the business metrics for one calculator run
func observeCalculation(mode domain.CalculationMode, start time.Time) {
	metrics.CalculationsTotal.WithLabelValues(string(mode)).Inc()
	metrics.CalculationDuration.WithLabelValues(string(mode)).Observe(time.Since(start).Seconds())
}

// Refining handles the single-recipe refining calculator endpoint
// @Summary Calculate refining profit for a target quantity
// @Description Computes material needs, costs, fees and profit for refining a target quantity of one material at one tier
// @Tags calc
// @Accept json
// @Produce json
// @Param request body RefiningCalcRequest true "Refining calculation request"
// @Success 200 {object} refining.TargetResult "Calculation result"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Router /calc/refining [post]
func (h *CalcHandler) Refining(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if r.Method != http.MethodPost {
		log.Warn("Method not allowed", "method", r.Method)
		http.Error(w, ErrMsgMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	var req RefiningCalcRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Refining calculation"); err != nil {
		return
	}

	log.Info("Refining calculation requested",
		"material", req.MaterialType, "tier", req.Tier, "quantity", req.TargetQuantity)

	start := time.Now()
	result, err := refining.CalculateTarget(refining.TargetInput{
		MaterialType:       domain.MaterialType(req.MaterialType),
		Tier:               domain.Tier(req.Tier),
		TargetQuantity:     req.TargetQuantity,
		RawPrice:           req.RawPrice,
		RefinedPrice:       req.RefinedPrice,
		LowerTierPrice:     req.LowerTierPrice,
		ReturnRate:         req.ReturnRate,
		MasteryLevel:       req.MasteryLevel,
		UseFocus:           req.UseFocus,
		StationFeePercent:  req.StationFeePercent,
		MarketTaxPercent:   req.MarketTaxPercent,
		IsPremium:          req.IsPremium,
		AvailableRaw:       req.AvailableRaw,
		AvailableLowerTier: req.AvailableLowerTier,
	})
	if err != nil {
		respondServiceError(w, r, ErrMsgRefiningCalcFailed, err)
		return
	}
	observeCalculation(domain.ModeRefining, start)

	respondJSON(w, http.StatusOK, result)
}

// Resources handles the resource-exhaustion calculator endpoint
// @Summary Calculate profit from exhausting owned materials
// @Description Repeatedly refines owned material pools, feeding returns back in, until nothing more can be crafted
// @Tags calc
// @Accept json
// @Produce json
// @Param request body ResourcesCalcRequest true "Resource exhaustion request"
// @Success 200 {object} refining.ExhaustResult "Calculation result"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Router /calc/resources [post]
func (h *CalcHandler) Resources(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if r.Method != http.MethodPost {
		log.Warn("Method not allowed", "method", r.Method)
		http.Error(w, ErrMsgMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	var req ResourcesCalcRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Resource exhaustion calculation"); err != nil {
		return
	}

	log.Info("Resource exhaustion calculation requested",
		"material", req.MaterialType, "tier", req.Tier, "owned_raw", req.OwnedRaw)

	start := time.Now()
	result, err := refining.CalculateExhaust(refining.ExhaustInput{
		MaterialType:      domain.MaterialType(req.MaterialType),
		Tier:              domain.Tier(req.Tier),
		OwnedRaw:          req.OwnedRaw,
		OwnedLowerTier:    req.OwnedLowerTier,
		RawPrice:          req.RawPrice,
		RefinedPrice:      req.RefinedPrice,
		LowerTierPrice:    req.LowerTierPrice,
		ReturnRate:        req.ReturnRate,
		MasteryLevel:      req.MasteryLevel,
		UseFocus:          req.UseFocus,
		StationFeePercent: req.StationFeePercent,
		IsPremium:         req.IsPremium,
	})
	if err != nil {
		respondServiceError(w, r, ErrMsgResourcesCalcFailed, err)
		return
	}
	observeCalculation(domain.ModeResources, start)

	respondJSON(w, http.StatusOK, result)
}

// Equipment handles the equipment crafting calculator endpoint
// @Summary Calculate equipment crafting profit
// @Description Computes the bill of materials, returns, fees and profit for crafting a recipe from the catalog
// @Tags calc
// @Accept json
// @Produce json
// @Param request body EquipmentCalcRequest true "Equipment crafting request"
// @Success 200 {object} equipment.CraftingResult "Calculation result"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "Recipe not found"
// @Router /calc/equipment [post]
func (h *CalcHandler) Equipment(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if r.Method != http.MethodPost {
		log.Warn("Method not allowed", "method", r.Method)
		http.Error(w, ErrMsgMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	var req EquipmentCalcRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Equipment calculation"); err != nil {
		return
	}

	recipe, err := h.registry.Get(req.RecipeID)
	if err != nil {
		respondServiceError(w, r, ErrMsgEquipmentCalcFailed, err)
		return
	}

	log.Info("Equipment calculation requested",
		"recipe", recipe.ID, "quantity", req.Quantity)

	materialPrices := make(map[domain.MaterialType]float64, len(req.MaterialPrices))
	for mat, price := range req.MaterialPrices {
		materialPrices[domain.MaterialType(mat)] = price
	}

	start := time.Now()
	result := equipment.CalculateCrafting(equipment.CraftingInput{
		Recipe:            recipe,
		Tier:              recipe.Tier,
		Quantity:          req.Quantity,
		MaterialPrices:    materialPrices,
		SellPrice:         req.SellPrice,
		ReturnRate:        req.ReturnRate,
		UseFocus:          req.UseFocus,
		StationFeePercent: req.StationFeePercent,
		MarketTaxPercent:  req.MarketTaxPercent,
		IsPremium:         req.IsPremium,
	})
	observeCalculation(domain.ModeEquipment, start)

	respondJSON(w, http.StatusOK, result)
}

// MultiTier handles the multi-tier chain calculator endpoint
// @Summary Calculate a multi-tier refining chain
// @Description Walks one conversion batch per tier transition from start tier to end tier and aggregates the economics
// @Tags calc
// @Accept json
// @Produce json
// @Param request body MultiTierCalcRequest true "Multi-tier chain request"
// @Success 200 {object} refining.ChainResult "Calculation result"
// @Failure 400 {object} ErrorResponse "Invalid request or tier range"
// @Router /calc/multitier [post]
func (h *CalcHandler) MultiTier(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if r.Method != http.MethodPost {
		log.Warn("Method not allowed", "method", r.Method)
		http.Error(w, ErrMsgMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	var req MultiTierCalcRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Multi-tier calculation"); err != nil {
		return
	}

	log.Info("Multi-tier calculation requested",
		"material", req.MaterialType, "start_tier", req.StartTier, "end_tier", req.EndTier)

	start := time.Now()
	result, err := refining.CalculateChain(refining.ChainInput{
		MaterialType:        domain.MaterialType(req.MaterialType),
		StartTier:           domain.Tier(req.StartTier),
		EndTier:             domain.Tier(req.EndTier),
		OwnedStartMaterials: req.OwnedStartMaterials,
		OwnedRaw:            req.OwnedRaw,
		RawPrices:           req.RawPrices,
		RefinedPrices:       req.RefinedPrices,
		ReturnRate:          req.ReturnRate,
		MasteryLevel:        req.MasteryLevel,
		UseFocus:            req.UseFocus,
		StationFeePercent:   req.StationFeePercent,
		MarketTaxPercent:    req.MarketTaxPercent,
		IsPremium:           req.IsPremium,
	})
	if err != nil {
		respondServiceError(w, r, ErrMsgMultiTierCalcFailed, err)
		return
	}
	observeCalculation(domain.ModeMultiTier, start)

	respondJSON(w, http.StatusOK, result)
}
