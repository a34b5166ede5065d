package handler

import (
	"net/http"
	"strconv"

	"github.com/veylan/ForgeLedger_Go/internal/domain"
	"github.com/veylan/ForgeLedger_Go/internal/logger"
	"github.com/veylan/ForgeLedger_Go/internal/prices"
)

// MaterialPricesResponse is the single-city price lookup response
type MaterialPricesResponse struct {
	MaterialType string                `json:"material_type"`
	Tier         int                   `json:"tier"`
	City         string                `json:"city"`
	Prices       prices.MaterialPrices `json:"prices"`
}

// AllCityPricesResponse is the every-city price lookup response
type AllCityPricesResponse struct {
	MaterialType string                                `json:"material_type"`
	Tier         int                                   `json:"tier"`
	Prices       map[prices.City]prices.MaterialPrices `json:"prices"`
}

// HandleGetPrices handles market price lookups
// @Summary Get market prices for a material tier
// @Description Fetches the raw, refined and lower-tier refined prices for a material from the market data API
// @Tags prices
// @Produce json
// @Param material query string true "Material type"
// @Param tier query int true "Tier (2-8)"
// @Param city query string false "Market city (default Caerleon)"
// @Param all_cities query bool false "Fetch every city instead of one"
// @Success 200 {object} MaterialPricesResponse
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Failure 502 {object} ErrorResponse "Price API unavailable"
// @Router /prices [get]
func HandleGetPrices(client *prices.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		material, ok := GetQueryParam(r, w, "material")
		if !ok {
			return
		}
		tierStr, ok := GetQueryParam(r, w, "tier")
		if !ok {
			return
		}
		tier, err := strconv.Atoi(tierStr)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidTier)
			return
		}

		mat := domain.MaterialType(material)

		if allCities := r.URL.Query().Get("all_cities"); allCities == "true" {
			cityPrices, err := client.AllCityPrices(r.Context(), mat, domain.Tier(tier))
			if err != nil {
				respondServiceError(w, r, ErrMsgGetPricesFailed, err)
				return
			}
			log.Info("All-city prices retrieved", "material", material, "tier", tier)
			respondJSON(w, http.StatusOK, AllCityPricesResponse{
				MaterialType: material,
				Tier:         tier,
				Prices:       cityPrices,
			})
			return
		}

		city := prices.City(GetOptionalQueryParam(r, "city", string(prices.CityCaerleon)))

		materialPrices, err := client.FetchMaterialPrices(r.Context(), mat, domain.Tier(tier), city)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetPricesFailed, err)
			return
		}

		log.Info("Prices retrieved", "material", material, "tier", tier, "city", string(city))

		respondJSON(w, http.StatusOK, MaterialPricesResponse{
			MaterialType: material,
			Tier:         tier,
			City:         string(city),
			Prices:       materialPrices,
		})
	}
}
