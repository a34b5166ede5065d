package prices

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/veylan/ForgeLedger_Go/internal/concurrency"
	"github.com/veylan/ForgeLedger_Go/internal/domain"
	"github.com/veylan/ForgeLedger_Go/internal/logger"
	"github.com/veylan/ForgeLedger_Go/internal/metrics"
)

// PriceEntry is one row of the market price API response.
type PriceEntry struct {
	ItemID       string `json:"item_id"`
	City         string `json:"city"`
	Quality      int    `json:"quality"`
	SellPriceMin int    `json:"sell_price_min"`
	SellPriceMax int    `json:"sell_price_max"`
	BuyPriceMin  int    `json:"buy_price_min"`
	BuyPriceMax  int    `json:"buy_price_max"`
}

// MaterialPrices bundles the three prices one refining calculation needs.
// Raw and lower-tier prices come from the cheapest sell order since that is
// what a crafter pays; the refined price comes from the best buy order since
// that is what instant-selling the output earns.
type MaterialPrices struct {
	RawPrice              float64 `json:"raw_price"`
	RefinedPrice          float64 `json:"refined_price"`
	LowerTierRefinedPrice float64 `json:"lower_tier_refined_price"`
}

// Client fetches market prices from the public price aggregation API
type Client struct {
	baseURL    string
	http       *http.Client
	cache      *priceCache
	fetchLocks *concurrency.LockManager
}

// NewClient creates a new price API client with an expiring price cache
func NewClient(baseURL string, cacheSize int, cacheTTL time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: DefaultTimeout,
		},
		cache:      newPriceCache(cacheSize, cacheTTL),
		fetchLocks: concurrency.NewLockManager(),
	}
}

// FetchMaterialPrices returns the raw, refined and lower-tier refined
// prices for a material at a tier across the given cities. Results are
// cached; a missing item in the response yields a zero price, not an error.
func (c *Client) FetchMaterialPrices(ctx context.Context, mat domain.MaterialType, tier domain.Tier, cities ...City) (MaterialPrices, error) {
	log := logger.FromContext(ctx)

	if !mat.IsValid() {
		return MaterialPrices{}, fmt.Errorf("%w: %q", domain.ErrUnknownMaterial, mat)
	}
	if !tier.IsValid() {
		return MaterialPrices{}, fmt.Errorf("%w: %d", domain.ErrUnknownTier, int(tier))
	}
	if len(cities) == 0 {
		cities = []City{CityCaerleon}
	}

	rawID := ItemID(mat, tier, false)
	refinedID := ItemID(mat, tier, true)
	lowerID := ""
	if tier > domain.TierMin {
		lowerID = ItemID(mat, tier-1, true)
	}

	key := cacheKey(rawID, cities)
	if cached, found := c.cache.Get(key); found {
		log.Debug(LogMsgCacheHit, "item", rawID)
		metrics.PriceFetches.WithLabelValues(metrics.ResultHit).Inc()
		return cached, nil
	}

	// Serialize fetches per cache key so concurrent requests for the same
	// item don't all hit the upstream API.
	lock := c.fetchLocks.GetLock(key)
	lock.Lock()
	defer lock.Unlock()

	if cached, found := c.cache.Get(key); found {
		log.Debug(LogMsgCacheHit, "item", rawID)
		metrics.PriceFetches.WithLabelValues(metrics.ResultHit).Inc()
		return cached, nil
	}

	itemIDs := []string{rawID, refinedID}
	if lowerID != "" {
		itemIDs = append(itemIDs, lowerID)
	}

	entries, err := c.fetchEntries(ctx, itemIDs, cities)
	if err != nil {
		metrics.PriceFetches.WithLabelValues(metrics.ResultError).Inc()
		return MaterialPrices{}, fmt.Errorf("%w: %s", domain.ErrPriceUnavailable, err)
	}
	metrics.PriceFetches.WithLabelValues(metrics.ResultMiss).Inc()

	result := MaterialPrices{}
	for _, entry := range entries {
		switch entry.ItemID {
		case rawID:
			if result.RawPrice == 0 {
				result.RawPrice = float64(entry.SellPriceMin)
			}
		case refinedID:
			if result.RefinedPrice == 0 {
				result.RefinedPrice = float64(entry.BuyPriceMax)
			}
		case lowerID:
			if result.LowerTierRefinedPrice == 0 {
				result.LowerTierRefinedPrice = float64(entry.SellPriceMin)
			}
		}
	}

	c.cache.Set(key, result)
	return result, nil
}

// AllCityPrices fetches prices for every known city concurrently.
func (c *Client) AllCityPrices(ctx context.Context, mat domain.MaterialType, tier domain.Tier) (map[City]MaterialPrices, error) {
	if !mat.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownMaterial, mat)
	}
	if !tier.IsValid() {
		return nil, fmt.Errorf("%w: %d", domain.ErrUnknownTier, int(tier))
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		results  = make(map[City]MaterialPrices, len(Cities))
		firstErr error
	)

	for _, city := range Cities {
		wg.Add(1)
		go func(city City) {
			defer wg.Done()
			prices, err := c.FetchMaterialPrices(ctx, mat, tier, city)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			results[city] = prices
		}(city)
	}
	wg.Wait()

	if len(results) == 0 && firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}

// fetchEntries performs the GET request with retry on server errors
func (c *Client) fetchEntries(ctx context.Context, itemIDs []string, cities []City) ([]PriceEntry, error) {
	log := logger.FromContext(ctx)

	locations := make([]string, len(cities))
	for i, city := range cities {
		locations[i] = string(city)
	}

	params := url.Values{}
	params.Set("items", strings.Join(itemIDs, ","))
	params.Set("locations", strings.Join(locations, ","))
	params.Set("qualities", NormalQuality)
	requestURL := c.baseURL + "?" + params.Encode()

	retryDelay := InitialRetryDelay
	var lastErr error

	for attempt := 0; attempt <= MaxRetries; attempt++ {
		if attempt > 0 {
			delay := retryDelay * time.Duration(1<<uint(attempt-1))
			log.Info(LogMsgRetryingRequest, "attempt", attempt, "delay", delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			log.Warn(LogMsgRequestFailed, "error", err, "attempt", attempt)
			continue
		}

		if resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
			log.Warn(LogMsgServerError, "status", resp.StatusCode, "attempt", attempt)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
		}

		var entries []PriceEntry
		err = json.NewDecoder(resp.Body).Decode(&entries)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
		return entries, nil
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}
