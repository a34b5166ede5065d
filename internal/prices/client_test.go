package prices

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veylan/ForgeLedger_Go/internal/domain"
	"github.com/veylan/ForgeLedger_Go/internal/testing/leaktest"
)

func TestItemID(t *testing.T) {
	tests := []struct {
		mat     domain.MaterialType
		tier    domain.Tier
		refined bool
		want    string
	}{
		{domain.MaterialOre, 4, false, "T4_ORE"},
		{domain.MaterialOre, 4, true, "T4_METALBAR"},
		{domain.MaterialHide, 6, true, "T6_LEATHER"},
		{domain.MaterialFiber, 2, false, "T2_FIBER"},
		{domain.MaterialWood, 8, true, "T8_PLANKS"},
		{domain.MaterialStone, 5, false, "T5_ROCK"},
		{domain.MaterialStone, 5, true, "T5_STONEBLOCK"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, ItemID(tc.mat, tc.tier, tc.refined))
	}
}

func priceTestServer(t *testing.T, entries []PriceEntry) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, NormalQuality, r.URL.Query().Get("qualities"))
		require.NoError(t, json.NewEncoder(w).Encode(entries))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFetchMaterialPrices(t *testing.T) {
	server := priceTestServer(t, []PriceEntry{
		{ItemID: "T4_ORE", City: "Caerleon", SellPriceMin: 120, BuyPriceMax: 100},
		{ItemID: "T4_METALBAR", City: "Caerleon", SellPriceMin: 400, BuyPriceMax: 350},
		{ItemID: "T3_METALBAR", City: "Caerleon", SellPriceMin: 200, BuyPriceMax: 180},
	})

	client := NewClient(server.URL, DefaultCacheSize, DefaultCacheTTL)
	prices, err := client.FetchMaterialPrices(context.Background(), domain.MaterialOre, 4)
	require.NoError(t, err)

	assert.InDelta(t, 120, prices.RawPrice, 1e-9)
	assert.InDelta(t, 350, prices.RefinedPrice, 1e-9)
	assert.InDelta(t, 200, prices.LowerTierRefinedPrice, 1e-9)
}

func TestFetchMaterialPrices_TierTwoSkipsLowerItem(t *testing.T) {
	var gotItems string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotItems = r.URL.Query().Get("items")
		require.NoError(t, json.NewEncoder(w).Encode([]PriceEntry{}))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, DefaultCacheSize, DefaultCacheTTL)
	prices, err := client.FetchMaterialPrices(context.Background(), domain.MaterialFiber, 2)
	require.NoError(t, err)

	assert.Equal(t, "T2_FIBER,T2_CLOTH", gotItems)
	assert.Zero(t, prices.LowerTierRefinedPrice)
}

func TestFetchMaterialPrices_MissingItemYieldsZero(t *testing.T) {
	server := priceTestServer(t, []PriceEntry{
		{ItemID: "T4_ORE", City: "Caerleon", SellPriceMin: 120},
	})

	client := NewClient(server.URL, DefaultCacheSize, DefaultCacheTTL)
	prices, err := client.FetchMaterialPrices(context.Background(), domain.MaterialOre, 4)
	require.NoError(t, err)

	assert.InDelta(t, 120, prices.RawPrice, 1e-9)
	assert.Zero(t, prices.RefinedPrice)
	assert.Zero(t, prices.LowerTierRefinedPrice)
}

func TestFetchMaterialPrices_CachesResponses(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		require.NoError(t, json.NewEncoder(w).Encode([]PriceEntry{
			{ItemID: "T4_ORE", City: "Caerleon", SellPriceMin: 120},
		}))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, DefaultCacheSize, DefaultCacheTTL)

	for i := 0; i < 3; i++ {
		_, err := client.FetchMaterialPrices(context.Background(), domain.MaterialOre, 4)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), calls.Load())

	// Different city misses the cache
	_, err := client.FetchMaterialPrices(context.Background(), domain.MaterialOre, 4, CityMartlock)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetchMaterialPrices_ConcurrentRequestsShareOneFetch(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		require.NoError(t, json.NewEncoder(w).Encode([]PriceEntry{
			{ItemID: "T4_ORE", City: "Caerleon", SellPriceMin: 120},
		}))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, DefaultCacheSize, DefaultCacheTTL)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.FetchMaterialPrices(context.Background(), domain.MaterialOre, 4)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	checker.Check(2)
}

func TestFetchMaterialPrices_InvalidInputs(t *testing.T) {
	client := NewClient("http://unused.invalid", DefaultCacheSize, DefaultCacheTTL)

	_, err := client.FetchMaterialPrices(context.Background(), "mithril", 4)
	assert.ErrorIs(t, err, domain.ErrUnknownMaterial)

	_, err = client.FetchMaterialPrices(context.Background(), domain.MaterialOre, 9)
	assert.ErrorIs(t, err, domain.ErrUnknownTier)
}

func TestFetchMaterialPrices_ServerErrorRetriesThenFails(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, DefaultCacheSize, DefaultCacheTTL)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := client.FetchMaterialPrices(ctx, domain.MaterialOre, 4)
	assert.ErrorIs(t, err, domain.ErrPriceUnavailable)
	assert.Equal(t, int32(MaxRetries+1), calls.Load())
}

func TestFetchMaterialPrices_ClientErrorDoesNotRetry(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, DefaultCacheSize, DefaultCacheTTL)

	_, err := client.FetchMaterialPrices(context.Background(), domain.MaterialOre, 4)
	assert.ErrorIs(t, err, domain.ErrPriceUnavailable)
	assert.Equal(t, int32(1), calls.Load())
}

func TestAllCityPrices(t *testing.T) {
	server := priceTestServer(t, []PriceEntry{
		{ItemID: "T4_ORE", City: "Caerleon", SellPriceMin: 120},
		{ItemID: "T4_METALBAR", City: "Caerleon", BuyPriceMax: 350},
	})

	client := NewClient(server.URL, DefaultCacheSize, DefaultCacheTTL)
	results, err := client.AllCityPrices(context.Background(), domain.MaterialOre, 4)
	require.NoError(t, err)

	assert.Len(t, results, len(Cities))
	for _, city := range Cities {
		assert.Contains(t, results, city)
	}
}

func TestCacheKey(t *testing.T) {
	keyOne := cacheKey("T4_ORE", []City{CityCaerleon})
	keyTwo := cacheKey("T4_ORE", []City{CityMartlock})
	assert.NotEqual(t, keyOne, keyTwo)
	assert.Equal(t, keyOne, cacheKey("T4_ORE", []City{CityCaerleon}))
}
