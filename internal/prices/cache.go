package prices

import (
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// priceCache provides an in-memory LRU cache for market price lookups
// with time-based expiration. Market prices churn constantly, so entries
// are only trustworthy for a few minutes.
type priceCache struct {
	lru *expirable.LRU[string, MaterialPrices]
}

func newPriceCache(size int, ttl time.Duration) *priceCache {
	return &priceCache{
		lru: expirable.NewLRU[string, MaterialPrices](size, nil, ttl),
	}
}

func cacheKey(itemKey string, cities []City) string {
	var sb strings.Builder
	sb.WriteString(itemKey)
	for _, city := range cities {
		sb.WriteByte('|')
		sb.WriteString(string(city))
	}
	return sb.String()
}

func (c *priceCache) Get(key string) (MaterialPrices, bool) {
	return c.lru.Get(key)
}

func (c *priceCache) Set(key string, prices MaterialPrices) {
	c.lru.Add(key, prices)
}

func (c *priceCache) Clear() {
	c.lru.Purge()
}
