package prices

import "time"

// DefaultBaseURL points at the public market-data aggregation API
const DefaultBaseURL = "https://www.albion-online-data.com/api/v2/stats/prices"

// Request configuration
const (
	DefaultTimeout    = 10 * time.Second
	MaxRetries        = 3
	InitialRetryDelay = 500 * time.Millisecond

	// NormalQuality is the only quality tier raw and refined materials trade at
	NormalQuality = "1"
)

// Cache configuration
const (
	DefaultCacheSize = 512
	DefaultCacheTTL  = 5 * time.Minute
)

// Log messages
const (
	LogMsgRetryingRequest = "Retrying price request"
	LogMsgRequestFailed   = "Price request failed"
	LogMsgServerError     = "Price API server error, will retry"
	LogMsgCacheHit        = "Price cache hit"
)
