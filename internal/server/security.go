package server

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// RequestSizeLimitMiddleware limits request body size
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// RequestRateLimiter tracks per-IP request rates over a sliding window
type RequestRateLimiter struct {
	mu               sync.Mutex
	requestCountByIP map[string]int
	lastResetTime    time.Time
}

func NewRequestRateLimiter() *RequestRateLimiter {
	return &RequestRateLimiter{
		requestCountByIP: make(map[string]int),
		lastResetTime:    time.Now(),
	}
}

// RecordRequest records a request for rate monitoring and returns false if rate limit exceeded
func (l *RequestRateLimiter) RecordRequest(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.resetCountsIfNeeded()
	l.requestCountByIP[ip]++

	// Block if request rate exceeds limit (1000 req / 5 min)
	if l.requestCountByIP[ip] > 1000 {
		if l.requestCountByIP[ip]%100 == 0 { // Log every 100 requests to avoid log spam
			slog.Warn(SecurityAlertHighRate,
				"ip", ip,
				"count_in_5min", l.requestCountByIP[ip])
		}
		return false
	}
	return true
}

// resetCountsIfNeeded resets counters if the time window has passed
// Caller must hold the mutex
func (l *RequestRateLimiter) resetCountsIfNeeded() {
	if time.Since(l.lastResetTime) > 5*time.Minute {
		l.requestCountByIP = make(map[string]int)
		l.lastResetTime = time.Now()
	}
}

// RateLimitMiddleware enforces per-IP request rate limits
func RateLimitMiddleware(trustedProxies []string, limiter *RequestRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := extractIP(r, trustedProxies)

			if !limiter.RecordRequest(ip) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// extractIP gets the client IP address from request.
// It only trusts X-Forwarded-For if the request comes from a trusted proxy.
func extractIP(r *http.Request, trustedProxies []string) string {
	// Get remote IP (direct connection)
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// Fallback if parsing fails (shouldn't happen for valid RemoteAddr)
		remoteIP = r.RemoteAddr
	}

	// Check if remote IP is a trusted proxy
	isTrusted := false
	for _, proxy := range trustedProxies {
		if proxy == remoteIP {
			isTrusted = true
			break
		}
	}

	// Only check X-Forwarded-For if trusted
	if isTrusted {
		forwarded := r.Header.Get(HeaderForwardedFor)
		if forwarded != "" {
			// For X-Forwarded-For: client, proxy1, proxy2
			// We want the rightmost IP (the one that connected to our trusted proxy)
			// since we trust the proxy to accurately report the previous hop.
			ips := strings.Split(forwarded, ",")
			return strings.TrimSpace(ips[len(ips)-1])
		}
	}

	return remoteIP
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Prevent MIME sniffing
			w.Header().Set(HeaderContentType, HeaderValueNoSniff)
			// Prevent clickjacking
			w.Header().Set(HeaderFrameOptions, HeaderValueSameOrigin)
			// Enable XSS protection (for older browsers)
			w.Header().Set(HeaderXSSProtection, HeaderValueXSSBlock)
			// Control referrer information
			w.Header().Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)

			next.ServeHTTP(w, r)
		})
	}
}
