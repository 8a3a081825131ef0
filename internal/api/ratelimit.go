package api

import (
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shopfolio/shopfolio-server/internal/ratelimit"
)

// RateLimiter wraps KeyedRateLimiter for API use.
type RateLimiter = ratelimit.KeyedRateLimiter

// NewRateLimiter creates a new rate limiter.
// rate: number of requests allowed per interval
// interval: time period for rate (e.g., time.Minute)
// burst: maximum burst size
func NewRateLimiter(ratePerInterval int, interval time.Duration, burst int) *RateLimiter {
	rps := float64(ratePerInterval) / interval.Seconds()
	return ratelimit.New(rps, burst)
}

// checkAuthRateLimit enforces the per-IP limit on credential endpoints.
// Returns a 429 error when the caller is over the limit.
func (s *Server) checkAuthRateLimit(ip string) error {
	if s.authRateLimiter == nil || ip == "" {
		return nil
	}

	if !s.authRateLimiter.Allow(ip) {
		if s.logger != nil {
			s.logger.Warn("Rate limit exceeded", "ip", ip)
		}
		return huma.Error429TooManyRequests("Too many requests. Please try again later.")
	}

	return nil
}
