package api

import (
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/apurvavyas7/CineSuggest/internal/ratelimit"
)

// RateLimiter limits requests per client IP.
type RateLimiter = ratelimit.KeyedRateLimiter

// NewRateLimiter creates a rate limiter allowing ratePerInterval requests
// per interval with the given burst.
func NewRateLimiter(ratePerInterval int, interval time.Duration, burst int) *RateLimiter {
	rps := float64(ratePerInterval) / interval.Seconds()
	return ratelimit.New(rps, burst)
}

// checkAuthRateLimit guards the credential endpoints against brute force.
// The key is the client IP; an empty key (no proxy headers, direct call in
// tests) shares one bucket.
func (s *Server) checkAuthRateLimit(ip string) error {
	if s.authRateLimiter == nil {
		return nil
	}
	if !s.authRateLimiter.Allow(ip) {
		if s.logger != nil {
			s.logger.Warn("Auth rate limit exceeded", "ip", ip)
		}
		return huma.Error429TooManyRequests("Too many attempts. Please try again later.")
	}
	return nil
}
