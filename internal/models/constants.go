package models

const (
	// DefaultPageSize is used when a list request carries no size parameter.
	DefaultPageSize = 10

	// SearchCacheTTL bounds staleness of cached item search results, in seconds.
	SearchCacheTTL = 5 * 60

	// RateLimitRPS and RateLimitBurst are per-user API rate limit defaults.
	RateLimitRPS   = 20
	RateLimitBurst = 40
)
