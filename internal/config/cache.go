package config

import (
	"strings"
	"time"
)

// CacheConfig defines settings for the response cache middleware.
// When Enabled is false or no Redis client is configured, caching is
// disabled. Only GET requests are cached; Prefix namespaces the keys and
// MaxBodyBytes skips responses larger than that.
type CacheConfig struct {
	Enabled      bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int
	// Routes lists the echo route paths (c.Path()) whose GET responses may
	// be cached, e.g. /api/addresses/count.
	Routes map[string]bool
}

// LoadCacheConfig reads CACHE_* variables. CACHE_ROUTES is a comma
// separated list of route patterns; empty means every GET route.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		TTL:          envDur("CACHE_TTL", 30*time.Second),
		Prefix:       envStr("CACHE_PREFIX", "cache"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
		Routes:       parseList(envStr("CACHE_ROUTES", "")),
	}
}

// Cacheable reports whether GET responses of route may be cached.
func (c CacheConfig) Cacheable(route string) bool {
	return len(c.Routes) == 0 || c.Routes[route]
}

func parseList(s string) map[string]bool {
	m := map[string]bool{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			m[p] = true
		}
	}
	return m
}
