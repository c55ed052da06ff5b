package config

import (
	"fmt"
	"strings"
	"time"
)

// Cache key strategies.  Both include the canonical query string, so
// different measurements never share an entry.
const (
	KeyRouteQuery       = "route_query"
	KeyMethodRouteQuery = "method_route_query"
)

// CacheConfig defines settings for the response cache middleware.
// When Enabled is false or no Redis client is configured, caching is disabled.
// Methods lists the HTTP methods to cache (normally only GET).  TTL defines the
// lifetime of cache entries.  KeyStrategy determines which parts of the request
// contribute to the cache key.  Prefix and MaxBodyBytes control namespacing and
// the maximum size of responses to cache.
type CacheConfig struct {
	Enabled      bool
	Methods      map[string]bool
	TTL          time.Duration
	KeyStrategy  string
	Prefix       string
	MaxBodyBytes int
}

func defaultCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      true,
		Methods:      map[string]bool{"GET": true},
		TTL:          5 * time.Minute,
		KeyStrategy:  KeyRouteQuery,
		Prefix:       "bmi",
		MaxBodyBytes: 1 << 20,
	}
}

// applyCacheEnv overlays CACHE_* variables on c.
func applyCacheEnv(c CacheConfig) CacheConfig {
	c.Enabled = envBool("CACHE_ENABLED", c.Enabled)
	if m := envStr("CACHE_METHODS", ""); m != "" {
		c.Methods = parseMethods(m)
	}
	c.TTL = envDur("CACHE_TTL", c.TTL)
	c.KeyStrategy = envStr("CACHE_KEY_STRATEGY", c.KeyStrategy)
	c.Prefix = envStr("CACHE_PREFIX", c.Prefix)
	c.MaxBodyBytes = envInt("CACHE_MAX_BODY_BYTES", c.MaxBodyBytes)
	return c
}

func (c CacheConfig) validate() error {
	switch strings.ToLower(c.KeyStrategy) {
	case KeyRouteQuery, KeyMethodRouteQuery:
	default:
		return fmt.Errorf("invalid cache key strategy %q (want %s or %s)", c.KeyStrategy, KeyRouteQuery, KeyMethodRouteQuery)
	}
	if c.TTL <= 0 {
		return fmt.Errorf("cache ttl must be positive, got %s", c.TTL)
	}
	return nil
}

func parseMethods(s string) map[string]bool {
	m := map[string]bool{}
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(strings.ToUpper(p))
		if p != "" {
			m[p] = true
		}
	}
	return m
}
