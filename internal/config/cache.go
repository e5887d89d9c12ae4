package config

import (
	"strings"
	"time"
)

// CacheConfig defines settings for the page cache middleware. When Enabled is
// false or no Redis client is available, caching is disabled. Methods lists
// the HTTP methods to cache, TTL the lifetime of entries, Prefix the key
// namespace, and MaxBodyBytes the largest response worth caching. Requests
// carrying the BypassCookie skip the cache so one-time messages still render.
type CacheConfig struct {
	Enabled      bool
	Methods      map[string]bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int
	BypassCookie string
}

// LoadCacheConfig reads the CACHE_* environment variables, with defaults
// suited to the listing pages.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		Methods:      parseMethods(envStr("CACHE_METHODS", "GET")),
		TTL:          envDur("CACHE_TTL", 30*time.Second),
		Prefix:       envStr("CACHE_PREFIX", "pages"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1048576),
		BypassCookie: envStr("CACHE_BYPASS_COOKIE", "gigbook_flash"),
	}
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
