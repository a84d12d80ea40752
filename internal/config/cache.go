package config

import (
	"strconv"
	"time"
)

// CacheConfig drives the Redis response cache in front of the public movie
// catalog.  KeyStrategy picks which request parts feed the cache key; the
// concrete request path always contributes, so parameterized routes never
// share entries.  MaxBodyBytes caps the stored response size (0 disables
// the cap).
type CacheConfig struct {
	Enabled      bool
	TTL          time.Duration
	KeyStrategy  string // "path", "path_query" (default), "method_path_query"
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig builds the cache configuration from environment
// variables, with defaults suitable for the catalog endpoints.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      getenv("CACHE_ENABLED", "true") == "true",
		TTL:          parseDur(getenv("CACHE_TTL", "30s")),
		KeyStrategy:  getenv("CACHE_KEY_STRATEGY", "path_query"),
		Prefix:       getenv("CACHE_PREFIX", "videoclub:cache"),
		MaxBodyBytes: atoi(getenv("CACHE_MAX_BODY_BYTES", "1048576")),
	}
}

func atoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Second
	}
	return d
}
