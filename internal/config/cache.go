package config

import (
    "os"
    "strconv"
    "time"
)

// StatsCacheConfig drives the response cache in front of the stats
// endpoint.  Seat status is never cached (its whole point is a fresh
// derivation), so the cache deliberately covers only the dashboard
// aggregates, which tolerate a few seconds of staleness.  With no
// Redis client the middleware is a no-op regardless of Enabled.
type StatsCacheConfig struct {
    Enabled      bool
    TTL          time.Duration
    Prefix       string
    MaxBodyBytes int
}

// LoadStatsCacheConfig reads environment variables to build a
// StatsCacheConfig.  Defaults apply when variables are not set.
func LoadStatsCacheConfig() StatsCacheConfig {
    return StatsCacheConfig{
        Enabled:      getenv("STATS_CACHE_ENABLED", "true") == "true",
        TTL:          parseDur(getenv("STATS_CACHE_TTL", "15s")),
        Prefix:       getenv("STATS_CACHE_PREFIX", "stats"),
        MaxBodyBytes: atoi(getenv("STATS_CACHE_MAX_BODY_BYTES", "262144")),
    }
}

// Helper functions shared with config.go and ratelimit.go.
func getenv(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
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
