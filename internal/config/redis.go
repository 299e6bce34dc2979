package config

// Redis backs the rate limiter and the stats response cache.  Both
// are conveniences, not correctness features, so when no server is
// reachable the client is nil and callers disable themselves.

import (
    "context"
    "os"
    "strconv"
    "time"

    "github.com/redis/go-redis/v9"
    "github.com/rs/zerolog/log"
)

// NewRedisClient connects using REDIS_ADDR (default "localhost:6379"),
// REDIS_PASSWORD and REDIS_DB.  It pings with a short timeout and
// returns nil when the server does not answer, which switches the
// limiter and the cache off for this process.
func NewRedisClient() *redis.Client {
    addr := getenv("REDIS_ADDR", "localhost:6379")
    dbNum := 0
    if s := os.Getenv("REDIS_DB"); s != "" {
        if n, err := strconv.Atoi(s); err == nil {
            dbNum = n
        }
    }
    client := redis.NewClient(&redis.Options{
        Addr:     addr,
        Password: os.Getenv("REDIS_PASSWORD"),
        DB:       dbNum,
    })
    ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
    defer cancel()
    if err := client.Ping(ctx).Err(); err != nil {
        log.Warn().Err(err).Str("addr", addr).Msg("redis unreachable, cache and rate limiting disabled")
        return nil
    }
    return client
}
