// Package redis dials the stream broker with bounded retries so consumers
// can start before the broker finishes booting.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func ConnectRedis(ctx context.Context, addr string, password string, maxRetries int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:            addr,
		Password:        password,
		DB:              0,
		MaxRetries:      3,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     3 * time.Second,
		WriteTimeout:    3 * time.Second,
	})

	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		log.Info().Str("addr", addr).Int("attempt", attempt).Int("max_retries", maxRetries).Msg("Dialing Redis")

		if err = client.Ping(ctx).Err(); err == nil {
			log.Info().Int("attempts", attempt).Msg("Redis connection established")
			return client, nil
		}
		log.Warn().Err(err).Int("attempt", attempt).Msg("Redis not reachable yet")

		if attempt < maxRetries {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			log.Info().Dur("backoff", backoff).Msg("Backing off before the next attempt")
			time.Sleep(backoff)
		}
	}

	return nil, fmt.Errorf("redis unreachable at %s after %d attempts: %w", addr, maxRetries, err)
}
