package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ManuelReschke/CallPlanner/internal/pkg/env"
	"github.com/ManuelReschke/CallPlanner/internal/pkg/logging"
)

var client *redis.Client

// Enabled reports whether a Redis cache is configured (CACHE_ENABLED).
func Enabled() bool {
	return env.GetEnvBool("CACHE_ENABLED", false)
}

// SetupCache initializes the connection to the Redis cache server
func SetupCache() {
	client = redis.NewClient(&redis.Options{
		Addr:     Addr(),
		Password: env.GetEnv("CACHE_PASSWORD", ""),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	log := logging.L()
	pong, err := client.Ping(ctx).Result()
	if err != nil {
		log.Warn("Could not connect to cache", zap.String("addr", Addr()), zap.Error(err))
	} else {
		log.Info("Connected to cache", zap.String("addr", Addr()), zap.String("reply", pong))
	}
}

// Addr returns host:port of the configured cache.
func Addr() string {
	return fmt.Sprintf("%s:%s", Host(), env.GetEnv("CACHE_PORT", "6379"))
}

// Host returns the configured cache host.
func Host() string {
	return env.GetEnv("CACHE_HOST", "localhost")
}

// Port returns the configured cache port.
func Port() int {
	return env.GetEnvInt("CACHE_PORT", 6379)
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	if client == nil {
		SetupCache()
	}
	return client
}
