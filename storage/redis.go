package storage

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
)

// TokenStore is the slice of the Redis API the refresh-token allow-list needs.
// Production wires the real client; tests may substitute an in-memory map.
type TokenStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

var Redis TokenStore

func InitializeRedis() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "localhost:6379"
		log.Println("REDIS_URL not set, using localhost:6379")
	}

	Redis = redis.NewClient(&redis.Options{
		Addr: redisURL,
	})
}
