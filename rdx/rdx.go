package rdx

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

// Init connects to Redis using REDIS_ADDR / REDIS_PASSWORD. The cache is
// optional: when Redis is unreachable Conn stays nil and callers fall back
// to uncached upstream fetches.
func Init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Println("Redis unavailable, catalog caching disabled:", err)
		return
	}
	Conn = client
}

// Close releases the connection if one was established.
func Close() {
	if Conn != nil {
		if err := Conn.Close(); err != nil {
			log.Println("Redis close error:", err)
		}
	}
}
