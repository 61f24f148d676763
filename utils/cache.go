package utils

import (
	"context"
	"log"
	"time"

	"voicebook/config"

	"github.com/go-redis/redis/v8"
)

// EventClient is the Redis client used for the frontend event channel.
var EventClient *redis.Client

// InitEventClient initializes the Redis client backing event publishing.
func InitEventClient() {
	EventClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisEventDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := EventClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (events): %v", err)
	}
}

// GetEventClient returns the event channel Redis client.
func GetEventClient() *redis.Client {
	if EventClient == nil {
		InitEventClient()
	}
	return EventClient
}
