package events

import (
	"context"

	"github.com/go-redis/redis/v8"
)

// RedisPublisher delivers events over Redis pub/sub. Redis preserves publish
// order per connection, which matches the per-session ordering guarantee.
type RedisPublisher struct {
	Client *redis.Client
}

// NewRedisPublisher wraps a Redis client as an event publisher.
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{Client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, channel string, payload []byte) error {
	return p.Client.Publish(ctx, channel, payload).Err()
}
