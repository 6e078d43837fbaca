package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

// DefaultChannel is the pub/sub channel used when none is configured
const DefaultChannel = "menagerie:events"

// RedisNotifier publishes wake-up signals over Redis pub/sub so a resolver in
// another process picks up freshly committed events without waiting for its
// ticker.
type RedisNotifier struct {
	client  redis.UniversalClient
	channel string
}

// NewRedisNotifier creates a Redis-backed notifier
func NewRedisNotifier(client redis.UniversalClient, channel string) *RedisNotifier {
	if client == nil {
		panic("redis client is required")
	}
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisNotifier{client: client, channel: channel}
}

// Notify publishes one wake-up signal
func (n *RedisNotifier) Notify(ctx context.Context) error {
	if err := n.client.Publish(ctx, n.channel, "wake").Err(); err != nil {
		return fmt.Errorf("failed to publish wake-up: %w", err)
	}
	return nil
}

// RedisWaker subscribes to the notifier channel and forwards messages into a
// local debounced wake channel.
type RedisWaker struct {
	local  *Local
	pubsub *redis.PubSub
}

// NewRedisWaker subscribes and starts forwarding. Close stops it.
func NewRedisWaker(ctx context.Context, client redis.UniversalClient, channel string) *RedisWaker {
	if client == nil {
		panic("redis client is required")
	}
	if channel == "" {
		channel = DefaultChannel
	}

	w := &RedisWaker{
		local:  NewLocal(),
		pubsub: client.Subscribe(ctx, channel),
	}

	go func() {
		for range w.pubsub.Channel() {
			if err := w.local.Notify(ctx); err != nil {
				log.Printf("notify: forward wake-up: %v", err)
			}
		}
	}()

	return w
}

// Wake returns the debounced wake-up channel
func (w *RedisWaker) Wake() <-chan struct{} {
	return w.local.Wake()
}

// Close stops the subscription
func (w *RedisWaker) Close() error {
	return w.pubsub.Close()
}
