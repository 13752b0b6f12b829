package notify

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisNotifier publishes events to a Redis pub/sub channel.
type RedisNotifier struct {
	client  *redis.Client
	channel string
}

// NewRedisNotifier builds the publisher.
func NewRedisNotifier(client *redis.Client, channel string) (*RedisNotifier, error) {
	if client == nil {
		return nil, errors.New("notify: redis client is nil")
	}
	channel = strings.TrimSpace(channel)
	if channel == "" {
		return nil, errors.New("notify: channel is empty")
	}
	return &RedisNotifier{client: client, channel: channel}, nil
}

// Publish sends the JSON-encoded event.
func (n *RedisNotifier) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return n.client.Publish(ctx, n.channel, payload).Err()
}
