package pubsub

//go:generate go run go.uber.org/mock/mockgen -source=./pubsub.go -destination=./mocks/pubsub_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Broker is a minimal publish/subscribe fan-out used for the live alert
// feed. Every backend instance publishes change signals; every subscriber
// re-reads its snapshot on each signal.
type Broker interface {
	Publish(ctx context.Context, channel, payload string) error

	// Subscribe delivers payloads published on the channel until the
	// returned cancel function is called or the context is done. The
	// message channel is closed on teardown.
	Subscribe(ctx context.Context, channel string) (<-chan string, func())
}

type redisBroker struct {
	client *redis.Client
}

func NewRedisBroker(client *redis.Client) Broker {
	return &redisBroker{
		client: client,
	}
}

func (b *redisBroker) Publish(ctx context.Context, channel, payload string) error {
	if err := b.client.Publish(ctx, channel, payload).Err(); err != nil {
		log.Error().Err(err).Str("channel", channel).Msg("failed to publish message")

		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}

func (b *redisBroker) Subscribe(ctx context.Context, channel string) (<-chan string, func()) {
	ctx, cancel := context.WithCancel(ctx)

	sub := b.client.Subscribe(ctx, channel)
	out := make(chan string, 1)

	go func() {
		defer close(out)

		for {
			select {
			case <-ctx.Done():
				if err := sub.Close(); err != nil {
					log.Error().Err(err).Str("channel", channel).Msg("failed to close subscription")
				}

				return
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}

				select {
				case out <- msg.Payload:
				case <-ctx.Done():
				}
			}
		}
	}()

	return out, cancel
}
