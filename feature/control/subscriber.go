package control

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Target receives control message tags.
type Target interface {
	OnControlMessage(tag string)
}

// NewClient creates a Redis client from cfg.
func NewClient(cfg Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Subscriber forwards messages published on a Redis channel to a Target.
type Subscriber struct {
	client  *redis.Client
	channel string
	target  Target
	logger  *zap.Logger
}

// NewSubscriber creates a subscriber for cfg.Channel.
func NewSubscriber(client *redis.Client, cfg Config, target Target, logger *zap.Logger) *Subscriber {
	return &Subscriber{
		client:  client,
		channel: cfg.Channel,
		target:  target,
		logger:  logger,
	}
}

// Run subscribes and dispatches messages until ctx is done.
func (s *Subscriber) Run(ctx context.Context) error {
	pubsub := s.client.Subscribe(ctx, s.channel)
	defer pubsub.Close()

	// Wait for the subscription to be confirmed so a bad address fails fast.
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", s.channel, err)
	}
	s.logger.Info("Listening for control messages", zap.String("channel", s.channel))

	Dispatch(ctx, pubsub.Channel(), s.target, s.logger)
	return nil
}

// Dispatch delivers every message payload to target until ctx is done or messages
// is closed.
func Dispatch(ctx context.Context, messages <-chan *redis.Message, target Target, logger *zap.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			logger.Debug("Control message received", zap.String("channel", msg.Channel), zap.String("tag", msg.Payload))
			target.OnControlMessage(msg.Payload)
		}
	}
}

// Publish sends tag on the control channel and returns how many subscribers got it.
func Publish(ctx context.Context, client *redis.Client, channel, tag string) (int64, error) {
	n, err := client.Publish(ctx, channel, tag).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to publish %s on %s: %w", tag, channel, err)
	}
	return n, nil
}
