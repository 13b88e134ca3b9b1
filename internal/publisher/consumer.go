package publisher

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/blockedby/starred-jobs/internal/service"
)

// NATSSubscriber is the consuming side of the nats client.
type NATSSubscriber interface {
	Subscribe(ctx context.Context, consumer, subject string, handler func(subject string, data []byte) error) (func(), error)
}

// Consumer tails favorite events from the stream.
type Consumer struct {
	client NATSSubscriber
	name   string
	sink   func(service.FavoriteEvent) error
	log    *zerolog.Logger
}

// NewConsumer creates a durable consumer called name that passes each event to sink.
func NewConsumer(client NATSSubscriber, name string, sink func(service.FavoriteEvent) error, log *zerolog.Logger) *Consumer {
	return &Consumer{
		client: client,
		name:   name,
		sink:   sink,
		log:    log,
	}
}

// Start subscribes to every favorite subject. The returned function stops it.
func (c *Consumer) Start(ctx context.Context) (func(), error) {
	c.log.Info().Str("consumer", c.name).Msg("starting favorite event consumer")
	return c.client.Subscribe(ctx, c.name, SubjectPrefix+">", c.handleMessage)
}

func (c *Consumer) handleMessage(subject string, data []byte) error {
	var event service.FavoriteEvent
	if err := json.Unmarshal(data, &event); err != nil {
		c.log.Error().Err(err).Str("subject", subject).Msg("invalid favorite event, skipping")
		return nil // ack poison messages
	}

	c.log.Debug().
		Str("subject", subject).
		Int("user_id", event.UserID).
		Int("job_id", event.JobID).
		Msg("received favorite event")

	return c.sink(event)
}
