package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/blockedby/starred-jobs/internal/service"
)

// SubjectPrefix is prepended to the event type to form the NATS subject.
const SubjectPrefix = "starred."

// NATSClient interface to allow mocking
type NATSClient interface {
	Publish(ctx context.Context, subject string, payload []byte) error
}

// NATSPublisher implements service.EventPublisher
type NATSPublisher struct {
	js NATSClient
}

// NewNATSPublisher creates a new publisher
func NewNATSPublisher(client NATSClient) *NATSPublisher {
	return &NATSPublisher{js: client}
}

// PublishFavorite publishes a favorite event on starred.<type>.
func (p *NATSPublisher) PublishFavorite(ctx context.Context, event service.FavoriteEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := p.js.Publish(ctx, SubjectPrefix+event.Type, data); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	return nil
}
