package web

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/blockedby/starred-jobs/internal/service"
)

// WSEvent represents a structured WebSocket message
type WSEvent struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// FavoritePayload is the payload of favorite.added and favorite.removed.
type FavoritePayload struct {
	UserID int `json:"userId"`
	JobID  int `json:"jobId"`
}

// FavoriteEventJSON encodes a favorite event for websocket clients.
func FavoriteEventJSON(event service.FavoriteEvent) ([]byte, error) {
	return json.Marshal(WSEvent{
		Type:    event.Type,
		Payload: FavoritePayload{UserID: event.UserID, JobID: event.JobID},
	})
}

// PublishFavorite implements service.EventPublisher by broadcasting to clients.
func (h *Hub) PublishFavorite(_ context.Context, event service.FavoriteEvent) error {
	b, err := FavoriteEventJSON(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	h.Broadcast(b)
	return nil
}
