// Package service holds the favorites business rules between HTTP handlers and storage.
package service

import (
	"context"
	"time"

	"github.com/blockedby/starred-jobs/internal/apperror"
	"github.com/blockedby/starred-jobs/internal/logger"
	"github.com/blockedby/starred-jobs/internal/models"
)

// DefaultUserID is the acting user when a request names none.
const DefaultUserID = 1

// Favorite event types.
const (
	EventFavoriteAdded   = "favorite.added"
	EventFavoriteRemoved = "favorite.removed"
)

// FavoriteEvent is emitted after a favorite is stored or removed.
type FavoriteEvent struct {
	Type       string    `json:"type"`
	UserID     int       `json:"userId"`
	JobID      int       `json:"jobId"`
	OccurredAt time.Time `json:"occurredAt"`
}

// EventPublisher receives favorite events. Failures are logged, never returned to callers.
type EventPublisher interface {
	PublishFavorite(ctx context.Context, event FavoriteEvent) error
}

// FavoritesStore is the storage the service needs.
type FavoritesStore interface {
	ListByUser(ctx context.Context, userID int) ([]models.Favorite, error)
	Exists(ctx context.Context, userID, jobID int) (bool, error)
	Create(ctx context.Context, userID, jobID int) (*models.Favorite, error)
	Delete(ctx context.Context, userID, jobID int) (bool, error)
}

// FavoritesService manages per-user favorites.
type FavoritesService struct {
	store      FavoritesStore
	publishers []EventPublisher
	now        func() time.Time
}

// NewFavoritesService creates a new FavoritesService. Nil publishers are skipped.
func NewFavoritesService(store FavoritesStore, publishers ...EventPublisher) *FavoritesService {
	s := &FavoritesService{store: store, now: time.Now}
	for _, p := range publishers {
		if p != nil {
			s.publishers = append(s.publishers, p)
		}
	}
	return s
}

// JobIDs returns the ids of the user's favorited jobs, newest first.
func (s *FavoritesService) JobIDs(ctx context.Context, userID int) ([]int, error) {
	favs, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(favs))
	for _, f := range favs {
		ids = append(ids, f.JobID)
	}
	return ids, nil
}

// IsFavorited reports whether the user favorited jobID.
func (s *FavoritesService) IsFavorited(ctx context.Context, userID, jobID int) (bool, error) {
	return s.store.Exists(ctx, userID, jobID)
}

// Add favorites jobID for the user. Adding twice is not an error.
func (s *FavoritesService) Add(ctx context.Context, userID, jobID int) (*models.Favorite, error) {
	if jobID <= 0 {
		return nil, apperror.Validation("jobId is required and must be a number")
	}

	fav, err := s.store.Create(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, EventFavoriteAdded, userID, jobID)
	return fav, nil
}

// Remove unfavorites jobID for the user.
func (s *FavoritesService) Remove(ctx context.Context, userID, jobID int) error {
	deleted, err := s.store.Delete(ctx, userID, jobID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NotFound("Favorite not found")
	}

	s.publish(ctx, EventFavoriteRemoved, userID, jobID)
	return nil
}

func (s *FavoritesService) publish(ctx context.Context, eventType string, userID, jobID int) {
	event := FavoriteEvent{
		Type:       eventType,
		UserID:     userID,
		JobID:      jobID,
		OccurredAt: s.now().UTC(),
	}
	for _, p := range s.publishers {
		if err := p.PublishFavorite(ctx, event); err != nil {
			logger.Component("favorites").Warn().Err(err).
				Str("event", eventType).
				Int("user_id", userID).
				Int("job_id", jobID).
				Msg("failed to publish favorite event")
		}
	}
}
