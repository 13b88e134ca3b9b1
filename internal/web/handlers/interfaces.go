package handlers

import (
	"context"

	"github.com/blockedby/starred-jobs/internal/models"
)

// FavoritesService defines the favorites operations the handler needs
type FavoritesService interface {
	JobIDs(ctx context.Context, userID int) ([]int, error)
	Add(ctx context.Context, userID, jobID int) (*models.Favorite, error)
	Remove(ctx context.Context, userID, jobID int) error
}

// UsersRepository defines interface for users data access
type UsersRepository interface {
	List(ctx context.Context) ([]models.User, error)
}
