package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/blockedby/starred-jobs/internal/models"
)

// FavoritesRepository handles favorites table operations
type FavoritesRepository struct {
	db *gorm.DB
}

// NewFavoritesRepository creates a new favorites repository
func NewFavoritesRepository(db *gorm.DB) *FavoritesRepository {
	return &FavoritesRepository{db: db}
}

// ListByUser returns the user's favorites, newest first.
func (r *FavoritesRepository) ListByUser(ctx context.Context, userID int) ([]models.Favorite, error) {
	var favs []models.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&favs).Error
	if err != nil {
		return nil, classify(err, "Failed to fetch favorites")
	}
	return favs, nil
}

// Exists checks if jobID is favorited by userID.
func (r *FavoritesRepository) Exists(ctx context.Context, userID, jobID int) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		Count(&n).Error
	if err != nil {
		return false, classify(err, "Failed to check favorite")
	}
	return n > 0, nil
}

// Create adds a favorite. A duplicate is ignored and the existing row returned.
func (r *FavoritesRepository) Create(ctx context.Context, userID, jobID int) (*models.Favorite, error) {
	fav := models.Favorite{UserID: userID, JobID: jobID}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&fav)
	if res.Error != nil {
		return nil, classify(res.Error, "Failed to add favorite")
	}

	if res.RowsAffected == 0 {
		var existing models.Favorite
		err := r.db.WithContext(ctx).
			Where("user_id = ? AND job_id = ?", userID, jobID).
			First(&existing).Error
		if err != nil {
			return nil, classify(err, "Failed to add favorite")
		}
		return &existing, nil
	}

	return &fav, nil
}

// Delete removes a favorite. It reports whether a row was removed.
func (r *FavoritesRepository) Delete(ctx context.Context, userID, jobID int) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		Delete(&models.Favorite{})
	if res.Error != nil {
		return false, classify(res.Error, "Failed to remove favorite")
	}
	return res.RowsAffected > 0, nil
}
