package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/blockedby/starred-jobs/internal/models"
)

// UsersRepository handles users table operations
type UsersRepository struct {
	db *gorm.DB
}

// NewUsersRepository creates a new users repository
func NewUsersRepository(db *gorm.DB) *UsersRepository {
	return &UsersRepository{db: db}
}

// List returns all users ordered by id.
func (r *UsersRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, classify(err, "Failed to fetch users")
	}
	return users, nil
}

// GetByID returns a single user.
func (r *UsersRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, classify(err, "User not found")
	}
	return &u, nil
}

// CreateBatch inserts users in one transaction.
func (r *UsersRepository) CreateBatch(ctx context.Context, users []models.User) error {
	if len(users) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&users).Error
	})
	return classify(err, "Failed to create users")
}
