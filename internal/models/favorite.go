package models

import "time"

// Favorite links a user to a catalog job id.
type Favorite struct {
	ID        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    int       `json:"userId" gorm:"column:user_id;not null;uniqueIndex:idx_favorites_user_job"`
	JobID     int       `json:"jobId" gorm:"column:job_id;not null;uniqueIndex:idx_favorites_user_job"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`

	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName pins the table name.
func (Favorite) TableName() string { return "favorites" }
