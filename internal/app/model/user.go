package model

import "time"

// AdminUser is an account allowed to manage assets and read analytics.
type AdminUser struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Email          string    `json:"email" gorm:"size:255;not null;uniqueIndex"`
	HashedPassword string    `json:"-" gorm:"type:text;not null"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
}
