package models

import (
	"time"
)

// Project is a single project record. IDs are store-assigned and immutable;
// listing order is always newest createdAt first.
type Project struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// ProjectUpdate carries a partial update. Nil fields are left untouched.
type ProjectUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}
