package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username  string    `gorm:"column:username;not null;uniqueIndex" json:"username"`
	Email     string    `gorm:"column:email" json:"email,omitempty"`
	IsAdmin   bool      `gorm:"column:is_admin;not null;default:false" json:"is_admin"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (User) TableName() string { return "user" }
