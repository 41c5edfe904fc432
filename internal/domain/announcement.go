package domain

import (
	"time"

	"github.com/google/uuid"
)

type Announcement struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"column:title;not null" json:"title"`
	Message   string    `gorm:"column:message;type:text" json:"message"`
	URL       string    `gorm:"column:url" json:"url,omitempty"`
	Available bool      `gorm:"column:available;not null;default:true;index" json:"available"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Announcement) TableName() string { return "announcement" }
