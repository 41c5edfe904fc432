package domain

import "github.com/google/uuid"

type Semester struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null;uniqueIndex" json:"name"`
	Available bool      `gorm:"column:available;not null;default:true" json:"available"`
}

func (Semester) TableName() string { return "semester" }
