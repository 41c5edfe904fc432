package domain

import "github.com/google/uuid"

type Teacher struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	// External personnel id from the upstream academic system. A teacher
	// created from review input alone has no confirmed external id yet.
	Tid *string `gorm:"column:tid;index" json:"tid,omitempty"`

	Name       string `gorm:"column:name;not null;index" json:"name"`
	Title      string `gorm:"column:title" json:"title,omitempty"`
	Department string `gorm:"column:department" json:"department,omitempty"`
}

func (Teacher) TableName() string { return "teacher" }
