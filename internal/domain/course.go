package domain

import (
	"time"

	"github.com/google/uuid"
)

type Course struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	// Code is assigned by the upstream academic system and is NOT unique:
	// the same code can be re-issued across terms and teacher sections.
	Code string `gorm:"column:code;not null;index" json:"code"`

	Name       string  `gorm:"column:name;not null" json:"name"`
	Credit     float64 `gorm:"column:credit" json:"credit"`
	Department string  `gorm:"column:department" json:"department,omitempty"`

	MainTeacherID uuid.UUID `gorm:"type:uuid;not null;index" json:"main_teacher_id"`
	MainTeacher   *Teacher  `gorm:"constraint:OnDelete:CASCADE;foreignKey:MainTeacherID;references:ID" json:"main_teacher,omitempty"`

	// Derived fields. Written only by aggregate recomputation, never by
	// user-facing flows. ReviewAvg is nil while the course has no reviews.
	ReviewCount int      `gorm:"column:review_count;not null;default:0" json:"review_count"`
	ReviewAvg   *float64 `gorm:"column:review_avg" json:"review_avg,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Course) TableName() string { return "course" }

// FormerCode maps a historical course code to its current one. It is used to
// reconcile codes reported by the upstream system with internal records.
type FormerCode struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OldCode string    `gorm:"column:old_code;not null;uniqueIndex" json:"old_code"`
	NewCode string    `gorm:"column:new_code;not null;index" json:"new_code"`
}

func (FormerCode) TableName() string { return "former_code" }
