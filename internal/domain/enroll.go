package domain

import (
	"time"

	"github.com/google/uuid"
)

// EnrollCourse records that a user took a course in a given semester. The
// semester is nil when the upstream term name is unknown to us.
//
// At most one row may exist per (user, course, semester). The constraint is
// not enforced by the schema: course merges repoint rows first and collapse
// the resulting duplicates inside the same transaction.
type EnrollCourse struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User   *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`

	CourseID uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	Course   *Course   `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`

	SemesterID *uuid.UUID `gorm:"type:uuid;index" json:"semester_id,omitempty"`
	Semester   *Semester  `gorm:"constraint:OnDelete:SET NULL;foreignKey:SemesterID;references:ID" json:"semester,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (EnrollCourse) TableName() string { return "enroll_course" }
