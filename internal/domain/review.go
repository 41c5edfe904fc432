package domain

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	CourseID uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	Course   *Course   `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`

	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User   *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`

	SemesterID *uuid.UUID `gorm:"type:uuid;index" json:"semester_id,omitempty"`
	Semester   *Semester  `gorm:"constraint:OnDelete:SET NULL;foreignKey:SemesterID;references:ID" json:"semester,omitempty"`

	Rating  int    `gorm:"column:rating;not null" json:"rating"`
	Comment string `gorm:"column:comment;type:text" json:"comment"`

	// Derived from Action rows; written only by aggregate recomputation.
	ApproveCount    int `gorm:"column:approve_count;not null;default:0" json:"approve_count"`
	DisapproveCount int `gorm:"column:disapprove_count;not null;default:0" json:"disapprove_count"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Review) TableName() string { return "review" }

const (
	ActionApprove    = 1
	ActionDisapprove = -1
)

// Action is a user's approve/disapprove reaction to a review.
type Action struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ReviewID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:ux_action_review_user" json:"review_id"`
	Review   *Review   `gorm:"constraint:OnDelete:CASCADE;foreignKey:ReviewID;references:ID" json:"review,omitempty"`

	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_action_review_user" json:"user_id"`
	User   *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`

	Action int `gorm:"column:action;not null" json:"action"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Action) TableName() string { return "action" }
