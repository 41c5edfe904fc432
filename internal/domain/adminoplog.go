package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AdminOpLog is an audit row appended for every administrative merge or
// code-replacement operation.
type AdminOpLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    *uuid.UUID     `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Op        string         `gorm:"column:op;not null;index" json:"op"`
	Detail    datatypes.JSON `gorm:"column:detail;type:jsonb" json:"detail"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
}

func (AdminOpLog) TableName() string { return "admin_op_log" }
