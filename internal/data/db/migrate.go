package db

import (
	types "github.com/yungbote/courseview-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(

		// =========================
		// Identity + terms
		// =========================
		&types.User{},
		&types.Semester{},

		// =========================
		// Catalog
		// =========================
		&types.Teacher{},
		&types.Course{},
		&types.FormerCode{},

		// =========================
		// Reviews + reactions
		// =========================
		&types.Review{},
		&types.Action{},

		// =========================
		// Enrollment
		// =========================
		&types.EnrollCourse{},

		// =========================
		// Site + audit
		// =========================
		&types.Announcement{},
		&types.AdminOpLog{},
	)
}
