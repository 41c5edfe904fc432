package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	types "github.com/yungbote/courseview-backend/internal/domain"
	"gorm.io/gorm"
)

func PtrUUID(id uuid.UUID) *uuid.UUID { return &id }

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, username string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:       uuid.New(),
		Username: username,
		Email:    username + "@example.com",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedSemester(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Semester {
	tb.Helper()
	s := &types.Semester{
		ID:        uuid.New(),
		Name:      name,
		Available: true,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed semester: %v", err)
	}
	return s
}

func SeedTeacher(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Teacher {
	tb.Helper()
	t := &types.Teacher{
		ID:   uuid.New(),
		Name: name,
	}
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed teacher: %v", err)
	}
	return t
}

func SeedCourse(tb testing.TB, ctx context.Context, tx *gorm.DB, code, name string, teacherID uuid.UUID) *types.Course {
	tb.Helper()
	c := &types.Course{
		ID:            uuid.New(),
		Code:          code,
		Name:          name,
		MainTeacherID: teacherID,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return c
}

func SeedReview(tb testing.TB, ctx context.Context, tx *gorm.DB, courseID, userID uuid.UUID, rating int) *types.Review {
	tb.Helper()
	r := &types.Review{
		ID:       uuid.New(),
		CourseID: courseID,
		UserID:   userID,
		Rating:   rating,
		Comment:  "review",
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed review: %v", err)
	}
	return r
}

func SeedAction(tb testing.TB, ctx context.Context, tx *gorm.DB, reviewID, userID uuid.UUID, action int) *types.Action {
	tb.Helper()
	a := &types.Action{
		ID:       uuid.New(),
		ReviewID: reviewID,
		UserID:   userID,
		Action:   action,
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed action: %v", err)
	}
	return a
}

func SeedEnroll(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID, semesterID *uuid.UUID) *types.EnrollCourse {
	tb.Helper()
	e := &types.EnrollCourse{
		ID:         uuid.New(),
		UserID:     userID,
		CourseID:   courseID,
		SemesterID: semesterID,
	}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed enroll: %v", err)
	}
	return e
}

func SeedFormerCode(tb testing.TB, ctx context.Context, tx *gorm.DB, oldCode, newCode string) *types.FormerCode {
	tb.Helper()
	fc := &types.FormerCode{
		ID:      uuid.New(),
		OldCode: oldCode,
		NewCode: newCode,
	}
	if err := tx.WithContext(ctx).Create(fc).Error; err != nil {
		tb.Fatalf("seed former code: %v", err)
	}
	return fc
}
