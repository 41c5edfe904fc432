package repos

import (
	"context"

	"github.com/google/uuid"
	types "github.com/yungbote/courseview-backend/internal/domain"
	"github.com/yungbote/courseview-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type EnrollCourseRepo interface {
	Create(ctx context.Context, tx *gorm.DB, enrolls []*types.EnrollCourse) ([]*types.EnrollCourse, error)
	GetByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]*types.EnrollCourse, error)
	GetByUserAndSemester(ctx context.Context, tx *gorm.DB, userID uuid.UUID, semesterID *uuid.UUID) ([]*types.EnrollCourse, error)
	RepointCourse(ctx context.Context, tx *gorm.DB, fromCourseID, toCourseID uuid.UUID) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, enrollIDs []uuid.UUID) error
	DeleteForUserSemesterNotIn(ctx context.Context, tx *gorm.DB, userID uuid.UUID, semesterID *uuid.UUID, keepCourseIDs []uuid.UUID) error
}

type enrollCourseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEnrollCourseRepo(db *gorm.DB, baseLog *logger.Logger) EnrollCourseRepo {
	repoLog := baseLog.With("repo", "EnrollCourseRepo")
	return &enrollCourseRepo{db: db, log: repoLog}
}

func (r *enrollCourseRepo) Create(ctx context.Context, tx *gorm.DB, enrolls []*types.EnrollCourse) ([]*types.EnrollCourse, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(enrolls) == 0 {
		return []*types.EnrollCourse{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&enrolls).Error; err != nil {
		return nil, err
	}
	return enrolls, nil
}

func (r *enrollCourseRepo) GetByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]*types.EnrollCourse, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.EnrollCourse
	if len(courseIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("course_id IN ?", courseIDs).
		Order("id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *enrollCourseRepo) GetByUserAndSemester(ctx context.Context, tx *gorm.DB, userID uuid.UUID, semesterID *uuid.UUID) ([]*types.EnrollCourse, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	query := transaction.WithContext(ctx).Where("user_id = ?", userID)
	if semesterID == nil {
		query = query.Where("semester_id IS NULL")
	} else {
		query = query.Where("semester_id = ?", *semesterID)
	}

	var results []*types.EnrollCourse
	if err := query.Order("id").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *enrollCourseRepo) RepointCourse(ctx context.Context, tx *gorm.DB, fromCourseID, toCourseID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Model(&types.EnrollCourse{}).
		Where("course_id = ?", fromCourseID).
		Update("course_id", toCourseID).Error; err != nil {
		return err
	}
	return nil
}

func (r *enrollCourseRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, enrollIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(enrollIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", enrollIDs).
		Delete(&types.EnrollCourse{}).Error; err != nil {
		return err
	}
	return nil
}

func (r *enrollCourseRepo) DeleteForUserSemesterNotIn(ctx context.Context, tx *gorm.DB, userID uuid.UUID, semesterID *uuid.UUID, keepCourseIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	query := transaction.WithContext(ctx).Where("user_id = ?", userID)
	if semesterID == nil {
		query = query.Where("semester_id IS NULL")
	} else {
		query = query.Where("semester_id = ?", *semesterID)
	}
	if len(keepCourseIDs) > 0 {
		query = query.Where("course_id NOT IN ?", keepCourseIDs)
	}

	if err := query.Delete(&types.EnrollCourse{}).Error; err != nil {
		return err
	}
	return nil
}
