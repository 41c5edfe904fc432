package repos

import (
	"context"

	"github.com/google/uuid"
	types "github.com/yungbote/courseview-backend/internal/domain"
	"github.com/yungbote/courseview-backend/internal/platform/logger"
	"gorm.io/gorm"
)

// ValueCount is a (value, row count) pair used by distribution queries.
type ValueCount struct {
	Value int64 `json:"value"`
	Count int64 `json:"count"`
}

type CourseRepo interface {
	Create(ctx context.Context, tx *gorm.DB, courses []*types.Course) ([]*types.Course, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]*types.Course, error)
	GetByCodes(ctx context.Context, tx *gorm.DB, codes []string) ([]*types.Course, error)
	GetByCodesWithTeacher(ctx context.Context, tx *gorm.DB, codes []string) ([]*types.Course, error)
	GetByMainTeacherIDs(ctx context.Context, tx *gorm.DB, teacherIDs []uuid.UUID) ([]*types.Course, error)
	ListOrderedWithTeacher(ctx context.Context, tx *gorm.DB) ([]*types.Course, error)
	ListIDs(ctx context.Context, tx *gorm.DB) ([]uuid.UUID, error)
	UpdateCode(ctx context.Context, tx *gorm.DB, courseID uuid.UUID, code string) error
	UpdateMainTeacher(ctx context.Context, tx *gorm.DB, courseID, teacherID uuid.UUID) error
	UpdateReviewAggregates(ctx context.Context, tx *gorm.DB, courseID uuid.UUID, count int64, avg *float64) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) error
	CountAll(ctx context.Context, tx *gorm.DB) (int64, error)
	CountWithReviews(ctx context.Context, tx *gorm.DB) (int64, error)
	ReviewCountDistribution(ctx context.Context, tx *gorm.DB) ([]ValueCount, error)
	ReviewAvgDistribution(ctx context.Context, tx *gorm.DB) ([]ValueCount, error)
}

type courseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	repoLog := baseLog.With("repo", "CourseRepo")
	return &courseRepo{db: db, log: repoLog}
}

func (r *courseRepo) Create(ctx context.Context, tx *gorm.DB, courses []*types.Course) ([]*types.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(courses) == 0 {
		return []*types.Course{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepo) GetByIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]*types.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Course
	if len(courseIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", courseIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *courseRepo) GetByCodes(ctx context.Context, tx *gorm.DB, codes []string) ([]*types.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Course
	if len(codes) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("code IN ?", codes).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *courseRepo) GetByCodesWithTeacher(ctx context.Context, tx *gorm.DB, codes []string) ([]*types.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Course
	if len(codes) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("MainTeacher").
		Where("code IN ?", codes).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *courseRepo) GetByMainTeacherIDs(ctx context.Context, tx *gorm.DB, teacherIDs []uuid.UUID) ([]*types.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Course
	if len(teacherIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("main_teacher_id IN ?", teacherIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *courseRepo) ListOrderedWithTeacher(ctx context.Context, tx *gorm.DB) ([]*types.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Course
	if err := transaction.WithContext(ctx).
		Joins("MainTeacher").
		Order("course.code, \"MainTeacher\".name").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *courseRepo) ListIDs(ctx context.Context, tx *gorm.DB) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var ids []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.Course{}).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *courseRepo) UpdateCode(ctx context.Context, tx *gorm.DB, courseID uuid.UUID, code string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Model(&types.Course{}).
		Where("id = ?", courseID).
		Update("code", code).Error; err != nil {
		return err
	}
	return nil
}

func (r *courseRepo) UpdateMainTeacher(ctx context.Context, tx *gorm.DB, courseID, teacherID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Model(&types.Course{}).
		Where("id = ?", courseID).
		Update("main_teacher_id", teacherID).Error; err != nil {
		return err
	}
	return nil
}

func (r *courseRepo) UpdateReviewAggregates(ctx context.Context, tx *gorm.DB, courseID uuid.UUID, count int64, avg *float64) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	updates := map[string]any{
		"review_count": count,
		"review_avg":   avg,
	}
	if err := transaction.WithContext(ctx).
		Model(&types.Course{}).
		Where("id = ?", courseID).
		Updates(updates).Error; err != nil {
		return err
	}
	return nil
}

func (r *courseRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(courseIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", courseIDs).
		Delete(&types.Course{}).Error; err != nil {
		return err
	}
	return nil
}

func (r *courseRepo) CountAll(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Course{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *courseRepo) CountWithReviews(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Course{}).
		Where("review_count > 0").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *courseRepo) ReviewCountDistribution(ctx context.Context, tx *gorm.DB) ([]ValueCount, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []ValueCount
	if err := transaction.WithContext(ctx).
		Model(&types.Course{}).
		Select("review_count AS value, COUNT(*) AS count").
		Where("review_count > 0").
		Group("review_count").
		Order("value").
		Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *courseRepo) ReviewAvgDistribution(ctx context.Context, tx *gorm.DB) ([]ValueCount, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	// CAST instead of FLOOR so the same query runs on Postgres and SQLite;
	// review_avg is never negative.
	var results []ValueCount
	if err := transaction.WithContext(ctx).
		Model(&types.Course{}).
		Select("CAST(review_avg AS INTEGER) AS value, COUNT(*) AS count").
		Where("review_avg > 0").
		Group("CAST(review_avg AS INTEGER)").
		Order("value").
		Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
