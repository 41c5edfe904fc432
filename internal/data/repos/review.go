package repos

import (
	"context"

	"github.com/google/uuid"
	types "github.com/yungbote/courseview-backend/internal/domain"
	"github.com/yungbote/courseview-backend/internal/platform/logger"
	"gorm.io/gorm"
)

// DateCount is a (calendar day, row count) pair used by time-series queries.
type DateCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type ReviewRepo interface {
	Create(ctx context.Context, tx *gorm.DB, reviews []*types.Review) ([]*types.Review, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, reviewIDs []uuid.UUID) ([]*types.Review, error)
	GetByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]*types.Review, error)
	RepointCourse(ctx context.Context, tx *gorm.DB, fromCourseID, toCourseID uuid.UUID) error
	CountAndAvgByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (int64, *float64, error)
	UpdateActionAggregates(ctx context.Context, tx *gorm.DB, reviewID uuid.UUID, approve, disapprove int64) error
	ListIDs(ctx context.Context, tx *gorm.DB) ([]uuid.UUID, error)
	CountAll(ctx context.Context, tx *gorm.DB) (int64, error)
	CreatedPerDay(ctx context.Context, tx *gorm.DB) ([]DateCount, error)
	RatingDistribution(ctx context.Context, tx *gorm.DB) ([]ValueCount, error)
}

type reviewRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReviewRepo(db *gorm.DB, baseLog *logger.Logger) ReviewRepo {
	repoLog := baseLog.With("repo", "ReviewRepo")
	return &reviewRepo{db: db, log: repoLog}
}

func (r *reviewRepo) Create(ctx context.Context, tx *gorm.DB, reviews []*types.Review) ([]*types.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(reviews) == 0 {
		return []*types.Review{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepo) GetByIDs(ctx context.Context, tx *gorm.DB, reviewIDs []uuid.UUID) ([]*types.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Review
	if len(reviewIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", reviewIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *reviewRepo) GetByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]*types.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Review
	if len(courseIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("course_id IN ?", courseIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *reviewRepo) RepointCourse(ctx context.Context, tx *gorm.DB, fromCourseID, toCourseID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Model(&types.Review{}).
		Where("course_id = ?", fromCourseID).
		Update("course_id", toCourseID).Error; err != nil {
		return err
	}
	return nil
}

func (r *reviewRepo) CountAndAvgByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (int64, *float64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var row struct {
		Count int64
		Avg   *float64
	}
	if err := transaction.WithContext(ctx).
		Model(&types.Review{}).
		Select("COUNT(*) AS count, AVG(rating) AS avg").
		Where("course_id = ?", courseID).
		Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return row.Count, row.Avg, nil
}

func (r *reviewRepo) UpdateActionAggregates(ctx context.Context, tx *gorm.DB, reviewID uuid.UUID, approve, disapprove int64) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	updates := map[string]any{
		"approve_count":    approve,
		"disapprove_count": disapprove,
	}
	if err := transaction.WithContext(ctx).
		Model(&types.Review{}).
		Where("id = ?", reviewID).
		Updates(updates).Error; err != nil {
		return err
	}
	return nil
}

func (r *reviewRepo) ListIDs(ctx context.Context, tx *gorm.DB) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var ids []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.Review{}).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *reviewRepo) CountAll(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Review{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *reviewRepo) CreatedPerDay(ctx context.Context, tx *gorm.DB) ([]DateCount, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []DateCount
	if err := transaction.WithContext(ctx).
		Model(&types.Review{}).
		Select("DATE(created_at) AS date, COUNT(*) AS count").
		Group("DATE(created_at)").
		Order("date").
		Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *reviewRepo) RatingDistribution(ctx context.Context, tx *gorm.DB) ([]ValueCount, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []ValueCount
	if err := transaction.WithContext(ctx).
		Model(&types.Review{}).
		Select("rating AS value, COUNT(*) AS count").
		Group("rating").
		Order("value").
		Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
