package repos

import (
	"context"

	"github.com/google/uuid"
	types "github.com/yungbote/courseview-backend/internal/domain"
	"github.com/yungbote/courseview-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type ActionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, actions []*types.Action) ([]*types.Action, error)
	GetByReviewIDs(ctx context.Context, tx *gorm.DB, reviewIDs []uuid.UUID) ([]*types.Action, error)
	CountByReviewID(ctx context.Context, tx *gorm.DB, reviewID uuid.UUID) (approve int64, disapprove int64, err error)
}

type actionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewActionRepo(db *gorm.DB, baseLog *logger.Logger) ActionRepo {
	repoLog := baseLog.With("repo", "ActionRepo")
	return &actionRepo{db: db, log: repoLog}
}

func (r *actionRepo) Create(ctx context.Context, tx *gorm.DB, actions []*types.Action) ([]*types.Action, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(actions) == 0 {
		return []*types.Action{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&actions).Error; err != nil {
		return nil, err
	}
	return actions, nil
}

func (r *actionRepo) GetByReviewIDs(ctx context.Context, tx *gorm.DB, reviewIDs []uuid.UUID) ([]*types.Action, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Action
	if len(reviewIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("review_id IN ?", reviewIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *actionRepo) CountByReviewID(ctx context.Context, tx *gorm.DB, reviewID uuid.UUID) (int64, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var approve int64
	if err := transaction.WithContext(ctx).
		Model(&types.Action{}).
		Where("review_id = ? AND action = ?", reviewID, types.ActionApprove).
		Count(&approve).Error; err != nil {
		return 0, 0, err
	}

	var disapprove int64
	if err := transaction.WithContext(ctx).
		Model(&types.Action{}).
		Where("review_id = ? AND action = ?", reviewID, types.ActionDisapprove).
		Count(&disapprove).Error; err != nil {
		return 0, 0, err
	}
	return approve, disapprove, nil
}
