package repos

import (
	"context"

	types "github.com/yungbote/courseview-backend/internal/domain"
	"github.com/yungbote/courseview-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type FormerCodeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, codes []*types.FormerCode) ([]*types.FormerCode, error)
	GetByOldCodes(ctx context.Context, tx *gorm.DB, oldCodes []string) ([]*types.FormerCode, error)
}

type formerCodeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFormerCodeRepo(db *gorm.DB, baseLog *logger.Logger) FormerCodeRepo {
	repoLog := baseLog.With("repo", "FormerCodeRepo")
	return &formerCodeRepo{db: db, log: repoLog}
}

func (r *formerCodeRepo) Create(ctx context.Context, tx *gorm.DB, codes []*types.FormerCode) ([]*types.FormerCode, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(codes) == 0 {
		return []*types.FormerCode{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

func (r *formerCodeRepo) GetByOldCodes(ctx context.Context, tx *gorm.DB, oldCodes []string) ([]*types.FormerCode, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.FormerCode
	if len(oldCodes) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("old_code IN ?", oldCodes).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
