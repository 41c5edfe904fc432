package repos

import (
	"context"

	types "github.com/yungbote/courseview-backend/internal/domain"
	"github.com/yungbote/courseview-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type AdminOpLogRepo interface {
	Create(ctx context.Context, tx *gorm.DB, entries []*types.AdminOpLog) ([]*types.AdminOpLog, error)
	ListByOps(ctx context.Context, tx *gorm.DB, ops []string) ([]*types.AdminOpLog, error)
}

type adminOpLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAdminOpLogRepo(db *gorm.DB, baseLog *logger.Logger) AdminOpLogRepo {
	repoLog := baseLog.With("repo", "AdminOpLogRepo")
	return &adminOpLogRepo{db: db, log: repoLog}
}

func (r *adminOpLogRepo) Create(ctx context.Context, tx *gorm.DB, entries []*types.AdminOpLog) ([]*types.AdminOpLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(entries) == 0 {
		return []*types.AdminOpLog{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *adminOpLogRepo) ListByOps(ctx context.Context, tx *gorm.DB, ops []string) ([]*types.AdminOpLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.AdminOpLog
	if len(ops) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("op IN ?", ops).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
