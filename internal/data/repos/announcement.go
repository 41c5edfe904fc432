package repos

import (
	"context"

	types "github.com/yungbote/courseview-backend/internal/domain"
	"github.com/yungbote/courseview-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type AnnouncementRepo interface {
	Create(ctx context.Context, tx *gorm.DB, announcements []*types.Announcement) ([]*types.Announcement, error)
	ListAvailable(ctx context.Context, tx *gorm.DB) ([]*types.Announcement, error)
}

type announcementRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAnnouncementRepo(db *gorm.DB, baseLog *logger.Logger) AnnouncementRepo {
	repoLog := baseLog.With("repo", "AnnouncementRepo")
	return &announcementRepo{db: db, log: repoLog}
}

func (r *announcementRepo) Create(ctx context.Context, tx *gorm.DB, announcements []*types.Announcement) ([]*types.Announcement, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(announcements) == 0 {
		return []*types.Announcement{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&announcements).Error; err != nil {
		return nil, err
	}
	return announcements, nil
}

func (r *announcementRepo) ListAvailable(ctx context.Context, tx *gorm.DB) ([]*types.Announcement, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Announcement
	if err := transaction.WithContext(ctx).
		Where("available = ?", true).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
