package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/courseview-backend/internal/data/repos"
	types "github.com/yungbote/courseview-backend/internal/domain"
	"github.com/yungbote/courseview-backend/internal/platform/logger"
)

type AnnouncementService interface {
	ListAvailable(ctx context.Context) ([]*types.Announcement, error)
}

type announcementService struct {
	db            *gorm.DB
	log           *logger.Logger
	announcements repos.AnnouncementRepo
}

func NewAnnouncementService(db *gorm.DB, baseLog *logger.Logger, announcements repos.AnnouncementRepo) AnnouncementService {
	return &announcementService{
		db:            db,
		log:           baseLog.With("service", "AnnouncementService"),
		announcements: announcements,
	}
}

func (s *announcementService) ListAvailable(ctx context.Context) ([]*types.Announcement, error) {
	return s.announcements.ListAvailable(ctx, nil)
}
