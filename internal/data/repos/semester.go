package repos

import (
	"context"

	types "github.com/yungbote/courseview-backend/internal/domain"
	"github.com/yungbote/courseview-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type SemesterRepo interface {
	Create(ctx context.Context, tx *gorm.DB, semesters []*types.Semester) ([]*types.Semester, error)
	GetByNames(ctx context.Context, tx *gorm.DB, names []string) ([]*types.Semester, error)
}

type semesterRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSemesterRepo(db *gorm.DB, baseLog *logger.Logger) SemesterRepo {
	repoLog := baseLog.With("repo", "SemesterRepo")
	return &semesterRepo{db: db, log: repoLog}
}

func (r *semesterRepo) Create(ctx context.Context, tx *gorm.DB, semesters []*types.Semester) ([]*types.Semester, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(semesters) == 0 {
		return []*types.Semester{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&semesters).Error; err != nil {
		return nil, err
	}
	return semesters, nil
}

func (r *semesterRepo) GetByNames(ctx context.Context, tx *gorm.DB, names []string) ([]*types.Semester, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Semester
	if len(names) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("name IN ?", names).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
