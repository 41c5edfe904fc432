package repos

import (
	"context"

	"github.com/google/uuid"
	types "github.com/yungbote/courseview-backend/internal/domain"
	"github.com/yungbote/courseview-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type TeacherRepo interface {
	Create(ctx context.Context, tx *gorm.DB, teachers []*types.Teacher) ([]*types.Teacher, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, teacherIDs []uuid.UUID) ([]*types.Teacher, error)
	GetByNames(ctx context.Context, tx *gorm.DB, names []string) ([]*types.Teacher, error)
	DeleteByIDs(ctx context.Context, tx *gorm.DB, teacherIDs []uuid.UUID) error
}

type teacherRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTeacherRepo(db *gorm.DB, baseLog *logger.Logger) TeacherRepo {
	repoLog := baseLog.With("repo", "TeacherRepo")
	return &teacherRepo{db: db, log: repoLog}
}

func (r *teacherRepo) Create(ctx context.Context, tx *gorm.DB, teachers []*types.Teacher) ([]*types.Teacher, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(teachers) == 0 {
		return []*types.Teacher{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&teachers).Error; err != nil {
		return nil, err
	}
	return teachers, nil
}

func (r *teacherRepo) GetByIDs(ctx context.Context, tx *gorm.DB, teacherIDs []uuid.UUID) ([]*types.Teacher, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Teacher
	if len(teacherIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", teacherIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *teacherRepo) GetByNames(ctx context.Context, tx *gorm.DB, names []string) ([]*types.Teacher, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Teacher
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

func (r *teacherRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, teacherIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(teacherIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", teacherIDs).
		Delete(&types.Teacher{}).Error; err != nil {
		return err
	}
	return nil
}
