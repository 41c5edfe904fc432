package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/courseview-backend/internal/data/repos"
	types "github.com/yungbote/courseview-backend/internal/domain"
	domainagg "github.com/yungbote/courseview-backend/internal/domain/aggregates"
	"github.com/yungbote/courseview-backend/internal/platform/logger"
)

// AdminService fronts the catalog merge operations for the admin API and
// appends an audit row for every attempt, successful or not.
type AdminService interface {
	MergeCourse(ctx context.Context, actorID uuid.UUID, oldID, newID uuid.UUID) (bool, error)
	MergeTeacher(ctx context.Context, actorID uuid.UUID, oldID, newID uuid.UUID) (bool, error)
	ReplaceCourseCode(ctx context.Context, actorID uuid.UUID, oldCode, newCode string) error
	RecomputeAggregates(ctx context.Context, actorID uuid.UUID) error
}

type adminService struct {
	db      *gorm.DB
	log     *logger.Logger
	catalog domainagg.CatalogAggregate
	opLogs  repos.AdminOpLogRepo
}

func NewAdminService(
	db *gorm.DB,
	baseLog *logger.Logger,
	catalog domainagg.CatalogAggregate,
	opLogs repos.AdminOpLogRepo,
) AdminService {
	return &adminService{
		db:      db,
		log:     baseLog.With("service", "AdminService"),
		catalog: catalog,
		opLogs:  opLogs,
	}
}

func (s *adminService) MergeCourse(ctx context.Context, actorID uuid.UUID, oldID, newID uuid.UUID) (bool, error) {
	merged, err := s.catalog.MergeCourseByID(ctx, oldID, newID)
	s.appendOpLog(ctx, actorID, "course.merge", map[string]any{
		"old_id": oldID,
		"new_id": newID,
		"merged": merged,
	}, err)
	return merged, err
}

func (s *adminService) MergeTeacher(ctx context.Context, actorID uuid.UUID, oldID, newID uuid.UUID) (bool, error) {
	merged, err := s.catalog.MergeTeacherByID(ctx, oldID, newID)
	s.appendOpLog(ctx, actorID, "teacher.merge", map[string]any{
		"old_id": oldID,
		"new_id": newID,
		"merged": merged,
	}, err)
	return merged, err
}

func (s *adminService) ReplaceCourseCode(ctx context.Context, actorID uuid.UUID, oldCode, newCode string) error {
	err := s.catalog.ReplaceCourseCodeMulti(ctx, oldCode, newCode)
	s.appendOpLog(ctx, actorID, "course.replace_code", map[string]any{
		"old_code": oldCode,
		"new_code": newCode,
	}, err)
	return err
}

func (s *adminService) RecomputeAggregates(ctx context.Context, actorID uuid.UUID) error {
	err := s.catalog.RecomputeAll(ctx)
	s.appendOpLog(ctx, actorID, "aggregates.recompute", map[string]any{}, err)
	return err
}

// appendOpLog records the attempt outside the operation's transaction so the
// audit trail also covers rejected and failed operations.
func (s *adminService) appendOpLog(ctx context.Context, actorID uuid.UUID, op string, detail map[string]any, opErr error) {
	if opErr != nil {
		detail["error"] = opErr.Error()
		detail["error_code"] = string(domainagg.CodeOf(opErr))
	}
	raw, err := json.Marshal(detail)
	if err != nil {
		s.log.Error("marshal op log detail", "op", op, "error", err)
		return
	}

	var userID *uuid.UUID
	if actorID != uuid.Nil {
		userID = &actorID
	}
	entry := &types.AdminOpLog{
		ID:        uuid.New(),
		UserID:    userID,
		Op:        op,
		Detail:    datatypes.JSON(raw),
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.opLogs.Create(ctx, nil, []*types.AdminOpLog{entry}); err != nil {
		s.log.Error("append op log", "op", op, "error", err)
	}
}
