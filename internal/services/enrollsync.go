package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/courseview-backend/internal/data/repos"
	types "github.com/yungbote/courseview-backend/internal/domain"
	"github.com/yungbote/courseview-backend/internal/platform/logger"
)

// LessonEntry is one course taken by the user in a term, as reported by the
// external academic system.
type LessonEntry struct {
	Code        string `json:"code"`
	TeacherName string `json:"teacher_name"`
}

// LessonClient fetches the user's lesson list for a term from the external
// academic system. One bounded network call per request.
type LessonClient interface {
	GetLessons(ctx context.Context, token, term string) ([]LessonEntry, error)
}

type EnrollSyncService interface {
	// SyncEnrollments reconciles the user's enrollments for a term with the
	// entries reported upstream, returning the resolved course ids.
	SyncEnrollments(ctx context.Context, userID uuid.UUID, entries []LessonEntry, term string) ([]uuid.UUID, error)

	// ResolveCourseIDs maps (code, teacher name) pairs onto internal course
	// ids, applying FormerCode renames.
	ResolveCourseIDs(ctx context.Context, tx *gorm.DB, entries []LessonEntry) ([]uuid.UUID, error)
}

type enrollSyncService struct {
	db  *gorm.DB
	log *logger.Logger

	courses     repos.CourseRepo
	semesters   repos.SemesterRepo
	formerCodes repos.FormerCodeRepo
	enrolls     repos.EnrollCourseRepo
}

func NewEnrollSyncService(
	db *gorm.DB,
	baseLog *logger.Logger,
	courses repos.CourseRepo,
	semesters repos.SemesterRepo,
	formerCodes repos.FormerCodeRepo,
	enrolls repos.EnrollCourseRepo,
) EnrollSyncService {
	return &enrollSyncService{
		db:          db,
		log:         baseLog.With("service", "EnrollSyncService"),
		courses:     courses,
		semesters:   semesters,
		formerCodes: formerCodes,
		enrolls:     enrolls,
	}
}

// ResolveCourseIDs builds the (code, teacher) index with one batch lookup per
// table instead of composing a disjunction of per-pair conditions. A renamed
// code match is preferred over a match on the code as reported.
func (s *enrollSyncService) ResolveCourseIDs(ctx context.Context, tx *gorm.DB, entries []LessonEntry) ([]uuid.UUID, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	codeSet := make(map[string]bool, len(entries))
	var codes []string
	for _, e := range entries {
		if e.Code == "" || codeSet[e.Code] {
			continue
		}
		codeSet[e.Code] = true
		codes = append(codes, e.Code)
	}

	formers, err := s.formerCodes.GetByOldCodes(ctx, tx, codes)
	if err != nil {
		return nil, fmt.Errorf("load former codes: %w", err)
	}
	renamed := make(map[string]string, len(formers))
	lookupCodes := codes
	for _, fc := range formers {
		renamed[fc.OldCode] = fc.NewCode
		if !codeSet[fc.NewCode] {
			codeSet[fc.NewCode] = true
			lookupCodes = append(lookupCodes, fc.NewCode)
		}
	}

	candidates, err := s.courses.GetByCodesWithTeacher(ctx, tx, lookupCodes)
	if err != nil {
		return nil, fmt.Errorf("load candidate courses: %w", err)
	}
	byCodeTeacher := make(map[string]uuid.UUID, len(candidates))
	for _, c := range candidates {
		if c.MainTeacher == nil {
			continue
		}
		byCodeTeacher[c.Code+"|"+c.MainTeacher.Name] = c.ID
	}

	var resolved []uuid.UUID
	seen := make(map[uuid.UUID]bool, len(entries))
	for _, e := range entries {
		var id uuid.UUID
		var ok bool
		if newCode, has := renamed[e.Code]; has {
			id, ok = byCodeTeacher[newCode+"|"+e.TeacherName]
		}
		if !ok {
			id, ok = byCodeTeacher[e.Code+"|"+e.TeacherName]
		}
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		resolved = append(resolved, id)
	}
	return resolved, nil
}

func (s *enrollSyncService) SyncEnrollments(ctx context.Context, userID uuid.UUID, entries []LessonEntry, term string) ([]uuid.UUID, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("missing user id")
	}

	var resolved []uuid.UUID
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		resolved, err = s.ResolveCourseIDs(ctx, tx, entries)
		if err != nil {
			return err
		}

		// An unknown term is not an error: the enrollment is recorded
		// without a semester.
		var semesterID *uuid.UUID
		semesters, err := s.semesters.GetByNames(ctx, tx, []string{term})
		if err != nil {
			return err
		}
		if len(semesters) > 0 {
			semesterID = &semesters[0].ID
		}

		// Withdrawn courses disappear upstream; drop their rows first.
		if err := s.enrolls.DeleteForUserSemesterNotIn(ctx, tx, userID, semesterID, resolved); err != nil {
			return err
		}

		existing, err := s.enrolls.GetByUserAndSemester(ctx, tx, userID, semesterID)
		if err != nil {
			return err
		}
		enrolled := make(map[uuid.UUID]bool, len(existing))
		for _, e := range existing {
			enrolled[e.CourseID] = true
		}

		var missing []*types.EnrollCourse
		for _, courseID := range resolved {
			if enrolled[courseID] {
				continue
			}
			missing = append(missing, &types.EnrollCourse{
				ID:         uuid.New(),
				UserID:     userID,
				CourseID:   courseID,
				SemesterID: semesterID,
			})
		}
		if _, err := s.enrolls.Create(ctx, tx, missing); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("synced enrollments", "user_id", userID, "term", term, "resolved", len(resolved))
	return resolved, nil
}
