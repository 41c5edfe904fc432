package aggregates

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/courseview-backend/internal/data/repos"
	types "github.com/yungbote/courseview-backend/internal/domain"
	domainagg "github.com/yungbote/courseview-backend/internal/domain/aggregates"
	"github.com/yungbote/courseview-backend/internal/pkg/dbctx"
)

type CatalogAggregateDeps struct {
	Base BaseDeps

	Courses  repos.CourseRepo
	Teachers repos.TeacherRepo
	Reviews  repos.ReviewRepo
	Actions  repos.ActionRepo
	Enrolls  repos.EnrollCourseRepo
}

type catalogAggregate struct {
	deps CatalogAggregateDeps
}

func NewCatalogAggregate(deps CatalogAggregateDeps) domainagg.CatalogAggregate {
	deps.Base = deps.Base.withDefaults()
	return &catalogAggregate{deps: deps}
}

func (a *catalogAggregate) MergeCourse(ctx context.Context, old, new *types.Course) error {
	const op = "Catalog.Course.Merge"
	if old == nil || new == nil {
		return domainagg.NewError(domainagg.CodeValidation, op, "both courses are required", nil)
	}
	if old.ID == new.ID {
		return domainagg.NewError(domainagg.CodeValidation, op, "cannot merge a course into itself", nil)
	}
	return executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		rows, err := a.deps.Courses.GetByIDs(dbc.Ctx, dbc.Tx, []uuid.UUID{old.ID, new.ID})
		if err != nil {
			return err
		}
		if len(rows) != 2 {
			return domainagg.NewError(domainagg.CodeNotFound, op, "one of the courses does not exist", nil)
		}
		return a.mergeCourseTx(dbc, old, new)
	})
}

func (a *catalogAggregate) MergeCourseByID(ctx context.Context, oldID, newID uuid.UUID) (bool, error) {
	const op = "Catalog.Course.MergeByID"
	if oldID == uuid.Nil || newID == uuid.Nil {
		return false, domainagg.NewError(domainagg.CodeValidation, op, "both course ids are required", nil)
	}
	if oldID == newID {
		return false, domainagg.NewError(domainagg.CodeValidation, op, "cannot merge a course into itself", nil)
	}

	merged := false
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		oldRows, err := a.deps.Courses.GetByIDs(dbc.Ctx, dbc.Tx, []uuid.UUID{oldID})
		if err != nil {
			return err
		}
		newRows, err := a.deps.Courses.GetByIDs(dbc.Ctx, dbc.Tx, []uuid.UUID{newID})
		if err != nil {
			return err
		}
		if len(oldRows) == 0 || len(newRows) == 0 {
			return nil
		}
		if err := a.mergeCourseTx(dbc, oldRows[0], newRows[0]); err != nil {
			return err
		}
		merged = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return merged, nil
}

// mergeCourseTx performs the merge inside an already-open transaction, in a
// fixed order: repoint children, collapse duplicates, delete the old parent,
// recompute aggregates. Enrollments that pointed at new before the merge win
// over moved rows; among moved rows the first encountered per
// (user, semester) key survives.
func (a *catalogAggregate) mergeCourseTx(dbc dbctx.Context, old, new *types.Course) error {
	const op = "Catalog.Course.Merge"
	if old.ID == new.ID {
		return ValidationError("cannot merge a course into itself")
	}

	preexisting, err := a.deps.Enrolls.GetByCourseIDs(dbc.Ctx, dbc.Tx, []uuid.UUID{new.ID})
	if err != nil {
		return err
	}
	keep := make(map[uuid.UUID]bool, len(preexisting))
	for _, e := range preexisting {
		keep[e.ID] = true
	}

	if err := a.deps.Reviews.RepointCourse(dbc.Ctx, dbc.Tx, old.ID, new.ID); err != nil {
		return err
	}
	if err := a.deps.Enrolls.RepointCourse(dbc.Ctx, dbc.Tx, old.ID, new.ID); err != nil {
		return err
	}

	all, err := a.deps.Enrolls.GetByCourseIDs(dbc.Ctx, dbc.Tx, []uuid.UUID{new.ID})
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(all))
	for _, e := range all {
		if keep[e.ID] {
			seen[enrollKey(e.UserID, e.SemesterID)] = true
		}
	}
	var duplicateIDs []uuid.UUID
	for _, e := range all {
		if keep[e.ID] {
			continue
		}
		k := enrollKey(e.UserID, e.SemesterID)
		if seen[k] {
			duplicateIDs = append(duplicateIDs, e.ID)
			continue
		}
		seen[k] = true
	}
	if err := a.deps.Enrolls.DeleteByIDs(dbc.Ctx, dbc.Tx, duplicateIDs); err != nil {
		return err
	}

	if err := a.deps.Courses.DeleteByIDs(dbc.Ctx, dbc.Tx, []uuid.UUID{old.ID}); err != nil {
		return err
	}

	if err := a.RecomputeCourseReviews(dbc, new.ID); err != nil {
		return err
	}

	if a.deps.Base.Log != nil {
		a.deps.Base.Log.Info("merged course",
			"op", op,
			"old_course_id", old.ID,
			"new_course_id", new.ID,
			"collapsed_enrollments", len(duplicateIDs),
		)
	}
	return nil
}

func (a *catalogAggregate) MergeTeacher(ctx context.Context, old, new *types.Teacher) error {
	const op = "Catalog.Teacher.Merge"
	if old == nil || new == nil {
		return domainagg.NewError(domainagg.CodeValidation, op, "both teachers are required", nil)
	}
	if old.ID == new.ID {
		return domainagg.NewError(domainagg.CodeValidation, op, "cannot merge a teacher into itself", nil)
	}
	return executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		rows, err := a.deps.Teachers.GetByIDs(dbc.Ctx, dbc.Tx, []uuid.UUID{old.ID, new.ID})
		if err != nil {
			return err
		}
		if len(rows) != 2 {
			return domainagg.NewError(domainagg.CodeNotFound, op, "one of the teachers does not exist", nil)
		}
		return a.mergeTeacherTx(dbc, old, new)
	})
}

func (a *catalogAggregate) MergeTeacherByID(ctx context.Context, oldID, newID uuid.UUID) (bool, error) {
	const op = "Catalog.Teacher.MergeByID"
	if oldID == uuid.Nil || newID == uuid.Nil {
		return false, domainagg.NewError(domainagg.CodeValidation, op, "both teacher ids are required", nil)
	}
	if oldID == newID {
		return false, domainagg.NewError(domainagg.CodeValidation, op, "cannot merge a teacher into itself", nil)
	}

	merged := false
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		oldRows, err := a.deps.Teachers.GetByIDs(dbc.Ctx, dbc.Tx, []uuid.UUID{oldID})
		if err != nil {
			return err
		}
		newRows, err := a.deps.Teachers.GetByIDs(dbc.Ctx, dbc.Tx, []uuid.UUID{newID})
		if err != nil {
			return err
		}
		if len(oldRows) == 0 || len(newRows) == 0 {
			return nil
		}
		if err := a.mergeTeacherTx(dbc, oldRows[0], newRows[0]); err != nil {
			return err
		}
		merged = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return merged, nil
}

// mergeTeacherTx moves every course taught by old over to new. A course whose
// code is already taught by new is the duplicate-entry case caused by the
// earlier identity mismatch, so the course pair is merged instead of
// repointed. The old teacher row is removed at the end.
func (a *catalogAggregate) mergeTeacherTx(dbc dbctx.Context, old, new *types.Teacher) error {
	if old.ID == new.ID {
		return ValidationError("cannot merge a teacher into itself")
	}

	oldCourses, err := a.deps.Courses.GetByMainTeacherIDs(dbc.Ctx, dbc.Tx, []uuid.UUID{old.ID})
	if err != nil {
		return err
	}
	newCourses, err := a.deps.Courses.GetByMainTeacherIDs(dbc.Ctx, dbc.Tx, []uuid.UUID{new.ID})
	if err != nil {
		return err
	}

	byCode := make(map[string]*types.Course, len(newCourses))
	for _, c := range newCourses {
		byCode[c.Code] = c
	}

	for _, c := range oldCourses {
		if target, ok := byCode[c.Code]; ok {
			if err := a.mergeCourseTx(dbc, c, target); err != nil {
				return err
			}
			continue
		}
		// Review associations are untouched by a plain repoint, so no
		// aggregate recomputation is needed here.
		if err := a.deps.Courses.UpdateMainTeacher(dbc.Ctx, dbc.Tx, c.ID, new.ID); err != nil {
			return err
		}
		byCode[c.Code] = c
	}

	if err := a.deps.Teachers.DeleteByIDs(dbc.Ctx, dbc.Tx, []uuid.UUID{old.ID}); err != nil {
		return err
	}
	return nil
}

func (a *catalogAggregate) ReplaceCourseCodeMulti(ctx context.Context, oldCode, newCode string) error {
	const op = "Catalog.Course.ReplaceCode"
	if oldCode == "" || newCode == "" {
		return domainagg.NewError(domainagg.CodeValidation, op, "both codes are required", nil)
	}
	if oldCode == newCode {
		return domainagg.NewError(domainagg.CodeValidation, op, fmt.Sprintf("old and new code are both %q", oldCode), nil)
	}

	return executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		oldCourses, err := a.deps.Courses.GetByCodes(dbc.Ctx, dbc.Tx, []string{oldCode})
		if err != nil {
			return err
		}
		newCourses, err := a.deps.Courses.GetByCodes(dbc.Ctx, dbc.Tx, []string{newCode})
		if err != nil {
			return err
		}

		// Teacher identity disambiguates sections that share a renamed code.
		byTeacher := make(map[uuid.UUID]*types.Course, len(newCourses))
		for _, c := range newCourses {
			byTeacher[c.MainTeacherID] = c
		}

		for _, c := range oldCourses {
			if target, ok := byTeacher[c.MainTeacherID]; ok {
				if err := a.mergeCourseTx(dbc, c, target); err != nil {
					return err
				}
				continue
			}
			if err := a.deps.Courses.UpdateCode(dbc.Ctx, dbc.Tx, c.ID, newCode); err != nil {
				return err
			}
			c.Code = newCode
			byTeacher[c.MainTeacherID] = c
		}
		return nil
	})
}

func enrollKey(userID uuid.UUID, semesterID *uuid.UUID) string {
	if semesterID == nil {
		return userID.String() + "|"
	}
	return userID.String() + "|" + semesterID.String()
}
