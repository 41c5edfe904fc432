package aggregates

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/courseview-backend/internal/data/repos"
	"github.com/yungbote/courseview-backend/internal/data/repos/testutil"
	types "github.com/yungbote/courseview-backend/internal/domain"
	domainagg "github.com/yungbote/courseview-backend/internal/domain/aggregates"
)

// newCatalogForTest builds the aggregate on top of the test transaction, so
// every write lands in a savepoint that is rolled back with the test.
func newCatalogForTest(t *testing.T) (domainagg.CatalogAggregate, *gorm.DB, context.Context) {
	t.Helper()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	agg := NewCatalogAggregate(CatalogAggregateDeps{
		Base: BaseDeps{DB: tx, Log: log},

		Courses:  repos.NewCourseRepo(tx, log),
		Teachers: repos.NewTeacherRepo(tx, log),
		Reviews:  repos.NewReviewRepo(tx, log),
		Actions:  repos.NewActionRepo(tx, log),
		Enrolls:  repos.NewEnrollCourseRepo(tx, log),
	})
	return agg, tx, context.Background()
}

func TestMergeCourseRepointsAndRecomputes(t *testing.T) {
	agg, tx, ctx := newCatalogForTest(t)

	teacher := testutil.SeedTeacher(t, ctx, tx, "Wang")
	old := testutil.SeedCourse(t, ctx, tx, "CS1500", "Intro to CS", teacher.ID)
	target := testutil.SeedCourse(t, ctx, tx, "NEW1500", "Intro to CS", teacher.ID)

	u1 := testutil.SeedUser(t, ctx, tx, "alice")
	u2 := testutil.SeedUser(t, ctx, tx, "bob")
	u3 := testutil.SeedUser(t, ctx, tx, "carol")
	sem := testutil.SeedSemester(t, ctx, tx, "2025-fall")

	testutil.SeedReview(t, ctx, tx, old.ID, u1.ID, 4)
	testutil.SeedReview(t, ctx, tx, target.ID, u2.ID, 2)

	// u1 is enrolled in both; the pre-existing target row must win.
	kept := testutil.SeedEnroll(t, ctx, tx, u1.ID, target.ID, testutil.PtrUUID(sem.ID))
	testutil.SeedEnroll(t, ctx, tx, u1.ID, old.ID, testutil.PtrUUID(sem.ID))
	testutil.SeedEnroll(t, ctx, tx, u2.ID, old.ID, testutil.PtrUUID(sem.ID))
	testutil.SeedEnroll(t, ctx, tx, u3.ID, old.ID, nil)

	if err := agg.MergeCourse(ctx, old, target); err != nil {
		t.Fatalf("MergeCourse: %v", err)
	}

	var oldCount int64
	if err := tx.Model(&types.Course{}).Where("id = ?", old.ID).Count(&oldCount).Error; err != nil {
		t.Fatalf("count old course: %v", err)
	}
	if oldCount != 0 {
		t.Fatalf("old course still exists after merge")
	}

	var reviews []*types.Review
	if err := tx.Where("course_id = ?", target.ID).Find(&reviews).Error; err != nil {
		t.Fatalf("load reviews: %v", err)
	}
	if len(reviews) != 2 {
		t.Fatalf("expected 2 reviews on target, got %d", len(reviews))
	}

	var merged types.Course
	if err := tx.First(&merged, "id = ?", target.ID).Error; err != nil {
		t.Fatalf("load target: %v", err)
	}
	if merged.ReviewCount != 2 {
		t.Fatalf("review_count = %d, want 2", merged.ReviewCount)
	}
	if merged.ReviewAvg == nil || *merged.ReviewAvg != 3 {
		t.Fatalf("review_avg = %v, want 3", merged.ReviewAvg)
	}

	var enrolls []*types.EnrollCourse
	if err := tx.Where("course_id = ?", target.ID).Find(&enrolls).Error; err != nil {
		t.Fatalf("load enrolls: %v", err)
	}
	if len(enrolls) != 3 {
		t.Fatalf("expected 3 enrollments on target, got %d", len(enrolls))
	}
	keptSurvived := false
	for _, e := range enrolls {
		if e.ID == kept.ID {
			keptSurvived = true
		}
	}
	if !keptSurvived {
		t.Fatalf("pre-existing enrollment was collapsed instead of the moved duplicate")
	}
}

func TestMergeCourseCollapsesMovedDuplicates(t *testing.T) {
	agg, tx, ctx := newCatalogForTest(t)

	teacher := testutil.SeedTeacher(t, ctx, tx, "Li")
	oldA := testutil.SeedCourse(t, ctx, tx, "MA100", "Calculus", teacher.ID)
	target := testutil.SeedCourse(t, ctx, tx, "MA101", "Calculus", teacher.ID)

	user := testutil.SeedUser(t, ctx, tx, "dave")
	sem := testutil.SeedSemester(t, ctx, tx, "2026-spring")

	// Two rows for the same (user, semester) arrive on the target; exactly
	// one must survive.
	testutil.SeedEnroll(t, ctx, tx, user.ID, oldA.ID, testutil.PtrUUID(sem.ID))
	testutil.SeedEnroll(t, ctx, tx, user.ID, oldA.ID, testutil.PtrUUID(sem.ID))

	if err := agg.MergeCourse(ctx, oldA, target); err != nil {
		t.Fatalf("MergeCourse: %v", err)
	}

	var count int64
	if err := tx.Model(&types.EnrollCourse{}).Where("course_id = ?", target.ID).Count(&count).Error; err != nil {
		t.Fatalf("count enrolls: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 enrollment after collapse, got %d", count)
	}
}

// repointFailEnrolls fails the enrollment repoint step, which runs after the
// review repoint has already written inside the transaction.
type repointFailEnrolls struct {
	repos.EnrollCourseRepo
}

func (repointFailEnrolls) RepointCourse(ctx context.Context, tx *gorm.DB, fromCourseID, toCourseID uuid.UUID) error {
	return errors.New("enrollment repoint failed")
}

func TestMergeCourseFailureRollsBackAllSteps(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	agg := NewCatalogAggregate(CatalogAggregateDeps{
		Base: BaseDeps{DB: tx, Log: log},

		Courses:  repos.NewCourseRepo(tx, log),
		Teachers: repos.NewTeacherRepo(tx, log),
		Reviews:  repos.NewReviewRepo(tx, log),
		Actions:  repos.NewActionRepo(tx, log),
		Enrolls:  repointFailEnrolls{repos.NewEnrollCourseRepo(tx, log)},
	})

	teacher := testutil.SeedTeacher(t, ctx, tx, "Yan")
	old := testutil.SeedCourse(t, ctx, tx, "CH100", "Chemistry", teacher.ID)
	target := testutil.SeedCourse(t, ctx, tx, "CH101", "Chemistry", teacher.ID)

	user := testutil.SeedUser(t, ctx, tx, "pete")
	sem := testutil.SeedSemester(t, ctx, tx, "2028-spring")
	review := testutil.SeedReview(t, ctx, tx, old.ID, user.ID, 5)
	enroll := testutil.SeedEnroll(t, ctx, tx, user.ID, old.ID, testutil.PtrUUID(sem.ID))

	err := agg.MergeCourse(ctx, old, target)
	if err == nil {
		t.Fatalf("MergeCourse succeeded despite the injected failure")
	}

	// The review repoint ran before the failure; it must have been undone.
	var oldCount int64
	if err := tx.Model(&types.Course{}).Where("id = ?", old.ID).Count(&oldCount).Error; err != nil {
		t.Fatalf("count old course: %v", err)
	}
	if oldCount != 1 {
		t.Fatalf("old course missing after a failed merge")
	}

	var gotReview types.Review
	if err := tx.First(&gotReview, "id = ?", review.ID).Error; err != nil {
		t.Fatalf("load review: %v", err)
	}
	if gotReview.CourseID != old.ID {
		t.Fatalf("review course_id = %s after rollback, want %s", gotReview.CourseID, old.ID)
	}

	var gotEnroll types.EnrollCourse
	if err := tx.First(&gotEnroll, "id = ?", enroll.ID).Error; err != nil {
		t.Fatalf("load enrollment: %v", err)
	}
	if gotEnroll.CourseID != old.ID {
		t.Fatalf("enrollment course_id = %s after rollback, want %s", gotEnroll.CourseID, old.ID)
	}

	var gotTarget types.Course
	if err := tx.First(&gotTarget, "id = ?", target.ID).Error; err != nil {
		t.Fatalf("load target: %v", err)
	}
	if gotTarget.ReviewCount != 0 || gotTarget.ReviewAvg != nil {
		t.Fatalf("target aggregates = (%d, %v) after rollback, want (0, nil)", gotTarget.ReviewCount, gotTarget.ReviewAvg)
	}
}

func TestMergeCourseValidation(t *testing.T) {
	agg, tx, ctx := newCatalogForTest(t)

	teacher := testutil.SeedTeacher(t, ctx, tx, "Zhao")
	c := testutil.SeedCourse(t, ctx, tx, "PH200", "Physics", teacher.ID)

	if err := agg.MergeCourse(ctx, c, c); !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("self merge: got %v, want validation error", err)
	}
	if err := agg.MergeCourse(ctx, nil, c); !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("nil course: got %v, want validation error", err)
	}

	ghost := &types.Course{ID: uuid.New()}
	if err := agg.MergeCourse(ctx, ghost, c); !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("missing course: got %v, want not_found error", err)
	}
}

func TestMergeCourseByIDMissingIsNoop(t *testing.T) {
	agg, tx, ctx := newCatalogForTest(t)

	teacher := testutil.SeedTeacher(t, ctx, tx, "Chen")
	c := testutil.SeedCourse(t, ctx, tx, "EE300", "Circuits", teacher.ID)

	merged, err := agg.MergeCourseByID(ctx, uuid.New(), c.ID)
	if err != nil {
		t.Fatalf("MergeCourseByID: %v", err)
	}
	if merged {
		t.Fatalf("merged = true for a missing source course")
	}

	var count int64
	if err := tx.Model(&types.Course{}).Where("id = ?", c.ID).Count(&count).Error; err != nil {
		t.Fatalf("count course: %v", err)
	}
	if count != 1 {
		t.Fatalf("target course mutated by a no-op merge")
	}

	if _, err := agg.MergeCourseByID(ctx, uuid.Nil, c.ID); !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("nil id: got %v, want validation error", err)
	}
}

func TestMergeTeacherMovesAndMergesCourses(t *testing.T) {
	agg, tx, ctx := newCatalogForTest(t)

	oldTeacher := testutil.SeedTeacher(t, ctx, tx, "W. Zhang")
	newTeacher := testutil.SeedTeacher(t, ctx, tx, "Wei Zhang")

	// Shared code: the two rows are the same section recorded twice.
	courseA := testutil.SeedCourse(t, ctx, tx, "CS2100", "Data Structures", oldTeacher.ID)
	courseC := testutil.SeedCourse(t, ctx, tx, "CS2100", "Data Structures", newTeacher.ID)
	// Unique code: a plain repoint.
	courseB := testutil.SeedCourse(t, ctx, tx, "CS2200", "Algorithms", oldTeacher.ID)

	user := testutil.SeedUser(t, ctx, tx, "erin")
	testutil.SeedReview(t, ctx, tx, courseA.ID, user.ID, 5)

	if err := agg.MergeTeacher(ctx, oldTeacher, newTeacher); err != nil {
		t.Fatalf("MergeTeacher: %v", err)
	}

	var teacherCount int64
	if err := tx.Model(&types.Teacher{}).Where("id = ?", oldTeacher.ID).Count(&teacherCount).Error; err != nil {
		t.Fatalf("count old teacher: %v", err)
	}
	if teacherCount != 0 {
		t.Fatalf("old teacher still exists after merge")
	}

	var courseACount int64
	if err := tx.Model(&types.Course{}).Where("id = ?", courseA.ID).Count(&courseACount).Error; err != nil {
		t.Fatalf("count course A: %v", err)
	}
	if courseACount != 0 {
		t.Fatalf("duplicate-code course was repointed instead of merged")
	}

	var movedB types.Course
	if err := tx.First(&movedB, "id = ?", courseB.ID).Error; err != nil {
		t.Fatalf("load course B: %v", err)
	}
	if movedB.MainTeacherID != newTeacher.ID {
		t.Fatalf("course B main_teacher_id = %s, want %s", movedB.MainTeacherID, newTeacher.ID)
	}

	var mergedC types.Course
	if err := tx.First(&mergedC, "id = ?", courseC.ID).Error; err != nil {
		t.Fatalf("load course C: %v", err)
	}
	if mergedC.ReviewCount != 1 {
		t.Fatalf("course C review_count = %d, want 1", mergedC.ReviewCount)
	}
	if mergedC.ReviewAvg == nil || *mergedC.ReviewAvg != 5 {
		t.Fatalf("course C review_avg = %v, want 5", mergedC.ReviewAvg)
	}
}

func TestMergeTeacherByIDMissingIsNoop(t *testing.T) {
	agg, tx, ctx := newCatalogForTest(t)

	teacher := testutil.SeedTeacher(t, ctx, tx, "Sun")

	merged, err := agg.MergeTeacherByID(ctx, uuid.New(), teacher.ID)
	if err != nil {
		t.Fatalf("MergeTeacherByID: %v", err)
	}
	if merged {
		t.Fatalf("merged = true for a missing source teacher")
	}

	var count int64
	if err := tx.Model(&types.Teacher{}).Where("id = ?", teacher.ID).Count(&count).Error; err != nil {
		t.Fatalf("count teacher: %v", err)
	}
	if count != 1 {
		t.Fatalf("target teacher mutated by a no-op merge")
	}
}

func TestReplaceCourseCodeMulti(t *testing.T) {
	agg, tx, ctx := newCatalogForTest(t)

	t1 := testutil.SeedTeacher(t, ctx, tx, "Liu")
	t2 := testutil.SeedTeacher(t, ctx, tx, "Guo")

	// t1 already has a section under the new code: that pair merges.
	c1 := testutil.SeedCourse(t, ctx, tx, "OLD100", "Statistics", t1.ID)
	c2 := testutil.SeedCourse(t, ctx, tx, "OLD100", "Statistics", t2.ID)
	c3 := testutil.SeedCourse(t, ctx, tx, "NEW100", "Statistics", t1.ID)

	user := testutil.SeedUser(t, ctx, tx, "frank")
	testutil.SeedReview(t, ctx, tx, c1.ID, user.ID, 3)

	if err := agg.ReplaceCourseCodeMulti(ctx, "OLD100", "NEW100"); err != nil {
		t.Fatalf("ReplaceCourseCodeMulti: %v", err)
	}

	var c1Count int64
	if err := tx.Model(&types.Course{}).Where("id = ?", c1.ID).Count(&c1Count).Error; err != nil {
		t.Fatalf("count c1: %v", err)
	}
	if c1Count != 0 {
		t.Fatalf("same-teacher section was renamed instead of merged")
	}

	var renamed types.Course
	if err := tx.First(&renamed, "id = ?", c2.ID).Error; err != nil {
		t.Fatalf("load c2: %v", err)
	}
	if renamed.Code != "NEW100" {
		t.Fatalf("c2 code = %q, want NEW100", renamed.Code)
	}

	var mergedC3 types.Course
	if err := tx.First(&mergedC3, "id = ?", c3.ID).Error; err != nil {
		t.Fatalf("load c3: %v", err)
	}
	if mergedC3.ReviewCount != 1 {
		t.Fatalf("c3 review_count = %d, want 1", mergedC3.ReviewCount)
	}

	var review types.Review
	if err := tx.First(&review, "user_id = ?", user.ID).Error; err != nil {
		t.Fatalf("load review: %v", err)
	}
	if review.CourseID != c3.ID {
		t.Fatalf("review course_id = %s, want %s", review.CourseID, c3.ID)
	}
}

func TestReplaceCourseCodeValidation(t *testing.T) {
	agg, _, ctx := newCatalogForTest(t)

	if err := agg.ReplaceCourseCodeMulti(ctx, "", "NEW100"); !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("empty old code: got %v, want validation error", err)
	}
	if err := agg.ReplaceCourseCodeMulti(ctx, "SAME", "SAME"); !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("equal codes: got %v, want validation error", err)
	}
}
