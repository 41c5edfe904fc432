package aggregates

import (
	"context"

	"github.com/google/uuid"

	types "github.com/yungbote/courseview-backend/internal/domain"
	"github.com/yungbote/courseview-backend/internal/pkg/dbctx"
)

// CatalogAggregate reconciles duplicate catalog identities. Courses and
// teachers acquire duplicate rows when the upstream academic system re-issues
// codes or reports a teacher under a new identity; these operations unify the
// duplicates while keeping the denormalized review aggregates consistent.
//
// Every operation executes as a single transaction: a failure mid-merge rolls
// back all steps. Merges are administrative and must be serialized by the
// caller; no cross-merge coordination happens here.
type CatalogAggregate interface {
	// MergeCourse migrates every dependent of old onto new, collapses
	// duplicate enrollments, deletes old, and recomputes new's aggregates.
	// Both courses must exist; old and new must differ.
	MergeCourse(ctx context.Context, old, new *types.Course) error

	// MergeCourseByID looks up both ids first and reports a missing side as
	// (false, nil) with no state touched. Required at every entry point that
	// accepts raw identities from external input.
	MergeCourseByID(ctx context.Context, oldID, newID uuid.UUID) (bool, error)

	// MergeTeacher repoints old's courses to new, merging course pairs that
	// would otherwise collide on (code, teacher), then removes old.
	MergeTeacher(ctx context.Context, old, new *types.Teacher) error
	MergeTeacherByID(ctx context.Context, oldID, newID uuid.UUID) (bool, error)

	// ReplaceCourseCodeMulti renames every course under oldCode to newCode,
	// absorbing a course into an existing one when the rename would collide
	// on (newCode, same main teacher).
	ReplaceCourseCodeMulti(ctx context.Context, oldCode, newCode string) error

	// RecomputeCourseReviews rewrites a course's review_count/review_avg from
	// its Review rows. Idempotent; must run after any operation that moves
	// reviews between courses.
	RecomputeCourseReviews(dbc dbctx.Context, courseID uuid.UUID) error

	// RecomputeReviewActions rewrites a review's approve/disapprove counts
	// from its Action rows.
	RecomputeReviewActions(dbc dbctx.Context, reviewID uuid.UUID) error

	// RecomputeAll backfills the aggregates of every course and review.
	RecomputeAll(ctx context.Context) error
}
