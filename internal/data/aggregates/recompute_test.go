package aggregates

import (
	"testing"

	"github.com/yungbote/courseview-backend/internal/data/repos/testutil"
	types "github.com/yungbote/courseview-backend/internal/domain"
)

func TestRecomputeAllBackfillsDerivedFields(t *testing.T) {
	agg, tx, ctx := newCatalogForTest(t)

	teacher := testutil.SeedTeacher(t, ctx, tx, "Ma")
	reviewed := testutil.SeedCourse(t, ctx, tx, "BI100", "Biology", teacher.ID)
	empty := testutil.SeedCourse(t, ctx, tx, "BI200", "Genetics", teacher.ID)

	u1 := testutil.SeedUser(t, ctx, tx, "gail")
	u2 := testutil.SeedUser(t, ctx, tx, "hank")
	u3 := testutil.SeedUser(t, ctx, tx, "iris")

	r1 := testutil.SeedReview(t, ctx, tx, reviewed.ID, u1.ID, 3)
	testutil.SeedReview(t, ctx, tx, reviewed.ID, u2.ID, 5)

	testutil.SeedAction(t, ctx, tx, r1.ID, u2.ID, types.ActionApprove)
	testutil.SeedAction(t, ctx, tx, r1.ID, u3.ID, types.ActionDisapprove)

	// Corrupt the stored aggregates; the backfill must overwrite them.
	if err := tx.Model(&types.Course{}).Where("id = ?", reviewed.ID).
		Updates(map[string]any{"review_count": 99, "review_avg": 1.0}).Error; err != nil {
		t.Fatalf("corrupt course aggregates: %v", err)
	}
	avg := 4.2
	if err := tx.Model(&types.Course{}).Where("id = ?", empty.ID).
		Updates(map[string]any{"review_count": 7, "review_avg": avg}).Error; err != nil {
		t.Fatalf("corrupt empty course aggregates: %v", err)
	}
	if err := tx.Model(&types.Review{}).Where("id = ?", r1.ID).
		Updates(map[string]any{"approve_count": 0, "disapprove_count": 9}).Error; err != nil {
		t.Fatalf("corrupt review aggregates: %v", err)
	}

	if err := agg.RecomputeAll(ctx); err != nil {
		t.Fatalf("RecomputeAll: %v", err)
	}

	var gotReviewed types.Course
	if err := tx.First(&gotReviewed, "id = ?", reviewed.ID).Error; err != nil {
		t.Fatalf("load reviewed course: %v", err)
	}
	if gotReviewed.ReviewCount != 2 {
		t.Fatalf("review_count = %d, want 2", gotReviewed.ReviewCount)
	}
	if gotReviewed.ReviewAvg == nil || *gotReviewed.ReviewAvg != 4 {
		t.Fatalf("review_avg = %v, want 4", gotReviewed.ReviewAvg)
	}

	var gotEmpty types.Course
	if err := tx.First(&gotEmpty, "id = ?", empty.ID).Error; err != nil {
		t.Fatalf("load empty course: %v", err)
	}
	if gotEmpty.ReviewCount != 0 {
		t.Fatalf("empty course review_count = %d, want 0", gotEmpty.ReviewCount)
	}
	if gotEmpty.ReviewAvg != nil {
		t.Fatalf("empty course review_avg = %v, want nil", gotEmpty.ReviewAvg)
	}

	var gotReview types.Review
	if err := tx.First(&gotReview, "id = ?", r1.ID).Error; err != nil {
		t.Fatalf("load review: %v", err)
	}
	if gotReview.ApproveCount != 1 || gotReview.DisapproveCount != 1 {
		t.Fatalf("action counts = (%d, %d), want (1, 1)", gotReview.ApproveCount, gotReview.DisapproveCount)
	}
}
