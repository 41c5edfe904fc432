package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/courseview-backend/internal/data/repos/testutil"
)

func TestCourseRepoGetByCodesWithTeacher(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()
	repo := NewCourseRepo(tx, log)

	wang := testutil.SeedTeacher(t, ctx, tx, "Wang")
	li := testutil.SeedTeacher(t, ctx, tx, "Li")
	testutil.SeedCourse(t, ctx, tx, "RT100", "Rhetoric", wang.ID)
	testutil.SeedCourse(t, ctx, tx, "RT100", "Rhetoric", li.ID)
	testutil.SeedCourse(t, ctx, tx, "RT200", "Logic", wang.ID)

	courses, err := repo.GetByCodesWithTeacher(ctx, tx, []string{"RT100"})
	if err != nil {
		t.Fatalf("GetByCodesWithTeacher: %v", err)
	}
	if len(courses) != 2 {
		t.Fatalf("expected 2 sections for RT100, got %d", len(courses))
	}
	for _, c := range courses {
		if c.MainTeacher == nil {
			t.Fatalf("course %s missing preloaded teacher", c.ID)
		}
	}
}

func TestCourseRepoUpdateReviewAggregatesNullsAvg(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()
	repo := NewCourseRepo(tx, log)

	teacher := testutil.SeedTeacher(t, ctx, tx, "Qin")
	course := testutil.SeedCourse(t, ctx, tx, "AR100", "Archaeology", teacher.ID)

	avg := 3.5
	if err := repo.UpdateReviewAggregates(ctx, tx, course.ID, 2, &avg); err != nil {
		t.Fatalf("set aggregates: %v", err)
	}
	if err := repo.UpdateReviewAggregates(ctx, tx, course.ID, 0, nil); err != nil {
		t.Fatalf("clear aggregates: %v", err)
	}

	got, err := repo.GetByIDs(ctx, tx, []uuid.UUID{course.ID})
	if err != nil {
		t.Fatalf("reload course: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 course, got %d", len(got))
	}
	if got[0].ReviewCount != 0 || got[0].ReviewAvg != nil {
		t.Fatalf("aggregates = (%d, %v), want (0, nil)", got[0].ReviewCount, got[0].ReviewAvg)
	}
}

func TestCourseRepoReviewAvgDistribution(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()
	repo := NewCourseRepo(tx, log)

	teacher := testutil.SeedTeacher(t, ctx, tx, "Deng")
	lo := testutil.SeedCourse(t, ctx, tx, "DS100", "Drawing", teacher.ID)
	hi := testutil.SeedCourse(t, ctx, tx, "DS200", "Sculpture", teacher.ID)
	testutil.SeedCourse(t, ctx, tx, "DS300", "Painting", teacher.ID)

	if err := tx.Exec("UPDATE course SET review_count = 3, review_avg = 3.6 WHERE id = ?", lo.ID).Error; err != nil {
		t.Fatalf("set avg: %v", err)
	}
	if err := tx.Exec("UPDATE course SET review_count = 1, review_avg = 3.1 WHERE id = ?", hi.ID).Error; err != nil {
		t.Fatalf("set avg: %v", err)
	}

	dist, err := repo.ReviewAvgDistribution(ctx, tx)
	if err != nil {
		t.Fatalf("ReviewAvgDistribution: %v", err)
	}
	if len(dist) != 1 {
		t.Fatalf("expected 1 bucket, got %d: %+v", len(dist), dist)
	}
	if dist[0].Value != 3 || dist[0].Count != 2 {
		t.Fatalf("bucket = %+v, want (3, 2)", dist[0])
	}
}
