package services

import (
	"context"
	"encoding/json"
	"testing"

	"gorm.io/gorm"

	dataagg "github.com/yungbote/courseview-backend/internal/data/aggregates"
	"github.com/yungbote/courseview-backend/internal/data/repos"
	"github.com/yungbote/courseview-backend/internal/data/repos/testutil"
	domainagg "github.com/yungbote/courseview-backend/internal/domain/aggregates"
)

func newAdminForTest(t *testing.T) (AdminService, repos.AdminOpLogRepo, *gorm.DB, context.Context) {
	t.Helper()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	catalog := dataagg.NewCatalogAggregate(dataagg.CatalogAggregateDeps{
		Base: dataagg.BaseDeps{DB: tx, Log: log},

		Courses:  repos.NewCourseRepo(tx, log),
		Teachers: repos.NewTeacherRepo(tx, log),
		Reviews:  repos.NewReviewRepo(tx, log),
		Actions:  repos.NewActionRepo(tx, log),
		Enrolls:  repos.NewEnrollCourseRepo(tx, log),
	})
	opLogs := repos.NewAdminOpLogRepo(tx, log)
	svc := NewAdminService(tx, log, catalog, opLogs)
	return svc, opLogs, tx, context.Background()
}

func TestAdminMergeCourseAppendsOpLog(t *testing.T) {
	svc, opLogs, tx, ctx := newAdminForTest(t)

	admin := testutil.SeedUser(t, ctx, tx, "root")
	teacher := testutil.SeedTeacher(t, ctx, tx, "Han")
	old := testutil.SeedCourse(t, ctx, tx, "HI100", "History", teacher.ID)
	target := testutil.SeedCourse(t, ctx, tx, "HI101", "History", teacher.ID)

	merged, err := svc.MergeCourse(ctx, admin.ID, old.ID, target.ID)
	if err != nil {
		t.Fatalf("MergeCourse: %v", err)
	}
	if !merged {
		t.Fatalf("merged = false for an existing course pair")
	}

	entries, err := opLogs.ListByOps(ctx, tx, []string{"course.merge"})
	if err != nil {
		t.Fatalf("list op logs: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 op log entry, got %d", len(entries))
	}
	if entries[0].UserID == nil || *entries[0].UserID != admin.ID {
		t.Fatalf("op log user_id = %v, want %s", entries[0].UserID, admin.ID)
	}

	var detail map[string]any
	if err := json.Unmarshal(entries[0].Detail, &detail); err != nil {
		t.Fatalf("unmarshal detail: %v", err)
	}
	if detail["merged"] != true {
		t.Fatalf("detail merged = %v, want true", detail["merged"])
	}
	if detail["old_id"] != old.ID.String() {
		t.Fatalf("detail old_id = %v, want %s", detail["old_id"], old.ID)
	}
}

func TestAdminReplaceCodeLogsFailures(t *testing.T) {
	svc, opLogs, tx, ctx := newAdminForTest(t)

	admin := testutil.SeedUser(t, ctx, tx, "root2")

	err := svc.ReplaceCourseCode(ctx, admin.ID, "SAME", "SAME")
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("got %v, want validation error", err)
	}

	entries, err := opLogs.ListByOps(ctx, tx, []string{"course.replace_code"})
	if err != nil {
		t.Fatalf("list op logs: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 op log entry, got %d", len(entries))
	}

	var detail map[string]any
	if err := json.Unmarshal(entries[0].Detail, &detail); err != nil {
		t.Fatalf("unmarshal detail: %v", err)
	}
	if detail["error_code"] != string(domainagg.CodeValidation) {
		t.Fatalf("detail error_code = %v, want %s", detail["error_code"], domainagg.CodeValidation)
	}
}
