package aggregates

import (
	"context"

	"github.com/google/uuid"

	"github.com/yungbote/courseview-backend/internal/pkg/dbctx"
)

// RecomputeCourseReviews rewrites review_count/review_avg from the course's
// Review rows. review_avg becomes NULL when the course has no reviews.
func (a *catalogAggregate) RecomputeCourseReviews(dbc dbctx.Context, courseID uuid.UUID) error {
	if courseID == uuid.Nil {
		return ValidationError("missing course id")
	}

	count, avg, err := a.deps.Reviews.CountAndAvgByCourseID(dbc.Ctx, dbc.Tx, courseID)
	if err != nil {
		return err
	}
	if count == 0 {
		avg = nil
	}
	return a.deps.Courses.UpdateReviewAggregates(dbc.Ctx, dbc.Tx, courseID, count, avg)
}

// RecomputeReviewActions rewrites approve_count/disapprove_count from the
// review's Action rows. Duplicate (review, user) actions are a data-quality
// concern upstream; they are counted as stored.
func (a *catalogAggregate) RecomputeReviewActions(dbc dbctx.Context, reviewID uuid.UUID) error {
	if reviewID == uuid.Nil {
		return ValidationError("missing review id")
	}

	approve, disapprove, err := a.deps.Actions.CountByReviewID(dbc.Ctx, dbc.Tx, reviewID)
	if err != nil {
		return err
	}
	return a.deps.Reviews.UpdateActionAggregates(dbc.Ctx, dbc.Tx, reviewID, approve, disapprove)
}

// RecomputeAll backfills the aggregates of every course and review in one
// transaction.
func (a *catalogAggregate) RecomputeAll(ctx context.Context) error {
	const op = "Catalog.Aggregates.RecomputeAll"
	return executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		courseIDs, err := a.deps.Courses.ListIDs(dbc.Ctx, dbc.Tx)
		if err != nil {
			return err
		}
		for _, id := range courseIDs {
			if err := a.RecomputeCourseReviews(dbc, id); err != nil {
				return err
			}
		}

		reviewIDs, err := a.deps.Reviews.ListIDs(dbc.Ctx, dbc.Tx)
		if err != nil {
			return err
		}
		for _, id := range reviewIDs {
			if err := a.RecomputeReviewActions(dbc, id); err != nil {
				return err
			}
		}
		return nil
	})
}
