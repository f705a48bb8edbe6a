package repository

import (
	"context"

	"skillswap/internal/domain/entity"
)

type ReviewRepository interface {
	// Create persists the review and folds its rating into the reviewee's
	// aggregate (running mean plus review count) in one atomic unit, returning
	// the updated reviewee. Fails with DUPLICATE_REVIEW when a review for the
	// same (project, reviewer, reviewee) triple already exists; on any failure
	// neither the review nor the aggregate is written.
	Create(ctx context.Context, review *entity.Review) (*entity.User, error)

	GetByID(ctx context.Context, id string) (*entity.Review, error)
	ListByReviewee(ctx context.Context, userID string) ([]*entity.Review, error)
	ListByProject(ctx context.Context, projectID string) ([]*entity.Review, error)
}
