package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"skillswap/internal/domain/entity"
	"skillswap/internal/domain/repository"
	"skillswap/pkg/errors"
)

type memoryReviewRepository struct {
	store *MemoryStore
}

func NewMemoryReviewRepository(store *MemoryStore) repository.ReviewRepository {
	return &memoryReviewRepository{store: store}
}

// reviewKey makes the (project, reviewer, reviewee) triple the storage key,
// which turns the uniqueness invariant into a plain existence check.
func reviewKey(projectID, reviewerID, revieweeID string) string {
	return fmt.Sprintf("%s_%s_%s", projectID, reviewerID, revieweeID)
}

// Create writes the review and folds the rating into the reviewee's aggregate
// under the same lock, so the review and the aggregate cannot diverge.
func (r *memoryReviewRepository) Create(ctx context.Context, review *entity.Review) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := reviewKey(review.ProjectID, review.ReviewerID, review.RevieweeID)
	if _, exists := r.store.reviews[key]; exists {
		return nil, errors.Duplicate("DUPLICATE_REVIEW", "You have already reviewed this user for this project")
	}

	user, ok := r.store.users[review.RevieweeID]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}

	now := time.Now()
	review.ID = key
	if review.CreatedAt.IsZero() {
		review.CreatedAt = now
	}

	total := user.Rating * float64(user.ReviewCount)
	user.ReviewCount++
	user.Rating = (total + float64(review.Rating)) / float64(user.ReviewCount)
	user.UpdatedAt = now

	r.store.reviews[key] = cloneReview(review)
	return cloneUser(user), nil
}

func (r *memoryReviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	review, ok := r.store.reviews[id]
	if !ok {
		return nil, errors.NotFound("Review", nil)
	}

	return cloneReview(review), nil
}

func (r *memoryReviewRepository) ListByReviewee(ctx context.Context, userID string) ([]*entity.Review, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	result := []*entity.Review{}
	for _, review := range r.store.reviews {
		if review.RevieweeID == userID {
			result = append(result, cloneReview(review))
		}
	}

	sortReviews(result)
	return result, nil
}

func (r *memoryReviewRepository) ListByProject(ctx context.Context, projectID string) ([]*entity.Review, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	result := []*entity.Review{}
	for _, review := range r.store.reviews {
		if review.ProjectID == projectID {
			result = append(result, cloneReview(review))
		}
	}

	sortReviews(result)
	return result, nil
}

func sortReviews(reviews []*entity.Review) {
	sort.Slice(reviews, func(i, j int) bool {
		if !reviews[i].CreatedAt.Equal(reviews[j].CreatedAt) {
			return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
		}
		return reviews[i].ID < reviews[j].ID
	})
}
