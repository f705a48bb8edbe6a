package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"skillswap/internal/domain/entity"
	"skillswap/internal/domain/repository"
	"skillswap/pkg/errors"
)

type firestoreReviewRepository struct {
	client *firestore.Client
}

func NewFirestoreReviewRepository(client *firestore.Client) repository.ReviewRepository {
	return &firestoreReviewRepository{
		client: client,
	}
}

// Create keys the document by the (project, reviewer, reviewee) triple, so
// the uniqueness invariant is enforced by a transactional existence check on
// a single document rather than a query. The review write and the reviewee
// rating fold run in the same transaction, so a review can never land without
// its rating being reflected in the aggregate.
func (r *firestoreReviewRepository) Create(ctx context.Context, review *entity.Review) (*entity.User, error) {
	review.ID = fmt.Sprintf("%s_%s_%s", review.ProjectID, review.ReviewerID, review.RevieweeID)
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}

	var reviewee entity.User

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		reviewRef := r.client.Collection("reviews").Doc(review.ID)
		userRef := r.client.Collection("users").Doc(review.RevieweeID)

		_, err := tx.Get(reviewRef)
		if err == nil {
			return errors.Duplicate("DUPLICATE_REVIEW", "You have already reviewed this user for this project")
		}
		if status.Code(err) != codes.NotFound {
			return err
		}

		userDoc, err := tx.Get(userRef)
		if err != nil {
			return err
		}
		if err := userDoc.DataTo(&reviewee); err != nil {
			return err
		}

		total := reviewee.Rating * float64(reviewee.ReviewCount)
		reviewee.ReviewCount++
		reviewee.Rating = (total + float64(review.Rating)) / float64(reviewee.ReviewCount)
		reviewee.UpdatedAt = time.Now()

		if err := tx.Set(reviewRef, review); err != nil {
			return err
		}
		return tx.Set(userRef, &reviewee)
	})

	if err != nil {
		if errors.Is(err, "DUPLICATE_REVIEW") {
			return nil, err
		}
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("User", err)
		}
		return nil, errors.Internal("Failed to create review", err)
	}

	return &reviewee, nil
}

func (r *firestoreReviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	doc, err := r.client.Collection("reviews").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Review", err)
		}
		return nil, errors.Internal("Failed to get review", err)
	}

	var review entity.Review
	if err := doc.DataTo(&review); err != nil {
		return nil, errors.Internal("Failed to parse review data", err)
	}

	return &review, nil
}

func (r *firestoreReviewRepository) ListByReviewee(ctx context.Context, userID string) ([]*entity.Review, error) {
	query := r.client.Collection("reviews").Where("revieweeId", "==", userID)
	return r.collect(ctx, query.Documents(ctx))
}

func (r *firestoreReviewRepository) ListByProject(ctx context.Context, projectID string) ([]*entity.Review, error) {
	query := r.client.Collection("reviews").Where("projectId", "==", projectID)
	return r.collect(ctx, query.Documents(ctx))
}

func (r *firestoreReviewRepository) collect(ctx context.Context, iter *firestore.DocumentIterator) ([]*entity.Review, error) {
	reviews := []*entity.Review{}

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list reviews", err)
		}

		var review entity.Review
		if err := doc.DataTo(&review); err != nil {
			return nil, errors.Internal("Failed to parse review data", err)
		}

		reviews = append(reviews, &review)
	}

	return reviews, nil
}
