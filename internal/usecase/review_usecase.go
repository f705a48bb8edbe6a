package usecase

import (
	"context"
	"time"

	"skillswap/internal/domain/entity"
	"skillswap/internal/domain/repository"
	"skillswap/pkg/errors"
)

type ReviewUseCase struct {
	reviewRepo   repository.ReviewRepository
	projectRepo  repository.ProjectRepository
	proposalRepo repository.ProposalRepository
	userRepo     repository.UserRepository
	events       EventPublisher
}

func NewReviewUseCase(
	reviewRepo repository.ReviewRepository,
	projectRepo repository.ProjectRepository,
	proposalRepo repository.ProposalRepository,
	userRepo repository.UserRepository,
	events EventPublisher,
) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo:   reviewRepo,
		projectRepo:  projectRepo,
		proposalRepo: proposalRepo,
		userRepo:     userRepo,
		events:       events,
	}
}

type SubmitReviewInput struct {
	ProjectID  string
	RevieweeID string
	Rating     int
	Comment    string
}

// SubmitReview records a one-time review of the counterpart on a project. The
// rating is folded into the reviewee's aggregate inside the repository's
// atomic Create, which is the only write path to User.Rating in the system.
func (uc *ReviewUseCase) SubmitReview(ctx context.Context, reviewerID string, input SubmitReviewInput) (*entity.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, errors.BadRequest("Rating must be between 1 and 5", nil)
	}

	if reviewerID == input.RevieweeID {
		return nil, errors.BadRequest("Cannot review yourself", nil)
	}

	project, err := uc.projectRepo.GetByID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}

	proposal, err := uc.proposalRepo.GetByID(ctx, project.SwapProposalID)
	if err != nil {
		return nil, err
	}

	if !proposal.HasParticipant(reviewerID) || !proposal.HasParticipant(input.RevieweeID) {
		return nil, errors.BadRequest("Reviewer and reviewee must both be project participants", nil)
	}

	review := &entity.Review{
		ProjectID:  input.ProjectID,
		ReviewerID: reviewerID,
		RevieweeID: input.RevieweeID,
		Rating:     input.Rating,
		Comment:    input.Comment,
	}

	if _, err := uc.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	uc.events.Publish(ctx, entity.Event{
		Type:        entity.EventReviewSubmitted,
		ActorID:     reviewerID,
		SubjectID:   review.ID,
		RecipientID: input.RevieweeID,
		Payload:     map[string]interface{}{"project_id": input.ProjectID, "rating": input.Rating},
		CreatedAt:   time.Now(),
	})

	return review, nil
}

func (uc *ReviewUseCase) ListForUser(ctx context.Context, userID string) ([]*entity.Review, error) {
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return nil, errors.NotFound("User", err)
	}
	return uc.reviewRepo.ListByReviewee(ctx, userID)
}

func (uc *ReviewUseCase) ListForProject(ctx context.Context, projectID string) ([]*entity.Review, error) {
	if _, err := uc.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return uc.reviewRepo.ListByProject(ctx, projectID)
}
