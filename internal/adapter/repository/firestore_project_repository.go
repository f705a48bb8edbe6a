package repository

import (
	"context"
	stderrors "errors"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"skillswap/internal/domain/entity"
	"skillswap/internal/domain/repository"
	"skillswap/pkg/errors"
)

type firestoreProjectRepository struct {
	client *firestore.Client
}

func NewFirestoreProjectRepository(client *firestore.Client) repository.ProjectRepository {
	return &firestoreProjectRepository{
		client: client,
	}
}

func (r *firestoreProjectRepository) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	doc, err := r.client.Collection("projects").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Project", err)
		}
		return nil, errors.Internal("Failed to get project", err)
	}

	var project entity.Project
	if err := doc.DataTo(&project); err != nil {
		return nil, errors.Internal("Failed to parse project data", err)
	}

	return &project, nil
}

func (r *firestoreProjectRepository) GetBySwapProposalID(ctx context.Context, proposalID string) (*entity.Project, error) {
	query := r.client.Collection("projects").Where("swapProposalId", "==", proposalID).Limit(1)
	iter := query.Documents(ctx)
	doc, err := iter.Next()

	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Project", nil)
		}
		return nil, errors.Internal("Failed to query project", err)
	}

	var project entity.Project
	if err := doc.DataTo(&project); err != nil {
		return nil, errors.Internal("Failed to parse project data", err)
	}

	return &project, nil
}

func (r *firestoreProjectRepository) ListByProposalIDs(ctx context.Context, proposalIDs []string) ([]*entity.Project, error) {
	result := []*entity.Project{}

	// Firestore "in" queries cap at 30 values; chunk to stay under it.
	for start := 0; start < len(proposalIDs); start += 30 {
		end := start + 30
		if end > len(proposalIDs) {
			end = len(proposalIDs)
		}

		query := r.client.Collection("projects").Where("swapProposalId", "in", proposalIDs[start:end])
		iter := query.Documents(ctx)
		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return nil, errors.Internal("Failed to list projects", err)
			}

			var project entity.Project
			if err := doc.DataTo(&project); err != nil {
				return nil, errors.Internal("Failed to parse project data", err)
			}

			result = append(result, &project)
		}
	}

	return result, nil
}

// Mutate applies fn inside a Firestore transaction so milestone and
// deliverable updates, including the progress recompute, are atomic per
// project.
func (r *firestoreProjectRepository) Mutate(ctx context.Context, id string, fn func(project *entity.Project) error) (*entity.Project, error) {
	var updated entity.Project

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docRef := r.client.Collection("projects").Doc(id)
		doc, err := tx.Get(docRef)
		if err != nil {
			return err
		}

		var project entity.Project
		if err := doc.DataTo(&project); err != nil {
			return err
		}

		if err := fn(&project); err != nil {
			return err
		}

		project.UpdatedAt = time.Now()
		updated = project
		return tx.Set(docRef, &project)
	})

	if err != nil {
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			return nil, err
		}
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Project", err)
		}
		return nil, errors.Internal("Failed to update project", err)
	}

	return &updated, nil
}

// Complete flips the project to completed and its proposal to completed in
// the same transaction, keeping the two status fields in lockstep.
func (r *firestoreProjectRepository) Complete(ctx context.Context, id string) (*entity.Project, error) {
	var updated entity.Project

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		projectRef := r.client.Collection("projects").Doc(id)
		doc, err := tx.Get(projectRef)
		if err != nil {
			return err
		}

		var project entity.Project
		if err := doc.DataTo(&project); err != nil {
			return err
		}

		if project.Status != entity.ProjectStatusActive {
			return errors.InvalidState("Only an active project can be completed", nil)
		}

		if !project.AllMilestonesCompleted() {
			return errors.InvalidState("All milestones must be completed before completing the project", nil)
		}

		proposalRef := r.client.Collection("proposals").Doc(project.SwapProposalID)
		proposalDoc, err := tx.Get(proposalRef)
		if err != nil {
			return err
		}

		var proposal entity.SwapProposal
		if err := proposalDoc.DataTo(&proposal); err != nil {
			return err
		}

		now := time.Now()
		project.Status = entity.ProjectStatusCompleted
		project.CompletedAt = &now
		project.UpdatedAt = now

		if err := tx.Set(projectRef, &project); err != nil {
			return err
		}

		if proposal.Status == entity.ProposalStatusAccepted {
			proposal.Status = entity.ProposalStatusCompleted
			proposal.UpdatedAt = now
			if err := tx.Set(proposalRef, &proposal); err != nil {
				return err
			}
		}

		updated = project
		return nil
	})

	if err != nil {
		if errors.Is(err, "INVALID_STATE") {
			return nil, err
		}
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Project", err)
		}
		return nil, errors.Internal("Failed to complete project", err)
	}

	return &updated, nil
}
