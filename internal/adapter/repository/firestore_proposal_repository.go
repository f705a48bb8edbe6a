package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"skillswap/internal/domain/entity"
	"skillswap/internal/domain/repository"
	"skillswap/pkg/errors"

	"github.com/google/uuid"
)

type firestoreProposalRepository struct {
	client *firestore.Client
}

func NewFirestoreProposalRepository(client *firestore.Client) repository.ProposalRepository {
	return &firestoreProposalRepository{
		client: client,
	}
}

func (r *firestoreProposalRepository) Create(ctx context.Context, proposal *entity.SwapProposal) error {
	if proposal.ID == "" {
		proposal.ID = uuid.New().String()
	}

	_, err := r.client.Collection("proposals").Doc(proposal.ID).Set(ctx, proposal)
	if err != nil {
		return errors.Internal("Failed to create proposal", err)
	}

	return nil
}

func (r *firestoreProposalRepository) GetByID(ctx context.Context, id string) (*entity.SwapProposal, error) {
	doc, err := r.client.Collection("proposals").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Proposal", err)
		}
		return nil, errors.Internal("Failed to get proposal", err)
	}

	var proposal entity.SwapProposal
	if err := doc.DataTo(&proposal); err != nil {
		return nil, errors.Internal("Failed to parse proposal data", err)
	}

	return &proposal, nil
}

func (r *firestoreProposalRepository) ListByUser(ctx context.Context, userID, role string, proposalStatus entity.ProposalStatus) ([]*entity.SwapProposal, error) {
	var result []*entity.SwapProposal

	roles := []string{"proposerId", "recipientId"}
	switch role {
	case "proposer":
		roles = []string{"proposerId"}
	case "recipient":
		roles = []string{"recipientId"}
	}

	for _, field := range roles {
		query := r.client.Collection("proposals").Query.Where(field, "==", userID)
		if proposalStatus != "" {
			query = query.Where("status", "==", string(proposalStatus))
		}

		iter := query.Documents(ctx)
		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return nil, errors.Internal("Failed to list proposals", err)
			}

			var proposal entity.SwapProposal
			if err := doc.DataTo(&proposal); err != nil {
				return nil, errors.Internal("Failed to parse proposal data", err)
			}

			result = append(result, &proposal)
		}
	}

	if result == nil {
		result = []*entity.SwapProposal{}
	}

	return result, nil
}

// Accept flips pending -> accepted and writes the project document inside one
// Firestore transaction. Whoever loses a concurrent accept sees the flipped
// status and gets INVALID_STATE.
func (r *firestoreProposalRepository) Accept(ctx context.Context, id string, project *entity.Project) (*entity.SwapProposal, error) {
	var updated entity.SwapProposal

	if project.ID == "" {
		project.ID = uuid.New().String()
	}

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		proposalRef := r.client.Collection("proposals").Doc(id)
		doc, err := tx.Get(proposalRef)
		if err != nil {
			return err
		}

		var proposal entity.SwapProposal
		if err := doc.DataTo(&proposal); err != nil {
			return err
		}

		if proposal.Status != entity.ProposalStatusPending {
			return errors.InvalidState("Proposal has already been responded to", nil)
		}

		now := time.Now()
		proposal.Status = entity.ProposalStatusAccepted
		proposal.UpdatedAt = now
		proposal.RespondedAt = &now

		if err := tx.Set(proposalRef, &proposal); err != nil {
			return err
		}

		projectRef := r.client.Collection("projects").Doc(project.ID)
		if err := tx.Set(projectRef, project); err != nil {
			return err
		}

		updated = proposal
		return nil
	})

	if err != nil {
		if errors.Is(err, "INVALID_STATE") {
			return nil, err
		}
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Proposal", err)
		}
		return nil, errors.Internal("Failed to accept proposal", err)
	}

	return &updated, nil
}

func (r *firestoreProposalRepository) UpdateStatus(ctx context.Context, id string, from, to entity.ProposalStatus) (*entity.SwapProposal, error) {
	var updated entity.SwapProposal

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docRef := r.client.Collection("proposals").Doc(id)
		doc, err := tx.Get(docRef)
		if err != nil {
			return err
		}

		var proposal entity.SwapProposal
		if err := doc.DataTo(&proposal); err != nil {
			return err
		}

		if proposal.Status != from {
			return errors.InvalidState("Proposal is not in the expected status", nil)
		}

		now := time.Now()
		proposal.Status = to
		proposal.UpdatedAt = now
		if proposal.RespondedAt == nil && (to == entity.ProposalStatusAccepted || to == entity.ProposalStatusRejected) {
			proposal.RespondedAt = &now
		}

		updated = proposal
		return tx.Set(docRef, &proposal)
	})

	if err != nil {
		if errors.Is(err, "INVALID_STATE") {
			return nil, err
		}
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Proposal", err)
		}
		return nil, errors.Internal("Failed to update proposal status", err)
	}

	return &updated, nil
}
