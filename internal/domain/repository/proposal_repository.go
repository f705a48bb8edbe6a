package repository

import (
	"context"

	"skillswap/internal/domain/entity"
)

type ProposalRepository interface {
	Create(ctx context.Context, proposal *entity.SwapProposal) error
	GetByID(ctx context.Context, id string) (*entity.SwapProposal, error)

	// ListByUser returns proposals where the user is proposer or recipient.
	// role is "proposer", "recipient" or "" for both; status "" means any.
	ListByUser(ctx context.Context, userID, role string, status entity.ProposalStatus) ([]*entity.SwapProposal, error)

	// Accept flips a pending proposal to accepted and creates its project in
	// one atomic unit. A proposal that is no longer pending fails with
	// INVALID_STATE and no project is written.
	Accept(ctx context.Context, id string, project *entity.Project) (*entity.SwapProposal, error)

	// UpdateStatus is a compare-and-swap on the status field, used for
	// rejection and for completed propagation from the project.
	UpdateStatus(ctx context.Context, id string, from, to entity.ProposalStatus) (*entity.SwapProposal, error)
}
