package repository

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"skillswap/internal/domain/entity"
	"skillswap/internal/domain/repository"
	"skillswap/pkg/errors"
)

type memoryProposalRepository struct {
	store *MemoryStore
}

func NewMemoryProposalRepository(store *MemoryStore) repository.ProposalRepository {
	return &memoryProposalRepository{store: store}
}

func (r *memoryProposalRepository) Create(ctx context.Context, proposal *entity.SwapProposal) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if proposal.ID == "" {
		proposal.ID = uuid.New().String()
	}

	r.store.proposals[proposal.ID] = cloneProposal(proposal)
	return nil
}

func (r *memoryProposalRepository) GetByID(ctx context.Context, id string) (*entity.SwapProposal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	proposal, ok := r.store.proposals[id]
	if !ok {
		return nil, errors.NotFound("Proposal", nil)
	}

	return cloneProposal(proposal), nil
}

func (r *memoryProposalRepository) ListByUser(ctx context.Context, userID, role string, status entity.ProposalStatus) ([]*entity.SwapProposal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	result := []*entity.SwapProposal{}
	for _, proposal := range r.store.proposals {
		switch role {
		case "proposer":
			if proposal.ProposerID != userID {
				continue
			}
		case "recipient":
			if proposal.RecipientID != userID {
				continue
			}
		default:
			if !proposal.HasParticipant(userID) {
				continue
			}
		}

		if status != "" && proposal.Status != status {
			continue
		}

		result = append(result, cloneProposal(proposal))
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

func (r *memoryProposalRepository) Accept(ctx context.Context, id string, project *entity.Project) (*entity.SwapProposal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	proposal, ok := r.store.proposals[id]
	if !ok {
		return nil, errors.NotFound("Proposal", nil)
	}

	if proposal.Status != entity.ProposalStatusPending {
		return nil, errors.InvalidState("Proposal has already been responded to", nil)
	}

	now := time.Now()
	proposal.Status = entity.ProposalStatusAccepted
	proposal.UpdatedAt = now
	proposal.RespondedAt = &now

	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	r.store.projects[project.ID] = cloneProject(project)

	return cloneProposal(proposal), nil
}

func (r *memoryProposalRepository) UpdateStatus(ctx context.Context, id string, from, to entity.ProposalStatus) (*entity.SwapProposal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	proposal, ok := r.store.proposals[id]
	if !ok {
		return nil, errors.NotFound("Proposal", nil)
	}

	if proposal.Status != from {
		return nil, errors.InvalidState("Proposal is not in the expected status", nil)
	}

	now := time.Now()
	proposal.Status = to
	proposal.UpdatedAt = now
	if proposal.RespondedAt == nil && (to == entity.ProposalStatusAccepted || to == entity.ProposalStatusRejected) {
		proposal.RespondedAt = &now
	}

	return cloneProposal(proposal), nil
}
