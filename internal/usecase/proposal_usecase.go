package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"skillswap/internal/domain/entity"
	"skillswap/internal/domain/repository"
	"skillswap/pkg/errors"
)

type ProposalUseCase struct {
	proposalRepo repository.ProposalRepository
	serviceRepo  repository.ServiceRepository
	userRepo     repository.UserRepository
	events       EventPublisher
}

func NewProposalUseCase(
	proposalRepo repository.ProposalRepository,
	serviceRepo repository.ServiceRepository,
	userRepo repository.UserRepository,
	events EventPublisher,
) *ProposalUseCase {
	return &ProposalUseCase{
		proposalRepo: proposalRepo,
		serviceRepo:  serviceRepo,
		userRepo:     userRepo,
		events:       events,
	}
}

type CreateProposalInput struct {
	RecipientID        string
	ProposerServiceID  string
	RecipientServiceID string
	Message            string
}

func (uc *ProposalUseCase) CreateProposal(ctx context.Context, proposerID string, input CreateProposalInput) (*entity.SwapProposal, error) {
	if proposerID == input.RecipientID {
		return nil, errors.BadRequest("Cannot propose a swap with yourself", nil)
	}

	if _, err := uc.userRepo.GetByID(ctx, input.RecipientID); err != nil {
		return nil, errors.NotFound("Recipient", err)
	}

	proposerService, err := uc.serviceRepo.GetByID(ctx, input.ProposerServiceID)
	if err != nil {
		return nil, err
	}

	recipientService, err := uc.serviceRepo.GetByID(ctx, input.RecipientServiceID)
	if err != nil {
		return nil, err
	}

	if proposerService.OwnerID != proposerID {
		return nil, errors.BadRequest("Proposer service must be owned by the proposer", nil)
	}

	if proposerService.Kind != entity.ServiceKindOffer {
		return nil, errors.BadRequest("Proposer service must be an offer", nil)
	}

	if recipientService.OwnerID != input.RecipientID {
		return nil, errors.BadRequest("Recipient service must be owned by the recipient", nil)
	}

	if !proposerService.Active || !recipientService.Active {
		return nil, errors.BadRequest("Both services must be active", nil)
	}

	now := time.Now()
	proposal := &entity.SwapProposal{
		ProposerID:         proposerID,
		RecipientID:        input.RecipientID,
		ProposerServiceID:  input.ProposerServiceID,
		RecipientServiceID: input.RecipientServiceID,
		Message:            input.Message,
		Status:             entity.ProposalStatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := uc.proposalRepo.Create(ctx, proposal); err != nil {
		return nil, err
	}

	uc.events.Publish(ctx, entity.Event{
		Type:        entity.EventProposalCreated,
		ActorID:     proposerID,
		SubjectID:   proposal.ID,
		RecipientID: input.RecipientID,
		CreatedAt:   now,
	})

	return proposal, nil
}

// RespondToProposal accepts or rejects a pending proposal. Accepting creates
// the project in the same atomic unit as the status flip, so an accepted
// proposal can never exist without exactly one project and the loser of a
// concurrent accept race observes INVALID_STATE.
func (uc *ProposalUseCase) RespondToProposal(ctx context.Context, userID, proposalID, decision string) (*entity.SwapProposal, error) {
	if decision != "accept" && decision != "reject" {
		return nil, errors.BadRequest("Decision must be accept or reject", nil)
	}

	proposal, err := uc.proposalRepo.GetByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}

	if proposal.RecipientID != userID {
		return nil, errors.Forbidden("Only the recipient can respond to this proposal", nil)
	}

	if proposal.Status != entity.ProposalStatusPending {
		return nil, errors.InvalidState("Proposal has already been responded to", nil)
	}

	if decision == "reject" {
		updated, err := uc.proposalRepo.UpdateStatus(ctx, proposalID, entity.ProposalStatusPending, entity.ProposalStatusRejected)
		if err != nil {
			return nil, err
		}

		uc.events.Publish(ctx, entity.Event{
			Type:        entity.EventProposalRejected,
			ActorID:     userID,
			SubjectID:   proposalID,
			RecipientID: proposal.ProposerID,
			CreatedAt:   time.Now(),
		})

		return updated, nil
	}

	now := time.Now()
	project := &entity.Project{
		ID:             uuid.New().String(),
		SwapProposalID: proposalID,
		Status:         entity.ProjectStatusActive,
		Progress:       0,
		Milestones:     []entity.Milestone{},
		Deliverables:   []entity.Deliverable{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	updated, err := uc.proposalRepo.Accept(ctx, proposalID, project)
	if err != nil {
		return nil, err
	}

	uc.events.Publish(ctx, entity.Event{
		Type:        entity.EventProposalAccepted,
		ActorID:     userID,
		SubjectID:   proposalID,
		RecipientID: proposal.ProposerID,
		Payload:     map[string]interface{}{"project_id": project.ID},
		CreatedAt:   now,
	})

	return updated, nil
}

func (uc *ProposalUseCase) GetProposal(ctx context.Context, userID, proposalID string) (*entity.SwapProposal, error) {
	proposal, err := uc.proposalRepo.GetByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}

	if !proposal.HasParticipant(userID) {
		return nil, errors.Forbidden("You don't have permission to view this proposal", nil)
	}

	return proposal, nil
}

func (uc *ProposalUseCase) ListProposals(ctx context.Context, userID, role string, status entity.ProposalStatus) ([]*entity.SwapProposal, error) {
	if role != "" && role != "proposer" && role != "recipient" {
		return nil, errors.BadRequest("Role must be proposer or recipient", nil)
	}

	return uc.proposalRepo.ListByUser(ctx, userID, role, status)
}
