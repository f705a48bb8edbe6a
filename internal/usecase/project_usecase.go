package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"skillswap/internal/domain/entity"
	"skillswap/internal/domain/repository"
	"skillswap/pkg/errors"
	"skillswap/pkg/logger"
)

type ProjectUseCase struct {
	projectRepo  repository.ProjectRepository
	proposalRepo repository.ProposalRepository
	userRepo     repository.UserRepository
	events       EventPublisher
}

func NewProjectUseCase(
	projectRepo repository.ProjectRepository,
	proposalRepo repository.ProposalRepository,
	userRepo repository.UserRepository,
	events EventPublisher,
) *ProjectUseCase {
	return &ProjectUseCase{
		projectRepo:  projectRepo,
		proposalRepo: proposalRepo,
		userRepo:     userRepo,
		events:       events,
	}
}

type AddMilestoneInput struct {
	Title       string
	Description string
	DueDate     *time.Time
}

type AddDeliverableInput struct {
	Title       string
	Description string
	FileRef     string
}

// participants resolves the two users bound to a project via its proposal and
// checks the caller is one of them.
func (uc *ProjectUseCase) participants(ctx context.Context, project *entity.Project, userID string) (*entity.SwapProposal, error) {
	proposal, err := uc.proposalRepo.GetByID(ctx, project.SwapProposalID)
	if err != nil {
		return nil, err
	}

	if !proposal.HasParticipant(userID) {
		return nil, errors.Forbidden("You don't have permission to modify this project", nil)
	}

	return proposal, nil
}

func (uc *ProjectUseCase) GetProject(ctx context.Context, userID, projectID string) (*entity.Project, error) {
	project, err := uc.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.participants(ctx, project, userID); err != nil {
		return nil, err
	}

	return project, nil
}

// ListProjects returns the caller's projects, derived through their accepted
// and completed proposals.
func (uc *ProjectUseCase) ListProjects(ctx context.Context, userID string) ([]*entity.Project, error) {
	proposals, err := uc.proposalRepo.ListByUser(ctx, userID, "", "")
	if err != nil {
		return nil, err
	}

	var proposalIDs []string
	for _, p := range proposals {
		if p.Status == entity.ProposalStatusAccepted || p.Status == entity.ProposalStatusCompleted {
			proposalIDs = append(proposalIDs, p.ID)
		}
	}

	if len(proposalIDs) == 0 {
		return []*entity.Project{}, nil
	}

	return uc.projectRepo.ListByProposalIDs(ctx, proposalIDs)
}

func (uc *ProjectUseCase) AddMilestone(ctx context.Context, userID, projectID string, input AddMilestoneInput) (*entity.Project, error) {
	if input.Title == "" {
		return nil, errors.BadRequest("Milestone title is required", nil)
	}

	project, err := uc.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.participants(ctx, project, userID); err != nil {
		return nil, err
	}

	milestoneID := uuid.New().String()

	return uc.projectRepo.Mutate(ctx, projectID, func(p *entity.Project) error {
		if p.Status != entity.ProjectStatusActive {
			return errors.InvalidState("Milestones can only be added to an active project", nil)
		}

		p.Milestones = append(p.Milestones, entity.Milestone{
			ID:          milestoneID,
			Title:       input.Title,
			Description: input.Description,
			DueDate:     input.DueDate,
			Order:       len(p.Milestones),
			Status:      entity.MilestoneStatusPending,
		})
		p.RecomputeProgress()
		return nil
	})
}

func (uc *ProjectUseCase) AdvanceMilestone(ctx context.Context, userID, projectID, milestoneID string, newStatus entity.MilestoneStatus) (*entity.Project, error) {
	if !newStatus.Valid() {
		return nil, errors.BadRequest("Unknown milestone status", nil)
	}

	project, err := uc.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	proposal, err := uc.participants(ctx, project, userID)
	if err != nil {
		return nil, err
	}

	completed := false

	updated, err := uc.projectRepo.Mutate(ctx, projectID, func(p *entity.Project) error {
		if p.Status != entity.ProjectStatusActive {
			return errors.InvalidState("Milestones can only be advanced on an active project", nil)
		}

		milestone := p.Milestone(milestoneID)
		if milestone == nil {
			return errors.NotFound("Milestone", nil)
		}

		if !milestone.Status.CanAdvanceTo(newStatus) {
			return errors.InvalidState(
				fmt.Sprintf("Milestone cannot move from %s to %s", milestone.Status, newStatus), nil)
		}

		milestone.Status = newStatus
		completed = newStatus == entity.MilestoneStatusCompleted
		p.RecomputeProgress()
		return nil
	})
	if err != nil {
		return nil, err
	}

	if completed {
		uc.publishToParticipants(ctx, proposal, userID, entity.Event{
			Type:      entity.EventMilestoneCompleted,
			ActorID:   userID,
			SubjectID: projectID,
			Payload:   map[string]interface{}{"milestone_id": milestoneID, "progress": updated.Progress},
		})
	}

	return updated, nil
}

func (uc *ProjectUseCase) AddDeliverable(ctx context.Context, userID, projectID string, input AddDeliverableInput) (*entity.Project, error) {
	if input.Title == "" {
		return nil, errors.BadRequest("Deliverable title is required", nil)
	}

	project, err := uc.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.participants(ctx, project, userID); err != nil {
		return nil, err
	}

	deliverableID := uuid.New().String()

	return uc.projectRepo.Mutate(ctx, projectID, func(p *entity.Project) error {
		if p.Status != entity.ProjectStatusActive {
			return errors.InvalidState("Deliverables can only be added to an active project", nil)
		}

		p.Deliverables = append(p.Deliverables, entity.Deliverable{
			ID:          deliverableID,
			Title:       input.Title,
			Description: input.Description,
			FileRef:     input.FileRef,
			Status:      entity.DeliverableStatusPending,
		})
		return nil
	})
}

func (uc *ProjectUseCase) AdvanceDeliverable(ctx context.Context, userID, projectID, deliverableID string, newStatus entity.DeliverableStatus) (*entity.Project, error) {
	if !newStatus.Valid() {
		return nil, errors.BadRequest("Unknown deliverable status", nil)
	}

	project, err := uc.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.participants(ctx, project, userID); err != nil {
		return nil, err
	}

	return uc.projectRepo.Mutate(ctx, projectID, func(p *entity.Project) error {
		if p.Status != entity.ProjectStatusActive {
			return errors.InvalidState("Deliverables can only be advanced on an active project", nil)
		}

		deliverable := p.Deliverable(deliverableID)
		if deliverable == nil {
			return errors.NotFound("Deliverable", nil)
		}

		if !deliverable.Status.CanAdvanceTo(newStatus) {
			return errors.InvalidState(
				fmt.Sprintf("Deliverable cannot move from %s to %s", deliverable.Status, newStatus), nil)
		}

		deliverable.Status = newStatus
		return nil
	})
}

// CompleteProject completes a project and propagates completed status to the
// bound proposal. The all-milestones-completed gate lives inside the
// repository's critical section, so a milestone added concurrently with the
// completion attempt makes the attempt fail instead of being buried.
func (uc *ProjectUseCase) CompleteProject(ctx context.Context, userID, projectID string) (*entity.Project, error) {
	project, err := uc.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	proposal, err := uc.participants(ctx, project, userID)
	if err != nil {
		return nil, err
	}

	completed, err := uc.projectRepo.Complete(ctx, projectID)
	if err != nil {
		return nil, err
	}

	for _, participant := range []string{proposal.ProposerID, proposal.RecipientID} {
		if err := uc.userRepo.IncrementCompletedSwaps(ctx, participant); err != nil {
			logger.Warn("Failed to bump completed swaps for %s: %v", participant, err)
		}
	}

	uc.publishToParticipants(ctx, proposal, userID, entity.Event{
		Type:      entity.EventProjectCompleted,
		ActorID:   userID,
		SubjectID: projectID,
	})
	uc.publishToParticipants(ctx, proposal, userID, entity.Event{
		Type:      entity.EventProposalCompleted,
		ActorID:   userID,
		SubjectID: proposal.ID,
	})

	return completed, nil
}

// CancelProject cancels an active project. The proposal keeps its historical
// accepted status for the audit trail.
func (uc *ProjectUseCase) CancelProject(ctx context.Context, userID, projectID, reason string) (*entity.Project, error) {
	project, err := uc.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	proposal, err := uc.participants(ctx, project, userID)
	if err != nil {
		return nil, err
	}

	cancelled, err := uc.projectRepo.Mutate(ctx, projectID, func(p *entity.Project) error {
		if p.Status != entity.ProjectStatusActive {
			return errors.InvalidState("Only an active project can be cancelled", nil)
		}

		p.Status = entity.ProjectStatusCancelled
		p.CancelReason = reason
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publishToParticipants(ctx, proposal, userID, entity.Event{
		Type:      entity.EventProjectCancelled,
		ActorID:   userID,
		SubjectID: projectID,
		Payload:   map[string]interface{}{"reason": reason},
	})

	return cancelled, nil
}

// publishToParticipants notifies the counterpart of the acting user.
func (uc *ProjectUseCase) publishToParticipants(ctx context.Context, proposal *entity.SwapProposal, actorID string, event entity.Event) {
	recipient := proposal.ProposerID
	if actorID == proposal.ProposerID {
		recipient = proposal.RecipientID
	}

	event.RecipientID = recipient
	event.CreatedAt = time.Now()
	uc.events.Publish(ctx, event)
}
