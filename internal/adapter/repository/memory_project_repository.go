package repository

import (
	"context"
	"sort"
	"time"

	"skillswap/internal/domain/entity"
	"skillswap/internal/domain/repository"
	"skillswap/pkg/errors"
)

type memoryProjectRepository struct {
	store *MemoryStore
}

func NewMemoryProjectRepository(store *MemoryStore) repository.ProjectRepository {
	return &memoryProjectRepository{store: store}
}

func (r *memoryProjectRepository) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	project, ok := r.store.projects[id]
	if !ok {
		return nil, errors.NotFound("Project", nil)
	}

	return cloneProject(project), nil
}

func (r *memoryProjectRepository) GetBySwapProposalID(ctx context.Context, proposalID string) (*entity.Project, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, project := range r.store.projects {
		if project.SwapProposalID == proposalID {
			return cloneProject(project), nil
		}
	}

	return nil, errors.NotFound("Project", nil)
}

func (r *memoryProjectRepository) ListByProposalIDs(ctx context.Context, proposalIDs []string) ([]*entity.Project, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	wanted := make(map[string]bool, len(proposalIDs))
	for _, id := range proposalIDs {
		wanted[id] = true
	}

	result := []*entity.Project{}
	for _, project := range r.store.projects {
		if wanted[project.SwapProposalID] {
			result = append(result, cloneProject(project))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

func (r *memoryProjectRepository) Mutate(ctx context.Context, id string, fn func(project *entity.Project) error) (*entity.Project, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.projects[id]
	if !ok {
		return nil, errors.NotFound("Project", nil)
	}

	working := cloneProject(stored)
	if err := fn(working); err != nil {
		return nil, err
	}

	working.UpdatedAt = time.Now()
	r.store.projects[id] = cloneProject(working)

	return working, nil
}

func (r *memoryProjectRepository) Complete(ctx context.Context, id string) (*entity.Project, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	project, ok := r.store.projects[id]
	if !ok {
		return nil, errors.NotFound("Project", nil)
	}

	if project.Status != entity.ProjectStatusActive {
		return nil, errors.InvalidState("Only an active project can be completed", nil)
	}

	if !project.AllMilestonesCompleted() {
		return nil, errors.InvalidState("All milestones must be completed before completing the project", nil)
	}

	now := time.Now()
	project.Status = entity.ProjectStatusCompleted
	project.CompletedAt = &now
	project.UpdatedAt = now

	if proposal, ok := r.store.proposals[project.SwapProposalID]; ok && proposal.Status == entity.ProposalStatusAccepted {
		proposal.Status = entity.ProposalStatusCompleted
		proposal.UpdatedAt = now
	}

	return cloneProject(project), nil
}
