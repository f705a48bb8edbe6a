package repository

import (
	"context"

	"skillswap/internal/domain/entity"
)

type ProjectRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Project, error)
	GetBySwapProposalID(ctx context.Context, proposalID string) (*entity.Project, error)
	ListByProposalIDs(ctx context.Context, proposalIDs []string) ([]*entity.Project, error)

	// Mutate applies fn to the project inside an atomic read-modify-write.
	// An error returned by fn aborts the write and is surfaced unchanged.
	Mutate(ctx context.Context, id string, fn func(project *entity.Project) error) (*entity.Project, error)

	// Complete flips the project to completed and propagates completed status
	// to its proposal in one atomic unit. Fails with INVALID_STATE when the
	// project is not active or any milestone is still open; the gate is
	// re-checked inside the critical section so a concurrent milestone write
	// cannot slip past it.
	Complete(ctx context.Context, id string) (*entity.Project, error)
}
