package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillswap/internal/domain/entity"
	domainrepo "skillswap/internal/domain/repository"
	"skillswap/pkg/errors"
)

func addMilestone(t *testing.T, env *testEnv, userID, projectID, title string) entity.Milestone {
	t.Helper()

	project, err := env.projects.AddMilestone(context.Background(), userID, projectID, AddMilestoneInput{Title: title})
	require.NoError(t, err)

	return project.Milestones[len(project.Milestones)-1]
}

func completeMilestone(t *testing.T, env *testEnv, userID, projectID, milestoneID string) *entity.Project {
	t.Helper()
	ctx := context.Background()

	_, err := env.projects.AdvanceMilestone(ctx, userID, projectID, milestoneID, entity.MilestoneStatusInProgress)
	require.NoError(t, err)

	project, err := env.projects.AdvanceMilestone(ctx, userID, projectID, milestoneID, entity.MilestoneStatusCompleted)
	require.NoError(t, err)

	return project
}

func TestMilestoneProgress(t *testing.T) {
	env := newTestEnv()

	alice := env.seedUser("alice", 0, 0)
	bob := env.seedUser("bob", 0, 0)
	_, project := env.seedAcceptedSwap(alice, bob)

	first := addMilestone(t, env, alice.ID, project.ID, "wireframes")
	second := addMilestone(t, env, bob.ID, project.ID, "api contract")

	assert.Equal(t, 0, first.Order)
	assert.Equal(t, 1, second.Order)

	updated := completeMilestone(t, env, alice.ID, project.ID, first.ID)
	assert.Equal(t, 50, updated.Progress)

	updated = completeMilestone(t, env, bob.ID, project.ID, second.ID)
	assert.Equal(t, 100, updated.Progress)

	completedEvents := env.events.eventsOfType(entity.EventMilestoneCompleted)
	require.Len(t, completedEvents, 2)
	// The counterpart of the actor gets notified.
	assert.Equal(t, bob.ID, completedEvents[0].RecipientID)
	assert.Equal(t, alice.ID, completedEvents[1].RecipientID)
}

func TestMilestoneTransitionsAreMonotonic(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := env.seedUser("alice", 0, 0)
	bob := env.seedUser("bob", 0, 0)
	_, project := env.seedAcceptedSwap(alice, bob)

	milestone := addMilestone(t, env, alice.ID, project.ID, "wireframes")

	// Skipping in_progress is not allowed.
	_, err := env.projects.AdvanceMilestone(ctx, alice.ID, project.ID, milestone.ID, entity.MilestoneStatusCompleted)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "INVALID_STATE"))

	completeMilestone(t, env, alice.ID, project.ID, milestone.ID)

	// Completed never goes back.
	_, err = env.projects.AdvanceMilestone(ctx, alice.ID, project.ID, milestone.ID, entity.MilestoneStatusInProgress)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "INVALID_STATE"))
}

func TestDeliverableLifecycle(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := env.seedUser("alice", 0, 0)
	bob := env.seedUser("bob", 0, 0)
	_, project := env.seedAcceptedSwap(alice, bob)

	updated, err := env.projects.AddDeliverable(ctx, alice.ID, project.ID, AddDeliverableInput{
		Title:   "homepage mockup",
		FileRef: "files/mockup-v1.fig",
	})
	require.NoError(t, err)
	require.Len(t, updated.Deliverables, 1)

	deliverable := updated.Deliverables[0]
	assert.Equal(t, entity.DeliverableStatusPending, deliverable.Status)

	advance := func(status entity.DeliverableStatus) error {
		_, err := env.projects.AdvanceDeliverable(ctx, bob.ID, project.ID, deliverable.ID, status)
		return err
	}

	require.NoError(t, advance(entity.DeliverableStatusSubmitted))
	require.NoError(t, advance(entity.DeliverableStatusRevisionRequested))
	// Resubmission after a revision request is the one allowed cycle.
	require.NoError(t, advance(entity.DeliverableStatusSubmitted))
	require.NoError(t, advance(entity.DeliverableStatusApproved))

	// Approved is terminal.
	err = advance(entity.DeliverableStatusSubmitted)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "INVALID_STATE"))
}

func TestCompleteProjectRequiresAllMilestones(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := env.seedUser("alice", 0, 0)
	bob := env.seedUser("bob", 0, 0)
	proposal, project := env.seedAcceptedSwap(alice, bob)

	milestone := addMilestone(t, env, alice.ID, project.ID, "wireframes")

	_, err := env.projects.CompleteProject(ctx, alice.ID, project.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "INVALID_STATE"))

	completeMilestone(t, env, alice.ID, project.ID, milestone.ID)

	completed, err := env.projects.CompleteProject(ctx, alice.ID, project.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ProjectStatusCompleted, completed.Status)
	require.NotNil(t, completed.CompletedAt)

	// Completion propagates to the proposal and both swap counters.
	stored, err := env.proposalRepo.GetByID(ctx, proposal.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ProposalStatusCompleted, stored.Status)

	for _, id := range []string{alice.ID, bob.ID} {
		user, err := env.userRepo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 1, user.CompletedSwaps)
	}

	require.Len(t, env.events.eventsOfType(entity.EventProjectCompleted), 1)
	require.Len(t, env.events.eventsOfType(entity.EventProposalCompleted), 1)
}

// lateMilestoneProjectRepo appends a pending milestone right before delegating
// Complete, standing in for a concurrent milestone write landing between the
// caller's read of the project and the completion flip.
type lateMilestoneProjectRepo struct {
	domainrepo.ProjectRepository
}

func (r *lateMilestoneProjectRepo) Complete(ctx context.Context, id string) (*entity.Project, error) {
	_, err := r.ProjectRepository.Mutate(ctx, id, func(p *entity.Project) error {
		p.Milestones = append(p.Milestones, entity.Milestone{
			ID:     "late-addition",
			Title:  "late addition",
			Order:  len(p.Milestones),
			Status: entity.MilestoneStatusPending,
		})
		p.RecomputeProgress()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.ProjectRepository.Complete(ctx, id)
}

func TestCompleteProjectRejectsMilestoneAddedMidFlight(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := env.seedUser("alice", 0, 0)
	bob := env.seedUser("bob", 0, 0)
	_, project := env.seedAcceptedSwap(alice, bob)

	racing := NewProjectUseCase(
		&lateMilestoneProjectRepo{env.projectRepo},
		env.proposalRepo, env.userRepo, env.events)

	_, err := racing.CompleteProject(ctx, alice.ID, project.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "INVALID_STATE"))

	// The project stays active with the pending milestone intact.
	stored, err := env.projectRepo.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ProjectStatusActive, stored.Status)
	require.Len(t, stored.Milestones, 1)
	assert.Equal(t, entity.MilestoneStatusPending, stored.Milestones[0].Status)
}

func TestCompleteProjectWithoutMilestones(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := env.seedUser("alice", 0, 0)
	bob := env.seedUser("bob", 0, 0)
	_, project := env.seedAcceptedSwap(alice, bob)

	completed, err := env.projects.CompleteProject(ctx, bob.ID, project.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ProjectStatusCompleted, completed.Status)
}

func TestCompleteProjectTwice(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := env.seedUser("alice", 0, 0)
	bob := env.seedUser("bob", 0, 0)
	_, project := env.seedAcceptedSwap(alice, bob)

	_, err := env.projects.CompleteProject(ctx, alice.ID, project.ID)
	require.NoError(t, err)

	_, err = env.projects.CompleteProject(ctx, alice.ID, project.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "INVALID_STATE"))
}

func TestCancelProject(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := env.seedUser("alice", 0, 0)
	bob := env.seedUser("bob", 0, 0)
	proposal, project := env.seedAcceptedSwap(alice, bob)

	cancelled, err := env.projects.CancelProject(ctx, bob.ID, project.ID, "schedules no longer line up")
	require.NoError(t, err)
	assert.Equal(t, entity.ProjectStatusCancelled, cancelled.Status)
	assert.Equal(t, "schedules no longer line up", cancelled.CancelReason)

	// The proposal keeps its accepted status.
	stored, err := env.proposalRepo.GetByID(ctx, proposal.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ProposalStatusAccepted, stored.Status)

	// A cancelled project accepts no further changes.
	_, err = env.projects.AddMilestone(ctx, alice.ID, project.ID, AddMilestoneInput{Title: "late"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "INVALID_STATE"))

	_, err = env.projects.CompleteProject(ctx, alice.ID, project.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "INVALID_STATE"))
}

func TestProjectAccessIsParticipantsOnly(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := env.seedUser("alice", 0, 0)
	bob := env.seedUser("bob", 0, 0)
	mallory := env.seedUser("mallory", 0, 0)
	_, project := env.seedAcceptedSwap(alice, bob)

	_, err := env.projects.GetProject(ctx, mallory.ID, project.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	_, err = env.projects.AddMilestone(ctx, mallory.ID, project.ID, AddMilestoneInput{Title: "sneaky"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestListProjects(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := env.seedUser("alice", 0, 0)
	bob := env.seedUser("bob", 0, 0)
	carol := env.seedUser("carol", 0, 0)

	_, project := env.seedAcceptedSwap(alice, bob)

	mine, err := env.projects.ListProjects(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, project.ID, mine[0].ID)

	none, err := env.projects.ListProjects(ctx, carol.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}
