package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillswap/internal/domain/entity"
	"skillswap/pkg/errors"
)

func TestCreateProposal(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := env.seedUser("alice", 0, 0)
	bob := env.seedUser("bob", 0, 0)

	offer := env.seedService(alice.ID, "design", entity.ServiceKindOffer, "figma")
	counterpart := env.seedService(bob.ID, "development", entity.ServiceKindOffer, "go")

	proposal, err := env.proposals.CreateProposal(ctx, alice.ID, CreateProposalInput{
		RecipientID:        bob.ID,
		ProposerServiceID:  offer.ID,
		RecipientServiceID: counterpart.ID,
		Message:            "logo for a landing page?",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, proposal.ID)
	assert.Equal(t, entity.ProposalStatusPending, proposal.Status)
	assert.Equal(t, alice.ID, proposal.ProposerID)
	assert.Equal(t, bob.ID, proposal.RecipientID)

	created := env.events.eventsOfType(entity.EventProposalCreated)
	require.Len(t, created, 1)
	assert.Equal(t, bob.ID, created[0].RecipientID)
}

func TestCreateProposalValidations(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := env.seedUser("alice", 0, 0)
	bob := env.seedUser("bob", 0, 0)

	aliceOffer := env.seedService(alice.ID, "design", entity.ServiceKindOffer, "figma")
	aliceNeed := env.seedService(alice.ID, "development", entity.ServiceKindNeed, "go")
	bobOffer := env.seedService(bob.ID, "development", entity.ServiceKindOffer, "go")

	tests := []struct {
		name  string
		input CreateProposalInput
		code  string
	}{
		{
			name: "self swap",
			input: CreateProposalInput{
				RecipientID:        alice.ID,
				ProposerServiceID:  aliceOffer.ID,
				RecipientServiceID: aliceOffer.ID,
			},
			code: "VALIDATION_ERROR",
		},
		{
			name: "unknown recipient",
			input: CreateProposalInput{
				RecipientID:        "missing",
				ProposerServiceID:  aliceOffer.ID,
				RecipientServiceID: bobOffer.ID,
			},
			code: "NOT_FOUND",
		},
		{
			name: "proposer service not owned",
			input: CreateProposalInput{
				RecipientID:        bob.ID,
				ProposerServiceID:  bobOffer.ID,
				RecipientServiceID: bobOffer.ID,
			},
			code: "VALIDATION_ERROR",
		},
		{
			name: "proposer service is a need",
			input: CreateProposalInput{
				RecipientID:        bob.ID,
				ProposerServiceID:  aliceNeed.ID,
				RecipientServiceID: bobOffer.ID,
			},
			code: "VALIDATION_ERROR",
		},
		{
			name: "recipient service not owned by recipient",
			input: CreateProposalInput{
				RecipientID:        bob.ID,
				ProposerServiceID:  aliceOffer.ID,
				RecipientServiceID: aliceOffer.ID,
			},
			code: "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.proposals.CreateProposal(ctx, alice.ID, tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.code), "expected %s, got %v", tt.code, err)
		})
	}
}

func TestCreateProposalRejectsInactiveService(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := env.seedUser("alice", 0, 0)
	bob := env.seedUser("bob", 0, 0)

	offer := env.seedService(alice.ID, "design", entity.ServiceKindOffer, "figma")
	counterpart := env.seedService(bob.ID, "development", entity.ServiceKindOffer, "go")

	require.NoError(t, env.catalog.DeactivateService(ctx, counterpart.ID, bob.ID))

	_, err := env.proposals.CreateProposal(ctx, alice.ID, CreateProposalInput{
		RecipientID:        bob.ID,
		ProposerServiceID:  offer.ID,
		RecipientServiceID: counterpart.ID,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
}

func TestRespondToProposalAcceptCreatesProject(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := env.seedUser("alice", 0, 0)
	bob := env.seedUser("bob", 0, 0)

	proposal, project := env.seedAcceptedSwap(alice, bob)

	stored, err := env.proposalRepo.GetByID(ctx, proposal.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ProposalStatusAccepted, stored.Status)
	require.NotNil(t, stored.RespondedAt)

	assert.Equal(t, proposal.ID, project.SwapProposalID)
	assert.Equal(t, entity.ProjectStatusActive, project.Status)
	assert.Equal(t, 0, project.Progress)
	assert.Empty(t, project.Milestones)

	accepted := env.events.eventsOfType(entity.EventProposalAccepted)
	require.Len(t, accepted, 1)
	assert.Equal(t, alice.ID, accepted[0].RecipientID)
	assert.Equal(t, project.ID, accepted[0].Payload["project_id"])
}

func TestRespondToProposalReject(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := env.seedUser("alice", 0, 0)
	bob := env.seedUser("bob", 0, 0)

	offer := env.seedService(alice.ID, "design", entity.ServiceKindOffer, "figma")
	counterpart := env.seedService(bob.ID, "development", entity.ServiceKindOffer, "go")

	proposal, err := env.proposals.CreateProposal(ctx, alice.ID, CreateProposalInput{
		RecipientID:        bob.ID,
		ProposerServiceID:  offer.ID,
		RecipientServiceID: counterpart.ID,
	})
	require.NoError(t, err)

	rejected, err := env.proposals.RespondToProposal(ctx, bob.ID, proposal.ID, "reject")
	require.NoError(t, err)
	assert.Equal(t, entity.ProposalStatusRejected, rejected.Status)

	// No project appears for a rejected proposal.
	_, err = env.projectRepo.GetBySwapProposalID(ctx, proposal.ID)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestRespondToProposalOnlyRecipient(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := env.seedUser("alice", 0, 0)
	bob := env.seedUser("bob", 0, 0)

	offer := env.seedService(alice.ID, "design", entity.ServiceKindOffer, "figma")
	counterpart := env.seedService(bob.ID, "development", entity.ServiceKindOffer, "go")

	proposal, err := env.proposals.CreateProposal(ctx, alice.ID, CreateProposalInput{
		RecipientID:        bob.ID,
		ProposerServiceID:  offer.ID,
		RecipientServiceID: counterpart.ID,
	})
	require.NoError(t, err)

	_, err = env.proposals.RespondToProposal(ctx, alice.ID, proposal.ID, "accept")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestRespondToProposalTwice(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := env.seedUser("alice", 0, 0)
	bob := env.seedUser("bob", 0, 0)

	proposal, _ := env.seedAcceptedSwap(alice, bob)

	_, err := env.proposals.RespondToProposal(ctx, bob.ID, proposal.ID, "reject")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "INVALID_STATE"))
}

// TestRespondToProposalConcurrentAccept races two accepts; exactly one must
// win and exactly one project must exist afterwards.
func TestRespondToProposalConcurrentAccept(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := env.seedUser("alice", 0, 0)
	bob := env.seedUser("bob", 0, 0)

	offer := env.seedService(alice.ID, "design", entity.ServiceKindOffer, "figma")
	counterpart := env.seedService(bob.ID, "development", entity.ServiceKindOffer, "go")

	proposal, err := env.proposals.CreateProposal(ctx, alice.ID, CreateProposalInput{
		RecipientID:        bob.ID,
		ProposerServiceID:  offer.ID,
		RecipientServiceID: counterpart.ID,
	})
	require.NoError(t, err)

	const attempts = 8
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.proposals.RespondToProposal(ctx, bob.ID, proposal.ID, "accept")
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.True(t, errors.Is(err, "INVALID_STATE"), "unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, winners)

	projects, err := env.projectRepo.ListByProposalIDs(ctx, []string{proposal.ID})
	require.NoError(t, err)
	assert.Len(t, projects, 1)
}

func TestListProposalsByRoleAndStatus(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := env.seedUser("alice", 0, 0)
	bob := env.seedUser("bob", 0, 0)

	env.seedAcceptedSwap(alice, bob)

	offer := env.seedService(alice.ID, "writing", entity.ServiceKindOffer, "copy")
	counterpart := env.seedService(bob.ID, "seo", entity.ServiceKindOffer, "audits")
	_, err := env.proposals.CreateProposal(ctx, alice.ID, CreateProposalInput{
		RecipientID:        bob.ID,
		ProposerServiceID:  offer.ID,
		RecipientServiceID: counterpart.ID,
	})
	require.NoError(t, err)

	asProposer, err := env.proposals.ListProposals(ctx, alice.ID, "proposer", "")
	require.NoError(t, err)
	assert.Len(t, asProposer, 2)

	pending, err := env.proposals.ListProposals(ctx, bob.ID, "recipient", entity.ProposalStatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	asRecipient, err := env.proposals.ListProposals(ctx, alice.ID, "recipient", "")
	require.NoError(t, err)
	assert.Empty(t, asRecipient)

	_, err = env.proposals.ListProposals(ctx, alice.ID, "observer", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
}
