package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillswap/internal/domain/entity"
	"skillswap/pkg/errors"
)

func TestCreateService(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := env.seedUser("alice", 0, 0)

	service, err := env.catalog.CreateService(ctx, alice.ID, CreateServiceInput{
		Title:       "Logo design",
		Description: "Vector logo with two revision rounds",
		Category:    "design",
		Kind:        entity.ServiceKindOffer,
		Skills:      []string{"illustrator", "branding"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, service.ID)
	assert.True(t, service.Active)
	assert.Equal(t, alice.ID, service.OwnerID)

	_, err = env.catalog.CreateService(ctx, alice.ID, CreateServiceInput{
		Title:       "Broken",
		Description: "kind is invalid",
		Category:    "design",
		Kind:        "barter",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))

	_, err = env.catalog.CreateService(ctx, "missing", CreateServiceInput{
		Title:       "Orphan",
		Description: "no such owner",
		Category:    "design",
		Kind:        entity.ServiceKindOffer,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestUpdateServiceOwnerOnly(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := env.seedUser("alice", 0, 0)
	bob := env.seedUser("bob", 0, 0)

	service := env.seedService(alice.ID, "design", entity.ServiceKindOffer, "figma")

	_, err := env.catalog.UpdateService(ctx, service.ID, bob.ID, UpdateServiceInput{Title: "hijacked"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	updated, err := env.catalog.UpdateService(ctx, service.ID, alice.ID, UpdateServiceInput{
		Title:  "Product design",
		Skills: []string{"figma", "prototyping"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Product design", updated.Title)
	assert.Equal(t, []string{"figma", "prototyping"}, updated.Skills)
	// Untouched fields survive a partial update.
	assert.Equal(t, "design", updated.Category)
}

func TestDeactivateServiceDoesNotCascade(t *testing.T) {
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

	require.Error(t, env.catalog.DeactivateService(ctx, offer.ID, bob.ID))
	require.NoError(t, env.catalog.DeactivateService(ctx, offer.ID, alice.ID))

	// Deactivating twice is a no-op, not an error.
	require.NoError(t, env.catalog.DeactivateService(ctx, offer.ID, alice.ID))

	// The existing proposal still references the service for its audit trail.
	stored, err := env.proposalRepo.GetByID(ctx, proposal.ID)
	require.NoError(t, err)
	assert.Equal(t, offer.ID, stored.ProposerServiceID)

	service, err := env.catalog.GetService(ctx, offer.ID)
	require.NoError(t, err)
	assert.False(t, service.Active)
}

func TestListAndSearchServices(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := env.seedUser("alice", 0, 0)
	bob := env.seedUser("bob", 0, 0)

	env.seedService(alice.ID, "design", entity.ServiceKindOffer, "figma")
	env.seedService(alice.ID, "development", entity.ServiceKindNeed, "go")
	inactive := env.seedService(bob.ID, "design", entity.ServiceKindOffer, "sketch")
	require.NoError(t, env.catalog.DeactivateService(ctx, inactive.ID, bob.ID))

	byCategory, err := env.catalog.ListByCategory(ctx, "design")
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, alice.ID, byCategory[0].OwnerID)

	byKind, err := env.catalog.ListByKind(ctx, entity.ServiceKindNeed)
	require.NoError(t, err)
	assert.Len(t, byKind, 1)

	_, err = env.catalog.ListByKind(ctx, "barter")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))

	bySkill, err := env.catalog.Search(ctx, "figma")
	require.NoError(t, err)
	assert.Len(t, bySkill, 1)

	all, err := env.catalog.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := env.catalog.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}
