package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillswap/internal/domain/entity"
	"skillswap/pkg/errors"
)

func TestFindOpportunitiesReciprocalMatch(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := env.seedUser("alice", 0, 0)
	bob := env.seedUser("bob", 0, 0)

	env.seedService(alice.ID, "design", entity.ServiceKindOffer, "figma")
	env.seedService(alice.ID, "development", entity.ServiceKindNeed, "go")
	env.seedService(bob.ID, "development", entity.ServiceKindOffer, "go")
	env.seedService(bob.ID, "design", entity.ServiceKindNeed, "figma")

	opportunities, err := env.matcher.FindOpportunities(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, opportunities, 1)

	opp := opportunities[0]
	assert.Equal(t, bob.ID, opp.Owner.ID)
	assert.Equal(t, "development", opp.TheirOffer.Category)
	assert.Equal(t, "design", opp.TheirNeed.Category)

	// base 20 + 25 for full overlap in each direction, no rating bonus
	assert.Equal(t, 70, opp.Score)
}

func TestFindOpportunitiesIsDeterministic(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := env.seedUser("alice", 0, 0)
	bob := env.seedUser("bob", 4.8, 12)
	carol := env.seedUser("carol", 3.2, 4)

	env.seedService(alice.ID, "design", entity.ServiceKindOffer, "figma", "branding")
	env.seedService(alice.ID, "development", entity.ServiceKindNeed, "go", "grpc")
	for _, u := range []*entity.User{bob, carol} {
		env.seedService(u.ID, "development", entity.ServiceKindOffer, "go")
		env.seedService(u.ID, "design", entity.ServiceKindNeed, "figma")
	}

	first, err := env.matcher.FindOpportunities(ctx, alice.ID)
	require.NoError(t, err)

	second, err := env.matcher.FindOpportunities(ctx, alice.ID)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Score, second[i].Score)
		assert.Equal(t, first[i].Owner.ID, second[i].Owner.ID)
		assert.Equal(t, first[i].TheirOffer.ID, second[i].TheirOffer.ID)
	}
}

func TestFindOpportunitiesOrdersByScoreThenRating(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := env.seedUser("alice", 0, 0)
	strong := env.seedUser("strong", 5.0, 20)
	weak := env.seedUser("weak", 3.0, 5)

	env.seedService(alice.ID, "design", entity.ServiceKindOffer, "figma")
	env.seedService(alice.ID, "development", entity.ServiceKindNeed, "go")
	for _, u := range []*entity.User{strong, weak} {
		env.seedService(u.ID, "development", entity.ServiceKindOffer, "go")
		env.seedService(u.ID, "design", entity.ServiceKindNeed, "figma")
	}

	opportunities, err := env.matcher.FindOpportunities(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, opportunities, 2)

	assert.Equal(t, strong.ID, opportunities[0].Owner.ID)
	assert.Equal(t, weak.ID, opportunities[1].Owner.ID)
	assert.Greater(t, opportunities[0].Score, opportunities[1].Score)

	// 20 base + 50 overlap + 10 rating + 5 quality bonus
	assert.Equal(t, 85, opportunities[0].Score)
	// 20 base + 50 overlap + 6 rating
	assert.Equal(t, 76, opportunities[1].Score)
}

func TestFindOpportunitiesRequiresBothSides(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := env.seedUser("alice", 0, 0)
	bob := env.seedUser("bob", 0, 0)

	// Alice only offers, never needs anything.
	env.seedService(alice.ID, "design", entity.ServiceKindOffer, "figma")
	env.seedService(bob.ID, "development", entity.ServiceKindOffer, "go")
	env.seedService(bob.ID, "design", entity.ServiceKindNeed, "figma")

	opportunities, err := env.matcher.FindOpportunities(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, opportunities)
}

func TestFindOpportunitiesSkipsSuspendedOwners(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := env.seedUser("alice", 0, 0)
	bob := env.seedUser("bob", 0, 0)

	bob.Status = "suspended"
	require.NoError(t, env.userRepo.Update(ctx, bob))

	env.seedService(alice.ID, "design", entity.ServiceKindOffer, "figma")
	env.seedService(alice.ID, "development", entity.ServiceKindNeed, "go")
	env.seedService(bob.ID, "development", entity.ServiceKindOffer, "go")
	env.seedService(bob.ID, "design", entity.ServiceKindNeed, "figma")

	opportunities, err := env.matcher.FindOpportunities(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, opportunities)
}

func TestFindOpportunitiesSkipsInactiveServices(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := env.seedUser("alice", 0, 0)
	bob := env.seedUser("bob", 0, 0)

	env.seedService(alice.ID, "design", entity.ServiceKindOffer, "figma")
	env.seedService(alice.ID, "development", entity.ServiceKindNeed, "go")
	theirOffer := env.seedService(bob.ID, "development", entity.ServiceKindOffer, "go")
	env.seedService(bob.ID, "design", entity.ServiceKindNeed, "figma")

	require.NoError(t, env.catalog.DeactivateService(ctx, theirOffer.ID, bob.ID))

	opportunities, err := env.matcher.FindOpportunities(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, opportunities)
}

func TestFindOpportunitiesUnknownUser(t *testing.T) {
	env := newTestEnv()

	_, err := env.matcher.FindOpportunities(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}
