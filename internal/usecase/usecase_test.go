package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"skillswap/internal/adapter/repository"
	"skillswap/internal/domain/entity"
	domainrepo "skillswap/internal/domain/repository"
)

// recorderPublisher captures published events for assertions.
type recorderPublisher struct {
	mu     sync.Mutex
	events []entity.Event
}

func (p *recorderPublisher) Publish(ctx context.Context, event entity.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recorderPublisher) eventsOfType(eventType string) []entity.Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	var matched []entity.Event
	for _, e := range p.events {
		if e.Type == eventType {
			matched = append(matched, e)
		}
	}
	return matched
}

type testEnv struct {
	userRepo     domainrepo.UserRepository
	serviceRepo  domainrepo.ServiceRepository
	proposalRepo domainrepo.ProposalRepository
	projectRepo  domainrepo.ProjectRepository
	reviewRepo   domainrepo.ReviewRepository

	events *recorderPublisher

	catalog   *CatalogUseCase
	matcher   *MatcherUseCase
	proposals *ProposalUseCase
	projects  *ProjectUseCase
	reviews   *ReviewUseCase
}

func newTestEnv() *testEnv {
	store := repository.NewMemoryStore()

	env := &testEnv{
		userRepo:     repository.NewMemoryUserRepository(store),
		serviceRepo:  repository.NewMemoryServiceRepository(store),
		proposalRepo: repository.NewMemoryProposalRepository(store),
		projectRepo:  repository.NewMemoryProjectRepository(store),
		reviewRepo:   repository.NewMemoryReviewRepository(store),
		events:       &recorderPublisher{},
	}

	env.catalog = NewCatalogUseCase(env.serviceRepo, env.userRepo)
	env.matcher = NewMatcherUseCase(env.serviceRepo, env.userRepo)
	env.proposals = NewProposalUseCase(env.proposalRepo, env.serviceRepo, env.userRepo, env.events)
	env.projects = NewProjectUseCase(env.projectRepo, env.proposalRepo, env.userRepo, env.events)
	env.reviews = NewReviewUseCase(env.reviewRepo, env.projectRepo, env.proposalRepo, env.userRepo, env.events)

	return env
}

func (env *testEnv) seedUser(name string, rating float64, reviewCount int) *entity.User {
	user := &entity.User{
		ID:          uuid.New().String(),
		Email:       name + "@example.com",
		DisplayName: name,
		Status:      "active",
		Rating:      rating,
		ReviewCount: reviewCount,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := env.userRepo.Create(context.Background(), user); err != nil {
		panic(err)
	}
	return user
}

func (env *testEnv) seedService(ownerID, category string, kind entity.ServiceKind, skills ...string) *entity.Service {
	service := &entity.Service{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Title:       category + " " + string(kind),
		Description: "seeded",
		Category:    category,
		Kind:        kind,
		Skills:      skills,
		Active:      true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := env.serviceRepo.Create(context.Background(), service); err != nil {
		panic(err)
	}
	return service
}

// seedAcceptedSwap wires two users through proposal acceptance and returns the
// resulting project.
func (env *testEnv) seedAcceptedSwap(proposer, recipient *entity.User) (*entity.SwapProposal, *entity.Project) {
	ctx := context.Background()

	offer := env.seedService(proposer.ID, "design", entity.ServiceKindOffer, "figma")
	counterpart := env.seedService(recipient.ID, "development", entity.ServiceKindOffer, "go")

	proposal, err := env.proposals.CreateProposal(ctx, proposer.ID, CreateProposalInput{
		RecipientID:        recipient.ID,
		ProposerServiceID:  offer.ID,
		RecipientServiceID: counterpart.ID,
		Message:            "let's trade",
	})
	if err != nil {
		panic(err)
	}

	if _, err := env.proposals.RespondToProposal(ctx, recipient.ID, proposal.ID, "accept"); err != nil {
		panic(err)
	}

	project, err := env.projectRepo.GetBySwapProposalID(ctx, proposal.ID)
	if err != nil {
		panic(err)
	}

	return proposal, project
}
