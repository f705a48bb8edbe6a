package repository

import (
	"sort"
	"sync"

	"skillswap/internal/domain/entity"
)

// MemoryStore backs the repository interfaces with plain maps for tests and
// local development. A single mutex covers every compound mutation, which
// gives the same atomicity the Firestore adapters get from transactions.
type MemoryStore struct {
	mu        sync.Mutex
	users     map[string]*entity.User
	services  map[string]*entity.Service
	proposals map[string]*entity.SwapProposal
	projects  map[string]*entity.Project
	reviews   map[string]*entity.Review
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:     make(map[string]*entity.User),
		services:  make(map[string]*entity.Service),
		proposals: make(map[string]*entity.SwapProposal),
		projects:  make(map[string]*entity.Project),
		reviews:   make(map[string]*entity.Review),
	}
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	c.Skills = append([]string(nil), u.Skills...)
	return &c
}

func cloneService(s *entity.Service) *entity.Service {
	c := *s
	c.Skills = append([]string(nil), s.Skills...)
	return &c
}

func cloneProposal(p *entity.SwapProposal) *entity.SwapProposal {
	c := *p
	return &c
}

func cloneProject(p *entity.Project) *entity.Project {
	c := *p
	c.Milestones = append([]entity.Milestone(nil), p.Milestones...)
	c.Deliverables = append([]entity.Deliverable(nil), p.Deliverables...)
	return &c
}

func cloneReview(r *entity.Review) *entity.Review {
	c := *r
	return &c
}

func sortServices(services []*entity.Service) {
	sort.Slice(services, func(i, j int) bool {
		if !services[i].CreatedAt.Equal(services[j].CreatedAt) {
			return services[i].CreatedAt.Before(services[j].CreatedAt)
		}
		return services[i].ID < services[j].ID
	})
}
