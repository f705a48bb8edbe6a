package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"skillswap/internal/domain/entity"
	"skillswap/internal/domain/repository"
	"skillswap/pkg/errors"
)

type memoryServiceRepository struct {
	store *MemoryStore
}

func NewMemoryServiceRepository(store *MemoryStore) repository.ServiceRepository {
	return &memoryServiceRepository{store: store}
}

func (r *memoryServiceRepository) Create(ctx context.Context, service *entity.Service) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if service.ID == "" {
		service.ID = uuid.New().String()
	}

	now := time.Now()
	if service.CreatedAt.IsZero() {
		service.CreatedAt = now
	}
	service.UpdatedAt = now

	r.store.services[service.ID] = cloneService(service)
	return nil
}

func (r *memoryServiceRepository) GetByID(ctx context.Context, id string) (*entity.Service, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	service, ok := r.store.services[id]
	if !ok {
		return nil, errors.NotFound("Service", nil)
	}

	return cloneService(service), nil
}

func (r *memoryServiceRepository) Update(ctx context.Context, service *entity.Service) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.services[service.ID]; !ok {
		return errors.NotFound("Service", nil)
	}

	service.UpdatedAt = time.Now()
	r.store.services[service.ID] = cloneService(service)
	return nil
}

func (r *memoryServiceRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Service, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	result := []*entity.Service{}
	for _, service := range r.store.services {
		if service.OwnerID == ownerID {
			result = append(result, cloneService(service))
		}
	}

	sortServices(result)
	return result, nil
}

func (r *memoryServiceRepository) ListActive(ctx context.Context, filter repository.ServiceFilter) ([]*entity.Service, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	result := []*entity.Service{}
	for _, service := range r.store.services {
		if !service.Active {
			continue
		}
		if filter.Category != "" && !strings.EqualFold(service.Category, filter.Category) {
			continue
		}
		if filter.Kind != "" && service.Kind != filter.Kind {
			continue
		}
		if filter.ExcludeOwner != "" && service.OwnerID == filter.ExcludeOwner {
			continue
		}
		result = append(result, cloneService(service))
	}

	sortServices(result)
	return result, nil
}

func (r *memoryServiceRepository) Search(ctx context.Context, query string) ([]*entity.Service, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	needle := strings.ToLower(query)

	result := []*entity.Service{}
	for _, service := range r.store.services {
		if service.Active && serviceMatches(service, needle) {
			result = append(result, cloneService(service))
		}
	}

	sortServices(result)
	return result, nil
}

func serviceMatches(service *entity.Service, needle string) bool {
	if strings.Contains(strings.ToLower(service.Title), needle) ||
		strings.Contains(strings.ToLower(service.Description), needle) ||
		strings.Contains(strings.ToLower(service.Category), needle) {
		return true
	}

	for _, skill := range service.Skills {
		if strings.Contains(strings.ToLower(skill), needle) {
			return true
		}
	}

	return false
}
