package repository

import (
	"context"

	"skillswap/internal/domain/entity"
)

// ServiceFilter narrows active-service reads. Empty fields are ignored.
type ServiceFilter struct {
	Category     string
	Kind         entity.ServiceKind
	ExcludeOwner string
}

type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	GetByID(ctx context.Context, id string) (*entity.Service, error)
	Update(ctx context.Context, service *entity.Service) error

	// ListByOwner returns all of a user's services, active or not.
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Service, error)

	// ListActive returns active services matching the filter.
	ListActive(ctx context.Context, filter ServiceFilter) ([]*entity.Service, error)

	// Search matches active services by case-insensitive substring over title,
	// description, category and skill tokens.
	Search(ctx context.Context, query string) ([]*entity.Service, error)
}
