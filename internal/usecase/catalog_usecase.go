package usecase

import (
	"context"
	"time"

	"skillswap/internal/domain/entity"
	"skillswap/internal/domain/repository"
	"skillswap/pkg/errors"
)

// CatalogUseCase owns the service catalog: everything a user offers or needs.
type CatalogUseCase struct {
	serviceRepo repository.ServiceRepository
	userRepo    repository.UserRepository
}

func NewCatalogUseCase(serviceRepo repository.ServiceRepository, userRepo repository.UserRepository) *CatalogUseCase {
	return &CatalogUseCase{
		serviceRepo: serviceRepo,
		userRepo:    userRepo,
	}
}

type CreateServiceInput struct {
	Title             string
	Description       string
	Category          string
	Kind              entity.ServiceKind
	EstimatedValue    float64
	EstimatedDuration string
	Skills            []string
}

type UpdateServiceInput struct {
	Title             string
	Description       string
	Category          string
	EstimatedValue    *float64
	EstimatedDuration string
	Skills            []string
}

func (uc *CatalogUseCase) CreateService(ctx context.Context, ownerID string, input CreateServiceInput) (*entity.Service, error) {
	if _, err := uc.userRepo.GetByID(ctx, ownerID); err != nil {
		return nil, errors.NotFound("User", err)
	}

	if input.Title == "" || input.Description == "" || input.Category == "" {
		return nil, errors.BadRequest("Title, description and category are required", nil)
	}

	if !input.Kind.Valid() {
		return nil, errors.BadRequest("Kind must be offer or need", nil)
	}

	skills := input.Skills
	if skills == nil {
		skills = []string{}
	}

	now := time.Now()
	service := &entity.Service{
		OwnerID:           ownerID,
		Title:             input.Title,
		Description:       input.Description,
		Category:          input.Category,
		Kind:              input.Kind,
		EstimatedValue:    input.EstimatedValue,
		EstimatedDuration: input.EstimatedDuration,
		Skills:            skills,
		Active:            true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := uc.serviceRepo.Create(ctx, service); err != nil {
		return nil, err
	}

	return service, nil
}

func (uc *CatalogUseCase) UpdateService(ctx context.Context, id, ownerID string, input UpdateServiceInput) (*entity.Service, error) {
	service, err := uc.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if service.OwnerID != ownerID {
		return nil, errors.Forbidden("You don't have permission to update this service", nil)
	}

	if input.Title != "" {
		service.Title = input.Title
	}
	if input.Description != "" {
		service.Description = input.Description
	}
	if input.Category != "" {
		service.Category = input.Category
	}
	if input.EstimatedValue != nil {
		service.EstimatedValue = *input.EstimatedValue
	}
	if input.EstimatedDuration != "" {
		service.EstimatedDuration = input.EstimatedDuration
	}
	if input.Skills != nil {
		service.Skills = input.Skills
	}

	service.UpdatedAt = time.Now()

	if err := uc.serviceRepo.Update(ctx, service); err != nil {
		return nil, err
	}

	return service, nil
}

// DeactivateService is a soft delete. Proposals keep referencing the service
// for audit purposes, so nothing cascades.
func (uc *CatalogUseCase) DeactivateService(ctx context.Context, id, ownerID string) error {
	service, err := uc.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if service.OwnerID != ownerID {
		return errors.Forbidden("You don't have permission to deactivate this service", nil)
	}

	if !service.Active {
		return nil
	}

	service.Active = false
	service.UpdatedAt = time.Now()

	return uc.serviceRepo.Update(ctx, service)
}

func (uc *CatalogUseCase) GetService(ctx context.Context, id string) (*entity.Service, error) {
	return uc.serviceRepo.GetByID(ctx, id)
}

func (uc *CatalogUseCase) ListByUser(ctx context.Context, userID string) ([]*entity.Service, error) {
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return nil, errors.NotFound("User", err)
	}
	return uc.serviceRepo.ListByOwner(ctx, userID)
}

func (uc *CatalogUseCase) ListByCategory(ctx context.Context, category string) ([]*entity.Service, error) {
	return uc.serviceRepo.ListActive(ctx, repository.ServiceFilter{Category: category})
}

func (uc *CatalogUseCase) ListByKind(ctx context.Context, kind entity.ServiceKind) ([]*entity.Service, error) {
	if !kind.Valid() {
		return nil, errors.BadRequest("Kind must be offer or need", nil)
	}
	return uc.serviceRepo.ListActive(ctx, repository.ServiceFilter{Kind: kind})
}

func (uc *CatalogUseCase) Search(ctx context.Context, query string) ([]*entity.Service, error) {
	if query == "" {
		return uc.serviceRepo.ListActive(ctx, repository.ServiceFilter{})
	}
	return uc.serviceRepo.Search(ctx, query)
}
