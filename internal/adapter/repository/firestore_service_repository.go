package repository

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"skillswap/internal/domain/entity"
	"skillswap/internal/domain/repository"
	"skillswap/pkg/errors"
)

type firestoreServiceRepository struct {
	client *firestore.Client
}

func NewFirestoreServiceRepository(client *firestore.Client) repository.ServiceRepository {
	return &firestoreServiceRepository{
		client: client,
	}
}

func (r *firestoreServiceRepository) Create(ctx context.Context, service *entity.Service) error {
	if service.ID == "" {
		doc := r.client.Collection("services").NewDoc()
		service.ID = doc.ID
	}

	now := time.Now()
	if service.CreatedAt.IsZero() {
		service.CreatedAt = now
	}
	service.UpdatedAt = now

	_, err := r.client.Collection("services").Doc(service.ID).Set(ctx, service)
	if err != nil {
		return errors.Internal("Failed to create service", err)
	}

	return nil
}

func (r *firestoreServiceRepository) GetByID(ctx context.Context, id string) (*entity.Service, error) {
	doc, err := r.client.Collection("services").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Service", err)
		}
		return nil, errors.Internal("Failed to get service", err)
	}

	var service entity.Service
	if err := doc.DataTo(&service); err != nil {
		return nil, errors.Internal("Failed to parse service data", err)
	}

	return &service, nil
}

func (r *firestoreServiceRepository) Update(ctx context.Context, service *entity.Service) error {
	service.UpdatedAt = time.Now()

	_, err := r.client.Collection("services").Doc(service.ID).Set(ctx, service)
	if err != nil {
		return errors.Internal("Failed to update service", err)
	}

	return nil
}

func (r *firestoreServiceRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Service, error) {
	query := r.client.Collection("services").Where("ownerId", "==", ownerID)
	return r.collect(ctx, query.Documents(ctx))
}

func (r *firestoreServiceRepository) ListActive(ctx context.Context, filter repository.ServiceFilter) ([]*entity.Service, error) {
	query := r.client.Collection("services").Query.Where("active", "==", true)

	if filter.Category != "" {
		query = query.Where("category", "==", filter.Category)
	}
	if filter.Kind != "" {
		query = query.Where("kind", "==", string(filter.Kind))
	}

	services, err := r.collect(ctx, query.Documents(ctx))
	if err != nil {
		return nil, err
	}

	if filter.ExcludeOwner == "" {
		return services, nil
	}

	filtered := services[:0]
	for _, service := range services {
		if service.OwnerID != filter.ExcludeOwner {
			filtered = append(filtered, service)
		}
	}

	return filtered, nil
}

// Search fetches active services and matches substrings client-side.
// Firestore has no substring operator; the catalog is small enough that this
// is acceptable.
func (r *firestoreServiceRepository) Search(ctx context.Context, query string) ([]*entity.Service, error) {
	services, err := r.ListActive(ctx, repository.ServiceFilter{})
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	matched := services[:0]
	for _, service := range services {
		if serviceMatches(service, needle) {
			matched = append(matched, service)
		}
	}

	return matched, nil
}

func (r *firestoreServiceRepository) collect(ctx context.Context, iter *firestore.DocumentIterator) ([]*entity.Service, error) {
	var services []*entity.Service

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list services", err)
		}

		var service entity.Service
		if err := doc.DataTo(&service); err != nil {
			return nil, errors.Internal("Failed to parse service data", err)
		}

		services = append(services, &service)
	}

	return services, nil
}
