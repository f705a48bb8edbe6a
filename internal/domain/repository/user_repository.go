package repository

import (
	"context"

	"skillswap/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error

	// IncrementCompletedSwaps bumps the completed swap counter atomically.
	IncrementCompletedSwaps(ctx context.Context, userID string) error
}
