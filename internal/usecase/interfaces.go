package usecase

import (
	"context"

	"skillswap/internal/domain/entity"
)

type FirebaseAuthClient interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
	GenerateToken(ctx context.Context, uid string) (string, error)
	SignInWithEmailPassword(email, password string) (string, error)
	UpdateUserPassword(ctx context.Context, uid, newPassword string) error
}

// EventPublisher hands domain events to the external messaging layer.
// Publishing never blocks an operation and failures are logged, not returned.
type EventPublisher interface {
	Publish(ctx context.Context, event entity.Event)
}
