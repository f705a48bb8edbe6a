package entity

import (
	"time"
)

type ServiceKind string

const (
	ServiceKindOffer ServiceKind = "offer"
	ServiceKindNeed  ServiceKind = "need"
)

func (k ServiceKind) Valid() bool {
	return k == ServiceKindOffer || k == ServiceKindNeed
}

// Service is a skill a user offers to or seeks from others. EstimatedValue is
// informational only; no currency moves anywhere in the system.
type Service struct {
	ID                string      `json:"id" firestore:"id"`
	OwnerID           string      `json:"owner_id" firestore:"ownerId"`
	Title             string      `json:"title" firestore:"title"`
	Description       string      `json:"description" firestore:"description"`
	Category          string      `json:"category" firestore:"category"`
	Kind              ServiceKind `json:"kind" firestore:"kind"`
	EstimatedValue    float64     `json:"estimated_value,omitempty" firestore:"estimatedValue,omitempty"`
	EstimatedDuration string      `json:"estimated_duration,omitempty" firestore:"estimatedDuration,omitempty"`
	Skills            []string    `json:"skills" firestore:"skills"`
	Active            bool        `json:"active" firestore:"active"`
	CreatedAt         time.Time   `json:"created_at" firestore:"createdAt"`
	UpdatedAt         time.Time   `json:"updated_at" firestore:"updatedAt"`
}
