package entity

import (
	"time"
)

type User struct {
	ID          string   `json:"id" firestore:"id"`
	Email       string   `json:"email" firestore:"email"`
	DisplayName string   `json:"display_name" firestore:"displayName"`
	Title       string   `json:"title,omitempty" firestore:"title,omitempty"`
	Bio         string   `json:"bio,omitempty" firestore:"bio,omitempty"`
	Skills      []string `json:"skills" firestore:"skills"`
	Status      string   `json:"status" firestore:"status"` // "active", "suspended"
	Verified    bool     `json:"verified" firestore:"verified"`

	// Aggregates derived from reviews and completed swaps. Never written
	// directly by profile edits.
	Rating         float64 `json:"rating" firestore:"rating"`
	ReviewCount    int     `json:"review_count" firestore:"reviewCount"`
	CompletedSwaps int     `json:"completed_swaps" firestore:"completedSwaps"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
