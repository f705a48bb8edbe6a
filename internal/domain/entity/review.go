package entity

import (
	"time"
)

// Review is immutable once created. At most one review exists per
// (project, reviewer, reviewee) triple.
type Review struct {
	ID         string    `json:"id" firestore:"id"`
	ProjectID  string    `json:"project_id" firestore:"projectId"`
	ReviewerID string    `json:"reviewer_id" firestore:"reviewerId"`
	RevieweeID string    `json:"reviewee_id" firestore:"revieweeId"`
	Rating     int       `json:"rating" firestore:"rating"` // 1-5
	Comment    string    `json:"comment,omitempty" firestore:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
}
