package entity

import (
	"time"
)

const (
	EventProposalCreated    = "proposal.created"
	EventProposalAccepted   = "proposal.accepted"
	EventProposalRejected   = "proposal.rejected"
	EventProposalCompleted  = "proposal.completed"
	EventMilestoneCompleted = "project.milestone_completed"
	EventProjectCompleted   = "project.completed"
	EventProjectCancelled   = "project.cancelled"
	EventReviewSubmitted    = "review.submitted"
)

// Event is a domain notification handed to the messaging layer. Delivery is
// fire-and-forget; the core never waits for confirmation.
type Event struct {
	Type        string                 `json:"type"`
	ActorID     string                 `json:"actor_id,omitempty"`
	SubjectID   string                 `json:"subject_id"`
	RecipientID string                 `json:"recipient_id"`
	Payload     map[string]interface{} `json:"payload,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
}
