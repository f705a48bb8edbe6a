package entity

import (
	"time"
)

type ProposalStatus string

const (
	ProposalStatusPending  ProposalStatus = "pending"
	ProposalStatusAccepted ProposalStatus = "accepted"
	ProposalStatusRejected ProposalStatus = "rejected"
	// Completed is propagated from the bound project, never set by a user
	// action on the proposal itself.
	ProposalStatusCompleted ProposalStatus = "completed"
)

type SwapProposal struct {
	ID                 string         `json:"id" firestore:"id"`
	ProposerID         string         `json:"proposer_id" firestore:"proposerId"`
	RecipientID        string         `json:"recipient_id" firestore:"recipientId"`
	ProposerServiceID  string         `json:"proposer_service_id" firestore:"proposerServiceId"`
	RecipientServiceID string         `json:"recipient_service_id" firestore:"recipientServiceId"`
	Message            string         `json:"message,omitempty" firestore:"message,omitempty"`
	Status             ProposalStatus `json:"status" firestore:"status"`
	CreatedAt          time.Time      `json:"created_at" firestore:"createdAt"`
	UpdatedAt          time.Time      `json:"updated_at" firestore:"updatedAt"`
	RespondedAt        *time.Time     `json:"responded_at,omitempty" firestore:"respondedAt,omitempty"`
}

// Participants returns both sides of the swap.
func (p *SwapProposal) Participants() (string, string) {
	return p.ProposerID, p.RecipientID
}

func (p *SwapProposal) HasParticipant(userID string) bool {
	return p.ProposerID == userID || p.RecipientID == userID
}
