package entity

import (
	"math"
	"time"
)

type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusCancelled ProjectStatus = "cancelled"
)

type MilestoneStatus string

const (
	MilestoneStatusPending    MilestoneStatus = "pending"
	MilestoneStatusInProgress MilestoneStatus = "in_progress"
	MilestoneStatusCompleted  MilestoneStatus = "completed"
)

// CanAdvanceTo encodes the only legal milestone moves: pending -> in_progress
// and in_progress -> completed. No skipping, no going back.
func (s MilestoneStatus) CanAdvanceTo(next MilestoneStatus) bool {
	switch s {
	case MilestoneStatusPending:
		return next == MilestoneStatusInProgress
	case MilestoneStatusInProgress:
		return next == MilestoneStatusCompleted
	default:
		return false
	}
}

func (s MilestoneStatus) Valid() bool {
	switch s {
	case MilestoneStatusPending, MilestoneStatusInProgress, MilestoneStatusCompleted:
		return true
	}
	return false
}

type DeliverableStatus string

const (
	DeliverableStatusPending           DeliverableStatus = "pending"
	DeliverableStatusSubmitted         DeliverableStatus = "submitted"
	DeliverableStatusApproved          DeliverableStatus = "approved"
	DeliverableStatusRevisionRequested DeliverableStatus = "revision_requested"
)

// CanAdvanceTo encodes the deliverable lifecycle. revision_requested may cycle
// back to submitted (resubmission); approved is terminal.
func (s DeliverableStatus) CanAdvanceTo(next DeliverableStatus) bool {
	switch s {
	case DeliverableStatusPending:
		return next == DeliverableStatusSubmitted
	case DeliverableStatusSubmitted:
		return next == DeliverableStatusApproved || next == DeliverableStatusRevisionRequested
	case DeliverableStatusRevisionRequested:
		return next == DeliverableStatusSubmitted
	default:
		return false
	}
}

func (s DeliverableStatus) Valid() bool {
	switch s {
	case DeliverableStatusPending, DeliverableStatusSubmitted,
		DeliverableStatusApproved, DeliverableStatusRevisionRequested:
		return true
	}
	return false
}

type Milestone struct {
	ID          string          `json:"id" firestore:"id"`
	Title       string          `json:"title" firestore:"title"`
	Description string          `json:"description,omitempty" firestore:"description,omitempty"`
	DueDate     *time.Time      `json:"due_date,omitempty" firestore:"dueDate,omitempty"`
	Order       int             `json:"order" firestore:"order"`
	Status      MilestoneStatus `json:"status" firestore:"status"`
}

type Deliverable struct {
	ID          string            `json:"id" firestore:"id"`
	Title       string            `json:"title" firestore:"title"`
	Description string            `json:"description,omitempty" firestore:"description,omitempty"`
	FileRef     string            `json:"file_ref,omitempty" firestore:"fileRef,omitempty"`
	Status      DeliverableStatus `json:"status" firestore:"status"`
}

// Project tracks the collaborative execution of an accepted swap. It is bound
// 1:1 to its proposal and is never deleted, only completed or cancelled.
type Project struct {
	ID             string        `json:"id" firestore:"id"`
	SwapProposalID string        `json:"swap_proposal_id" firestore:"swapProposalId"`
	Status         ProjectStatus `json:"status" firestore:"status"`
	Progress       int           `json:"progress" firestore:"progress"`
	Milestones     []Milestone   `json:"milestones" firestore:"milestones"`
	Deliverables   []Deliverable `json:"deliverables" firestore:"deliverables"`
	Deadline       *time.Time    `json:"deadline,omitempty" firestore:"deadline,omitempty"`
	CompletedAt    *time.Time    `json:"completed_at,omitempty" firestore:"completedAt,omitempty"`
	CancelReason   string        `json:"cancel_reason,omitempty" firestore:"cancelReason,omitempty"`
	CreatedAt      time.Time     `json:"created_at" firestore:"createdAt"`
	UpdatedAt      time.Time     `json:"updated_at" firestore:"updatedAt"`
}

// RecomputeProgress derives progress from the milestone completion ratio. It
// is the only write path to Progress.
func (p *Project) RecomputeProgress() {
	if len(p.Milestones) == 0 {
		p.Progress = 0
		return
	}

	completed := 0
	for _, m := range p.Milestones {
		if m.Status == MilestoneStatusCompleted {
			completed++
		}
	}

	p.Progress = int(math.Round(100 * float64(completed) / float64(len(p.Milestones))))
}

func (p *Project) Milestone(id string) *Milestone {
	for i := range p.Milestones {
		if p.Milestones[i].ID == id {
			return &p.Milestones[i]
		}
	}
	return nil
}

func (p *Project) Deliverable(id string) *Deliverable {
	for i := range p.Deliverables {
		if p.Deliverables[i].ID == id {
			return &p.Deliverables[i]
		}
	}
	return nil
}

func (p *Project) AllMilestonesCompleted() bool {
	for _, m := range p.Milestones {
		if m.Status != MilestoneStatusCompleted {
			return false
		}
	}
	return true
}
