package domain

import "time"

type OverworkRequestType string

const (
	// OverworkTemporary raises the effective maximum for the current period only.
	OverworkTemporary OverworkRequestType = "temporary"
	// OverworkPermanent raises the base quota and persists across periods.
	OverworkPermanent OverworkRequestType = "permanent"
)

// OverworkUrgency is informational only and never affects control flow.
type OverworkUrgency string

const (
	UrgencyLow    OverworkUrgency = "low"
	UrgencyMedium OverworkUrgency = "medium"
	UrgencyHigh   OverworkUrgency = "high"
)

type OverworkStatus string

const (
	OverworkPending  OverworkStatus = "PENDING"
	OverworkApproved OverworkStatus = "APPROVED"
	OverworkRejected OverworkStatus = "REJECTED"
)

func (s OverworkStatus) Terminal() bool {
	return s == OverworkApproved || s == OverworkRejected
}

// OverworkRequest is a staff-initiated appeal to raise their shift quota,
// decided by an administrator. At most one pending request may exist per staff
// member; terminal records are kept for audit and never mutated again.
type OverworkRequest struct {
	ID               int64               `json:"id"`
	StaffID          int64               `json:"staffID"`
	AdditionalShifts int32               `json:"additionalShifts"`
	Reason           string              `json:"reason"`
	Urgency          OverworkUrgency     `json:"urgency"`
	Type             OverworkRequestType `json:"type"`
	Period           Period              `json:"period"`
	Status           OverworkStatus      `json:"status"`
	DecidedBy        *int64              `json:"decidedBy"`
	DecisionNotes    string              `json:"decisionNotes"`
	CreatedAt        time.Time           `json:"createdAt"`
	DecidedAt        *time.Time          `json:"decidedAt"`
	Version          int32               `json:"-"`
}
