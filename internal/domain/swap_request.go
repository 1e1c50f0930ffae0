package domain

import (
	"slices"
	"time"
)

type SwapStatus string

const (
	SwapPending              SwapStatus = "PENDING"
	SwapApprovedByTarget     SwapStatus = "APPROVED_BY_TARGET"
	SwapRejectedByTarget     SwapStatus = "REJECTED_BY_TARGET"
	SwapWaitingUnitHead      SwapStatus = "WAITING_UNIT_HEAD"
	SwapRejectedByUnitHead   SwapStatus = "REJECTED_BY_UNIT_HEAD"
	SwapWaitingSupervisor    SwapStatus = "WAITING_SUPERVISOR"
	SwapRejectedBySupervisor SwapStatus = "REJECTED_BY_SUPERVISOR"
	SwapApproved             SwapStatus = "APPROVED"
)

// swapTransitions is the single source of truth for legal swap transitions.
// A status missing from the map is terminal. APPROVED_BY_TARGET is transient:
// the workflow branches out of it immediately, on the critical-unit flag.
var swapTransitions = map[SwapStatus][]SwapStatus{
	SwapPending:           {SwapApprovedByTarget, SwapRejectedByTarget},
	SwapApprovedByTarget:  {SwapWaitingUnitHead, SwapWaitingSupervisor},
	SwapWaitingUnitHead:   {SwapWaitingSupervisor, SwapRejectedByUnitHead},
	SwapWaitingSupervisor: {SwapApproved, SwapRejectedBySupervisor},
}

func (s SwapStatus) CanTransitionTo(next SwapStatus) bool {
	return slices.Contains(swapTransitions[s], next)
}

func (s SwapStatus) Terminal() bool {
	return len(swapTransitions[s]) == 0
}

// ShiftSwapRequest coordinates the hand-over of one shift assignment from the
// requester to a partner, through partner consent and, for critical units, a
// unit-head stage before the supervisor decision. Critical is frozen at
// submission so configuration edits cannot change an in-flight approval chain.
type ShiftSwapRequest struct {
	ID                    int64      `json:"id"`
	FromID                int64      `json:"fromID"`
	ToID                  int64      `json:"toID"`
	ShiftID               int64      `json:"shiftID"`
	Reason                string     `json:"reason"`
	Critical              bool       `json:"critical"`
	Status                SwapStatus `json:"status"`
	TargetRespondedAt     *time.Time `json:"targetRespondedAt"`
	UnitHeadID            *int64     `json:"unitHeadID"`
	UnitHeadNotes         string     `json:"unitHeadNotes"`
	UnitHeadRespondedAt   *time.Time `json:"unitHeadRespondedAt"`
	SupervisorID          *int64     `json:"supervisorID"`
	SupervisorNotes       string     `json:"supervisorNotes"`
	SupervisorRespondedAt *time.Time `json:"supervisorRespondedAt"`
	RejectionReason       string     `json:"rejectionReason"`
	NeedsReconciliation   bool       `json:"needsReconciliation"`
	CreatedAt             time.Time  `json:"createdAt"`
	Version               int32      `json:"-"`
}
