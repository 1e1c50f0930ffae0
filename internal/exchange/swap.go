package exchange

import (
	"strings"
	"time"

	"github.com/rsud-harapan/roster-manager/backend/internal/domain"
)

// SwapWorkflowParams carries the configuration the workflow is constructed
// with. CriticalUnits is external classification: a shift in one of these
// units must pass the unit-head stage before the supervisor decision.
type SwapWorkflowParams struct {
	CriticalUnits   []string
	MinReasonLength int
}

// SwapWorkflow coordinates partner consent, the conditional unit-head stage
// and the supervisor decision for one shift hand-over. Actor checks are
// evaluated here, not trusted from the caller.
type SwapWorkflow struct {
	swaps    SwapRequestStore
	roster   RosterStore
	staff    StaffDirectory
	ledger   *Ledger
	gate     *Gate
	notifier NotificationSink
	periods  PeriodProvider

	criticalUnits   map[string]bool
	minReasonLength int
}

func NewSwapWorkflow(
	params *SwapWorkflowParams,
	swaps SwapRequestStore,
	roster RosterStore,
	staff StaffDirectory,
	ledger *Ledger,
	gate *Gate,
	notifier NotificationSink,
	periods PeriodProvider,
) *SwapWorkflow {
	critical := make(map[string]bool, len(params.CriticalUnits))
	for _, unit := range params.CriticalUnits {
		critical[unit] = true
	}

	return &SwapWorkflow{
		swaps:           swaps,
		roster:          roster,
		staff:           staff,
		ledger:          ledger,
		gate:            gate,
		notifier:        notifier,
		periods:         periods,
		criticalUnits:   critical,
		minReasonLength: params.MinReasonLength,
	}
}

type SwapSubmission struct {
	FromID  int64
	ToID    int64
	ShiftID int64
	Reason  string
}

func (w *SwapWorkflow) Submit(sub SwapSubmission) (*domain.ShiftSwapRequest, error) {
	if sub.FromID == sub.ToID {
		return nil, domain.ValidationError("a shift cannot be swapped with its own owner")
	}
	if len(strings.TrimSpace(sub.Reason)) < w.minReasonLength {
		return nil, domain.ValidationError("reason must be at least %d characters", w.minReasonLength)
	}

	from, err := w.staff.GetStaff(sub.FromID)
	if err != nil {
		return nil, err
	}
	to, err := w.staff.GetStaff(sub.ToID)
	if err != nil {
		return nil, err
	}

	shift, err := w.roster.GetShift(sub.ShiftID)
	if err != nil {
		return nil, err
	}
	if shift.StaffID != sub.FromID {
		return nil, domain.ValidationError("shift %d does not belong to the requester", sub.ShiftID)
	}

	// Short-circuit before the multi-party workflow even starts: if the
	// partner cannot absorb the shift they need an approved overwork request
	// first.
	period := w.periods.CurrentPeriod()
	ok, err := w.gate.CanSwap(sub.FromID, sub.ToID, period)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.QuotaExceededError("%s has reached their shift limit for %s; the swap requires an approved overwork request", to.FullName, period)
	}

	req := &domain.ShiftSwapRequest{
		FromID:   sub.FromID,
		ToID:     sub.ToID,
		ShiftID:  sub.ShiftID,
		Reason:   sub.Reason,
		Critical: w.criticalUnits[shift.Unit],
		Status:   domain.SwapPending,
	}
	if err := w.swaps.CreateSwapRequest(req); err != nil {
		return nil, err
	}

	w.notifier.Notify(to, domain.NotificationSwapProposed, domain.SwapProposedData{
		FullName:      to.FullName,
		RequesterName: from.FullName,
		ShiftDate:     shift.Date.Format("2006-01-02"),
		Reason:        sub.Reason,
	})

	return req, nil
}

// RespondAsTarget records the named partner's consent or refusal. On consent
// the workflow branches automatically: critical shifts go to the unit head,
// everything else straight to the supervisor.
func (w *SwapWorkflow) RespondAsTarget(requestID, actorID int64, accept bool, reason string) (*domain.ShiftSwapRequest, error) {
	req, err := w.swaps.GetSwapRequest(requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != domain.SwapPending {
		return nil, domain.InvalidStateError("swap request %d is %s, not awaiting the partner", req.ID, req.Status)
	}
	if actorID != req.ToID {
		return nil, domain.ForbiddenError("only the named swap partner may respond at this stage")
	}

	now := time.Now()
	req.TargetRespondedAt = &now

	if !accept {
		if strings.TrimSpace(reason) == "" {
			return nil, domain.ValidationError("a rejection reason is required")
		}
		req.Status = domain.SwapRejectedByTarget
		req.RejectionReason = reason
	} else {
		next := domain.SwapWaitingSupervisor
		if req.Critical {
			next = domain.SwapWaitingUnitHead
		}
		if !domain.SwapApprovedByTarget.CanTransitionTo(next) {
			return nil, domain.InvalidStateError("swap request %d cannot move to %s", req.ID, next)
		}
		req.Status = next
	}

	if err := w.swaps.UpdateSwapRequest(req); err != nil {
		return nil, err
	}

	w.notifyStage(req, req.FromID, "partner")
	return req, nil
}

// RespondAsUnitHead decides the unit-head stage. Only the head of the shift's
// unit may act here.
func (w *SwapWorkflow) RespondAsUnitHead(requestID, actorID int64, approve bool, notes string) (*domain.ShiftSwapRequest, error) {
	req, err := w.swaps.GetSwapRequest(requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != domain.SwapWaitingUnitHead {
		return nil, domain.InvalidStateError("swap request %d is %s, not awaiting the unit head", req.ID, req.Status)
	}

	actor, err := w.staff.GetStaff(actorID)
	if err != nil {
		return nil, err
	}
	shift, err := w.roster.GetShift(req.ShiftID)
	if err != nil {
		return nil, err
	}
	if !actor.HeadsUnit(shift.Unit) {
		return nil, domain.ForbiddenError("only the head of unit %s may act at this stage", shift.Unit)
	}

	now := time.Now()
	req.UnitHeadID = &actorID
	req.UnitHeadRespondedAt = &now
	req.UnitHeadNotes = notes

	if approve {
		req.Status = domain.SwapWaitingSupervisor
	} else {
		if strings.TrimSpace(notes) == "" {
			return nil, domain.ValidationError("a rejection reason is required")
		}
		req.Status = domain.SwapRejectedByUnitHead
		req.RejectionReason = notes
	}

	if err := w.swaps.UpdateSwapRequest(req); err != nil {
		return nil, err
	}

	w.notifyStage(req, req.FromID, "unit head")
	return req, nil
}

// RespondAsSupervisor decides the final stage. Approval completes the swap:
// the eligibility gate is re-run, the ledger counts move, the APPROVED state
// is committed and the roster store is instructed to reassign the shift.
func (w *SwapWorkflow) RespondAsSupervisor(requestID, actorID int64, approve bool, notes string) (*domain.ShiftSwapRequest, error) {
	req, err := w.swaps.GetSwapRequest(requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != domain.SwapWaitingSupervisor {
		return nil, domain.InvalidStateError("swap request %d is %s, not awaiting a supervisor", req.ID, req.Status)
	}

	actor, err := w.staff.GetStaff(actorID)
	if err != nil {
		return nil, err
	}
	if !actor.CanActAsSupervisor() {
		return nil, domain.ForbiddenError("only a supervisor or administrator may act at this stage")
	}

	now := time.Now()
	req.SupervisorID = &actorID
	req.SupervisorRespondedAt = &now
	req.SupervisorNotes = notes

	if !approve {
		if strings.TrimSpace(notes) == "" {
			return nil, domain.ValidationError("a rejection reason is required")
		}
		req.Status = domain.SwapRejectedBySupervisor
		req.RejectionReason = notes
		if err := w.swaps.UpdateSwapRequest(req); err != nil {
			return nil, err
		}
		w.notifyStage(req, req.FromID, "supervisor")
		return req, nil
	}

	return w.complete(req)
}

// complete finishes an approved swap. Loads may have changed since submission,
// so the gate runs again; the ledger counts move before APPROVED is committed
// so a quota race cannot approve an over-quota swap. Once APPROVED is durable
// a roster failure only flags the request for reconciliation: the approval is
// a fact about consent and is never rolled back.
func (w *SwapWorkflow) complete(req *domain.ShiftSwapRequest) (*domain.ShiftSwapRequest, error) {
	period := w.periods.CurrentPeriod()

	ok, err := w.gate.CanSwap(req.FromID, req.ToID, period)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.QuotaExceededError("the partner is now over their shift limit; the swap cannot complete without an approved overwork request")
	}

	if err := w.ledger.Reserve(req.ToID, period); err != nil {
		return nil, err
	}
	if err := w.ledger.Release(req.FromID, period); err != nil {
		_ = w.ledger.Release(req.ToID, period)
		return nil, err
	}

	req.Status = domain.SwapApproved
	if err := w.swaps.UpdateSwapRequest(req); err != nil {
		// Lost the version race: hand the counts back and report the conflict.
		_ = w.ledger.Release(req.ToID, period)
		_ = w.ledger.Reserve(req.FromID, period)
		return nil, err
	}

	if err := w.roster.ReassignShift(req.ShiftID, req.ToID); err != nil {
		req.NeedsReconciliation = true
		if uerr := w.swaps.UpdateSwapRequest(req); uerr != nil {
			return req, domain.ReconciliationError("swap %d approved but shift %d was not reassigned and the request could not be flagged: %v", req.ID, req.ShiftID, err)
		}
		w.notifyReconciliation(req)
		return req, domain.ReconciliationError("swap %d approved but shift %d was not reassigned: %v", req.ID, req.ShiftID, err)
	}

	w.notifyStage(req, req.FromID, "supervisor")
	w.notifyStage(req, req.ToID, "supervisor")
	return req, nil
}

func (w *SwapWorkflow) GetByID(requestID int64) (*domain.ShiftSwapRequest, error) {
	return w.swaps.GetSwapRequest(requestID)
}

func (w *SwapWorkflow) ListForStaff(staffID int64) ([]*domain.ShiftSwapRequest, error) {
	if _, err := w.staff.GetStaff(staffID); err != nil {
		return nil, err
	}
	return w.swaps.ListSwapRequestsForStaff(staffID)
}

func (w *SwapWorkflow) notifyStage(req *domain.ShiftSwapRequest, staffID int64, stage string) {
	member, err := w.staff.GetStaff(staffID)
	if err != nil {
		return
	}

	w.notifier.Notify(member, domain.NotificationSwapUpdate, domain.SwapUpdateData{
		FullName: member.FullName,
		SwapID:   req.ID,
		Stage:    stage,
		Status:   req.Status,
		Reason:   req.RejectionReason,
	})
}

func (w *SwapWorkflow) notifyReconciliation(req *domain.ShiftSwapRequest) {
	member, err := w.staff.GetStaff(req.FromID)
	if err != nil {
		return
	}

	w.notifier.Notify(member, domain.NotificationSwapReconcile, domain.SwapReconcileData{
		FullName: member.FullName,
		SwapID:   req.ID,
		ShiftID:  req.ShiftID,
	})
}
