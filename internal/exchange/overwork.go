package exchange

import (
	"strings"
	"time"

	"github.com/rsud-harapan/roster-manager/backend/internal/domain"
)

// OverworkWorkflow drives overwork requests through their flat PENDING ->
// APPROVED | REJECTED state machine. Only administrators decide; approval
// raises the requester's quota through the ledger exactly once.
type OverworkWorkflow struct {
	requests OverworkRequestStore
	staff    StaffDirectory
	ledger   *Ledger
	notifier NotificationSink
	periods  PeriodProvider
}

func NewOverworkWorkflow(
	requests OverworkRequestStore,
	staff StaffDirectory,
	ledger *Ledger,
	notifier NotificationSink,
	periods PeriodProvider,
) *OverworkWorkflow {
	return &OverworkWorkflow{
		requests: requests,
		staff:    staff,
		ledger:   ledger,
		notifier: notifier,
		periods:  periods,
	}
}

type OverworkSubmission struct {
	StaffID          int64
	AdditionalShifts int32
	Reason           string
	Urgency          domain.OverworkUrgency
	Type             domain.OverworkRequestType
}

func (w *OverworkWorkflow) Submit(sub OverworkSubmission) (*domain.OverworkRequest, error) {
	if strings.TrimSpace(sub.Reason) == "" {
		return nil, domain.ValidationError("a justification is required")
	}
	if sub.AdditionalShifts < 1 {
		return nil, domain.ValidationError("additional shifts must be at least 1")
	}
	switch sub.Type {
	case domain.OverworkTemporary, domain.OverworkPermanent:
	default:
		return nil, domain.ValidationError("unknown request type %q", sub.Type)
	}
	switch sub.Urgency {
	case domain.UrgencyLow, domain.UrgencyMedium, domain.UrgencyHigh:
	case "":
		sub.Urgency = domain.UrgencyMedium
	default:
		return nil, domain.ValidationError("unknown urgency %q", sub.Urgency)
	}

	if _, err := w.staff.GetStaff(sub.StaffID); err != nil {
		return nil, err
	}

	// One pending request per staff member; a second submission is rejected,
	// never queued.
	pending, err := w.requests.HasPendingOverworkRequest(sub.StaffID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, domain.InvalidStateError("an overwork request is already pending for this staff member")
	}

	req := &domain.OverworkRequest{
		StaffID:          sub.StaffID,
		AdditionalShifts: sub.AdditionalShifts,
		Reason:           sub.Reason,
		Urgency:          sub.Urgency,
		Type:             sub.Type,
		Period:           w.periods.CurrentPeriod(),
		Status:           domain.OverworkPending,
	}
	if err := w.requests.CreateOverworkRequest(req); err != nil {
		return nil, err
	}

	return req, nil
}

func (w *OverworkWorkflow) Approve(requestID, adminID int64, notes string) (*domain.OverworkRequest, error) {
	req, err := w.decide(requestID, adminID, domain.OverworkApproved, notes)
	if err != nil {
		return nil, err
	}

	// The decision is durably recorded before the ledger moves, so the loser
	// of a concurrent approve can never raise the quota a second time.
	permanent := req.Type == domain.OverworkPermanent
	if err := w.ledger.RaiseQuota(req.StaffID, req.AdditionalShifts, permanent, w.periods.CurrentPeriod()); err != nil {
		return nil, err
	}

	w.notifyDecision(req)
	return req, nil
}

func (w *OverworkWorkflow) Reject(requestID, adminID int64, reason string) (*domain.OverworkRequest, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, domain.ValidationError("a rejection reason is required")
	}

	req, err := w.decide(requestID, adminID, domain.OverworkRejected, reason)
	if err != nil {
		return nil, err
	}

	w.notifyDecision(req)
	return req, nil
}

func (w *OverworkWorkflow) decide(requestID, adminID int64, status domain.OverworkStatus, notes string) (*domain.OverworkRequest, error) {
	admin, err := w.staff.GetStaff(adminID)
	if err != nil {
		return nil, err
	}
	if admin.Role != domain.RoleAdministrator {
		return nil, domain.ForbiddenError("only an administrator may decide overwork requests")
	}

	req, err := w.requests.GetOverworkRequest(requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != domain.OverworkPending {
		return nil, domain.InvalidStateError("overwork request %d is already %s", req.ID, req.Status)
	}

	now := time.Now()
	req.Status = status
	req.DecidedBy = &adminID
	req.DecisionNotes = notes
	req.DecidedAt = &now

	if err := w.requests.UpdateOverworkRequest(req); err != nil {
		return nil, err
	}

	return req, nil
}

func (w *OverworkWorkflow) notifyDecision(req *domain.OverworkRequest) {
	member, err := w.staff.GetStaff(req.StaffID)
	if err != nil {
		return
	}

	w.notifier.Notify(member, domain.NotificationOverworkDecided, domain.OverworkDecidedData{
		FullName:         member.FullName,
		Status:           req.Status,
		AdditionalShifts: req.AdditionalShifts,
		Notes:            req.DecisionNotes,
	})
}

func (w *OverworkWorkflow) History(staffID int64) ([]*domain.OverworkRequest, error) {
	if _, err := w.staff.GetStaff(staffID); err != nil {
		return nil, err
	}
	return w.requests.ListOverworkRequestsByStaff(staffID)
}

func (w *OverworkWorkflow) ListPending() ([]*domain.OverworkRequest, error) {
	return w.requests.ListPendingOverworkRequests()
}
