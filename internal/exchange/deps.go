// Package exchange is the shift-exchange and overwork-eligibility kernel: the
// workload ledger, the eligibility evaluator, the swap eligibility gate and the
// two approval workflows. It performs no I/O of its own; persistence, roster
// mutation and notification delivery are injected collaborators whose failures
// surface as explicit error results.
package exchange

import (
	"time"

	"github.com/rsud-harapan/roster-manager/backend/internal/domain"
)

// StaffDirectory resolves staff members and applies permanent quota raises.
type StaffDirectory interface {
	GetStaff(id int64) (*domain.StaffMember, error)
	RaiseBaseQuota(id int64, amount int32) error
}

// RosterStore owns shift assignments. ReassignShift must be a single logical
// operation; it either moves the shift or leaves it untouched.
type RosterStore interface {
	GetShift(id int64) (*domain.ShiftAssignment, error)
	ReassignShift(shiftID int64, newOwnerID int64) error
}

// WorkloadStore persists per-(staff, period) committed counts and temporary
// exceptions. AdjustCommitted applies delta atomically: a positive delta that
// would push the count past maxAllowed fails with a quota_exceeded error, a
// negative delta never takes the count below zero.
type WorkloadStore interface {
	// GetWorkload returns a zero-valued row when none exists yet for the period.
	GetWorkload(staffID int64, period domain.Period) (*domain.Workload, error)
	AdjustCommitted(staffID int64, period domain.Period, delta int32, maxAllowed int32) error
	AddTemporaryException(staffID int64, period domain.Period, amount int32) error
}

// OverworkRequestStore persists overwork requests. UpdateOverworkRequest is
// version-checked: the loser of a concurrent write gets an invalid_state error.
type OverworkRequestStore interface {
	CreateOverworkRequest(req *domain.OverworkRequest) error
	GetOverworkRequest(id int64) (*domain.OverworkRequest, error)
	UpdateOverworkRequest(req *domain.OverworkRequest) error
	HasPendingOverworkRequest(staffID int64) (bool, error)
	ListOverworkRequestsByStaff(staffID int64) ([]*domain.OverworkRequest, error)
	ListPendingOverworkRequests() ([]*domain.OverworkRequest, error)
}

// SwapRequestStore persists swap requests. UpdateSwapRequest is version-checked
// like UpdateOverworkRequest.
type SwapRequestStore interface {
	CreateSwapRequest(req *domain.ShiftSwapRequest) error
	GetSwapRequest(id int64) (*domain.ShiftSwapRequest, error)
	UpdateSwapRequest(req *domain.ShiftSwapRequest) error
	ListSwapRequestsForStaff(staffID int64) ([]*domain.ShiftSwapRequest, error)
}

// NotificationSink is fire-and-forget from the kernel's perspective: delivery
// failures are the sink's problem, never the transition's.
type NotificationSink interface {
	Notify(member *domain.StaffMember, eventType string, data any)
}

// PeriodProvider is injected so tests can fix "now".
type PeriodProvider interface {
	CurrentPeriod() domain.Period
}

// SystemPeriod derives the period from the wall clock.
type SystemPeriod struct{}

func (SystemPeriod) CurrentPeriod() domain.Period {
	return domain.PeriodOf(time.Now())
}
