package exchange

import (
	"github.com/rsud-harapan/roster-manager/backend/internal/domain"
)

// Ledger is the authoritative count of committed shifts per staff member per
// period. Every decision point (evaluator, gate, workflow completions) reads
// through it instead of recomputing load ad hoc.
type Ledger struct {
	staff     StaffDirectory
	workloads WorkloadStore
}

func NewLedger(staff StaffDirectory, workloads WorkloadStore) *Ledger {
	return &Ledger{
		staff:     staff,
		workloads: workloads,
	}
}

// CurrentLoad returns the committed count and the effective maximum for the
// period: base quota plus the period's temporary exception.
func (l *Ledger) CurrentLoad(staffID int64, period domain.Period) (*domain.Load, error) {
	member, err := l.staff.GetStaff(staffID)
	if err != nil {
		return nil, err
	}

	workload, err := l.workloads.GetWorkload(staffID, period)
	if err != nil {
		return nil, err
	}

	return &domain.Load{
		Count:      workload.Committed,
		MaxAllowed: member.MaxShiftsPerPeriod + workload.TemporaryException,
	}, nil
}

// Reserve commits one more shift. Callers are expected to have gated the
// decision through the evaluator already; the store-level guard re-checks the
// effective maximum and fails with quota_exceeded rather than overshooting.
func (l *Ledger) Reserve(staffID int64, period domain.Period) error {
	load, err := l.CurrentLoad(staffID, period)
	if err != nil {
		return err
	}

	return l.workloads.AdjustCommitted(staffID, period, 1, load.MaxAllowed)
}

// Release gives one committed shift back. The count never goes below zero.
func (l *Ledger) Release(staffID int64, period domain.Period) error {
	if _, err := l.staff.GetStaff(staffID); err != nil {
		return err
	}

	return l.workloads.AdjustCommitted(staffID, period, -1, 0)
}

// RaiseQuota is applied only by the overwork workflow on approval. A permanent
// raise mutates the base quota and persists across periods; a temporary raise
// is scoped to the given period and vanishes with it.
func (l *Ledger) RaiseQuota(staffID int64, amount int32, permanent bool, period domain.Period) error {
	if amount < 1 {
		return domain.ValidationError("quota raise must be at least 1 shift")
	}

	if _, err := l.staff.GetStaff(staffID); err != nil {
		return err
	}

	if permanent {
		return l.staff.RaiseBaseQuota(staffID, amount)
	}
	return l.workloads.AddTemporaryException(staffID, period, amount)
}
