package exchange

import (
	"github.com/rsud-harapan/roster-manager/backend/internal/domain"
)

type ReasonCode string

const (
	ReasonNone             ReasonCode = ""
	ReasonApproachingLimit ReasonCode = "APPROACHING_LIMIT"
	ReasonLimitReached     ReasonCode = "LIMIT_REACHED"
)

// Verdict is the evaluator's answer for one staff member in one period.
// APPROACHING_LIMIT is informational only; it never blocks the shift.
type Verdict struct {
	CanTakeShift         bool       `json:"canTakeShift"`
	NeedsOverworkRequest bool       `json:"needsOverworkRequest"`
	CurrentShifts        int32      `json:"currentShifts"`
	MaxShifts            int32      `json:"maxShifts"`
	ReasonCode           ReasonCode `json:"reasonCode"`
}

// approachingLimitRatio is the display-hint threshold carried over from the
// source system; it is not an enforcement boundary.
const approachingLimitRatio = 0.9

// Evaluator is a pure decision function over a ledger reading. Given the same
// reading it always returns the same verdict.
type Evaluator struct {
	ledger *Ledger
}

func NewEvaluator(ledger *Ledger) *Evaluator {
	return &Evaluator{ledger: ledger}
}

func (e *Evaluator) Evaluate(staffID int64, period domain.Period) (*Verdict, error) {
	load, err := e.ledger.CurrentLoad(staffID, period)
	if err != nil {
		return nil, err
	}

	verdict := &Verdict{
		CurrentShifts: load.Count,
		MaxShifts:     load.MaxAllowed,
	}

	// A non-positive maximum counts as the limit being reached.
	switch {
	case load.MaxAllowed <= 0 || float64(load.Count)/float64(load.MaxAllowed) >= 1.0:
		verdict.NeedsOverworkRequest = true
		verdict.ReasonCode = ReasonLimitReached
	case float64(load.Count)/float64(load.MaxAllowed) >= approachingLimitRatio:
		verdict.CanTakeShift = true
		verdict.ReasonCode = ReasonApproachingLimit
	default:
		verdict.CanTakeShift = true
	}

	return verdict, nil
}
