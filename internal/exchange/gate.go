package exchange

import (
	"github.com/rsud-harapan/roster-manager/backend/internal/domain"
)

// Gate refuses swaps that would push the receiving party over their effective
// maximum. Only the target side is gated: the requester gives a shift up,
// which never needs capacity.
type Gate struct {
	evaluator *Evaluator
}

func NewGate(evaluator *Evaluator) *Gate {
	return &Gate{evaluator: evaluator}
}

// CanSwap is consulted both at swap submission and again when a supervisor
// approval is about to complete the swap, since loads may have changed in
// between.
func (g *Gate) CanSwap(fromID, toID int64, period domain.Period) (bool, error) {
	verdict, err := g.evaluator.Evaluate(toID, period)
	if err != nil {
		return false, err
	}
	return verdict.CanTakeShift, nil
}
